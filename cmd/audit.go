package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cylind/subcue/internal/audit"
	"github.com/cylind/subcue/internal/config"
)

var auditCmd = &cobra.Command{
	Use:   "audit <file.srt> [more.srt...]",
	Short: "Audit SRT files against display-readability targets",
	Long: `Audit parses finished SRT files and reports how well the cues meet the
engine's targets: punctuation-aligned endings, reading speed (CPS), line
length (CPL), duration bounds, and inter-cue gaps. Violations are
informational — the engine deliberately emits non-compliant cues rather
than dropping content.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

var (
	auditLanguage string
	reportPath    string
)

func init() {
	auditCmd.Flags().StringVarP(&auditLanguage, "language", "l", "en", "language code the subtitles were generated for")
	auditCmd.Flags().StringVar(&reportPath, "report", "", "write the full report as JSON to this path")
	auditCmd.Flags().StringVar(&settingsFile, "settings", "", "TOML settings file with the generation budgets")

	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	settings := config.Default()
	if settingsFile != "" {
		loaded, err := config.Load(settingsFile)
		if err != nil {
			return err
		}
		settings = loaded
	}

	auditor := audit.New(auditLanguage, settings)
	report, err := auditor.AuditFiles(args)
	if err != nil {
		return err
	}

	printReport(report)

	if reportPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(reportPath, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func printReport(report audit.Report) {
	for _, fr := range report.Files {
		fmt.Printf("%s\n", fr.File)
		fmt.Printf("  cues: %d\n", fr.TotalCues)
		fmt.Printf("  punctuation endings: %d (%.1f%%)\n",
			fr.PunctuationEndings, fr.PunctuationRatio*100)
		fmt.Printf("  violations: cps=%d cpl=%d duration=%d gap=%d\n",
			fr.CPSViolations, fr.CPLViolations, fr.DurationViolations, fr.GapViolations)
		fmt.Printf("  compliance: %.1f%%\n", fr.ComplianceRate*100)

		for i, bad := range fr.NonPunctuationCues {
			if i == 3 {
				fmt.Printf("    ... %d more\n", len(fr.NonPunctuationCues)-i)
				break
			}
			fmt.Printf("    #%d ends with %q\n", bad.Index, bad.LastChar)
		}
	}

	if len(report.Files) > 1 {
		fmt.Printf("total: %d cues, %.1f%% punctuation endings\n",
			report.TotalCues, report.OverallPunctuationRatio*100)
	}
}
