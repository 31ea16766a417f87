package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cylind/subcue/internal/config"
	"github.com/cylind/subcue/internal/engine"
)

var generateCmd = &cobra.Command{
	Use:   "generate <transcript.json> [more.json...]",
	Short: "Generate SRT subtitles from word-level transcript JSON",
	Long: `Generate reads one or more transcript JSON files (language_code plus a
time-ordered words array of word/spacing/audio_event tokens) and writes an
SRT file next to each input, or to --output for a single input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

var (
	output        string
	settingsFile  string
	maxConcurrent int

	// Subtitle tuning flags.
	minDuration float64
	maxDuration float64
	minGap      float64
	cjkCPS      float64
	latinCPS    float64
	cjkCPL      int
	latinCPL    int
)

func init() {
	defaults := config.Default()

	generateCmd.Flags().StringVarP(&output, "output", "o", "", "output SRT path (single input only; default: <input>.srt)")
	generateCmd.Flags().StringVar(&settingsFile, "settings", "", "TOML settings file layered under the flags")
	generateCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", 3, "max transcripts processed in parallel")

	generateCmd.Flags().Float64Var(&minDuration, "min-duration", defaults.MinSubtitleDuration, "minimum subtitle duration in seconds")
	generateCmd.Flags().Float64Var(&maxDuration, "max-duration", defaults.MaxSubtitleDuration, "maximum subtitle duration in seconds")
	generateCmd.Flags().Float64Var(&minGap, "min-gap", defaults.MinSubtitleGap, "minimum gap between subtitles in seconds")
	generateCmd.Flags().Float64Var(&cjkCPS, "cjk-cps", defaults.CJKCPS, "CJK characters per second limit")
	generateCmd.Flags().Float64Var(&latinCPS, "latin-cps", defaults.LatinCPS, "Latin characters per second limit")
	generateCmd.Flags().IntVar(&cjkCPL, "cjk-cpl", defaults.CJKCharsPerLine, "CJK characters per line limit")
	generateCmd.Flags().IntVar(&latinCPL, "latin-cpl", defaults.LatinCharsPerLine, "Latin characters per line limit")

	rootCmd.AddCommand(generateCmd)
}

// resolveSettings layers the settings file (if any) under explicitly set
// flags. Flags the user did not touch keep the file's (or default) values.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	settings := config.Default()

	if settingsFile != "" {
		loaded, err := config.Load(settingsFile)
		if err != nil {
			return settings, err
		}
		settings = loaded
	}

	set := map[string]*float64{
		"min-duration": &settings.MinSubtitleDuration,
		"max-duration": &settings.MaxSubtitleDuration,
		"min-gap":      &settings.MinSubtitleGap,
		"cjk-cps":      &settings.CJKCPS,
		"latin-cps":    &settings.LatinCPS,
	}
	for name, dst := range set {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetFloat64(name)
			*dst = v
		}
	}
	if cmd.Flags().Changed("cjk-cpl") {
		settings.CJKCharsPerLine = cjkCPL
	}
	if cmd.Flags().Changed("latin-cpl") {
		settings.LatinCharsPerLine = latinCPL
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if output != "" && len(args) > 1 {
		return fmt.Errorf("--output is only valid with a single input file")
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, inputPath := range args {
		inputPath := inputPath
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return generateOne(inputPath, settings)
		})
	}

	return g.Wait()
}

func generateOne(inputPath string, settings config.Settings) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	var transcript engine.Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return fmt.Errorf("parse transcript %s: %w", inputPath, err)
	}

	result, err := engine.Generate(&transcript, settings)
	if err != nil {
		return fmt.Errorf("generate subtitles for %s: %w", inputPath, err)
	}

	outPath := output
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".srt"
	}
	if err := os.WriteFile(outPath, []byte(result.SRT), 0o644); err != nil {
		return fmt.Errorf("write SRT: %w", err)
	}

	slog.Info("subtitles written",
		"input", inputPath,
		"output", outPath,
		"cues", result.CueCount,
		"language", transcript.LanguageCode)
	if result.GapCollisions > 0 {
		slog.Warn("minimum gap could not be honored everywhere",
			"output", outPath, "collisions", result.GapCollisions)
	}
	return nil
}
