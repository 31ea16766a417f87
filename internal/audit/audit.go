// Package audit checks finished SRT files against the display-readability
// targets the engine aims for: punctuation-aligned cue endings, reading
// speed, line length, duration bounds, and inter-cue gaps. It is a
// diagnostic layer only — it never modifies subtitles, and violations it
// reports are soft by design (completeness is prioritized over strict
// compliance when the engine generates).
package audit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/asticode/go-astisub"

	"github.com/cylind/subcue/internal/config"
	"github.com/cylind/subcue/internal/engine"
)

// endingPunctuation is the union of CJK and Latin punctuation accepted as a
// well-formed cue ending.
const endingPunctuation = "。！？；：，、" +
	"“”‘’（）【】《》〈〉" +
	"「」『』…—" +
	".,;:!?()[]{}\"'-"

// BadEnding records one cue whose text does not end in punctuation.
type BadEnding struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	LastChar string `json:"last_char"`
}

// FileReport holds the audit result for a single SRT file.
type FileReport struct {
	File               string      `json:"file"`
	TotalCues          int         `json:"total_cues"`
	PunctuationEndings int         `json:"punctuation_endings"`
	PunctuationRatio   float64     `json:"punctuation_ratio"`
	CPSViolations      int         `json:"cps_violations"`
	CPLViolations      int         `json:"cpl_violations"`
	DurationViolations int         `json:"duration_violations"`
	GapViolations      int         `json:"gap_violations"`
	ComplianceRate     float64     `json:"compliance_rate"`
	NonPunctuationCues []BadEnding `json:"non_punctuation_cues,omitempty"`
}

// Report aggregates per-file results.
type Report struct {
	Files                   []FileReport `json:"files"`
	TotalCues               int          `json:"total_cues"`
	TotalPunctuationEndings int          `json:"total_punctuation_endings"`
	OverallPunctuationRatio float64      `json:"overall_punctuation_ratio"`
}

// Auditor evaluates SRT files against one language's budgets.
type Auditor struct {
	settings config.Settings
	cps      float64
	cpl      int
}

// New creates an auditor for the given language code and settings.
func New(langCode string, settings config.Settings) *Auditor {
	a := &Auditor{settings: settings}
	if config.IsCJK(langCode) {
		a.cps = settings.CJKCPS
		a.cpl = settings.CJKCharsPerLine
	} else {
		a.cps = settings.LatinCPS
		a.cpl = settings.LatinCharsPerLine
	}
	return a
}

// timing tolerance in seconds, one millisecond.
const epsilon = 0.001

// AuditFile parses one SRT file and scores it.
func (a *Auditor) AuditFile(path string) (FileReport, error) {
	subs, err := astisub.OpenFile(path)
	if err != nil {
		return FileReport{}, fmt.Errorf("parse %s: %w", path, err)
	}

	report := FileReport{File: path, TotalCues: len(subs.Items)}

	for i, item := range subs.Items {
		var lines []string
		for _, line := range item.Lines {
			lines = append(lines, line.String())
		}
		text := strings.Join(lines, "\n")
		start := item.StartAt.Seconds()
		end := item.EndAt.Seconds()
		duration := end - start

		if endsInPunctuation(text) {
			report.PunctuationEndings++
		} else {
			report.NonPunctuationCues = append(report.NonPunctuationCues, BadEnding{
				Index:    i + 1,
				Text:     text,
				LastChar: lastChar(text),
			})
		}

		if engine.CPS(text, duration) > engine.DynamicCPSLimit(a.cps, text)+epsilon {
			report.CPSViolations++
		}
		for _, line := range lines {
			if utf8.RuneCountInString(line) > a.cpl {
				report.CPLViolations++
				break
			}
		}
		if duration < a.settings.MinSubtitleDuration-epsilon ||
			duration > a.settings.MaxSubtitleDuration+epsilon {
			report.DurationViolations++
		}
		if i+1 < len(subs.Items) {
			gap := subs.Items[i+1].StartAt.Seconds() - end
			if gap < a.settings.MinSubtitleGap-epsilon {
				report.GapViolations++
			}
		}
	}

	if report.TotalCues > 0 {
		report.PunctuationRatio = float64(report.PunctuationEndings) / float64(report.TotalCues)
		violations := report.CPSViolations + report.CPLViolations +
			report.DurationViolations + report.GapViolations
		clean := report.TotalCues - violations
		if clean < 0 {
			clean = 0
		}
		report.ComplianceRate = float64(clean) / float64(report.TotalCues)
	}

	return report, nil
}

// AuditFiles audits every path and aggregates the results.
func (a *Auditor) AuditFiles(paths []string) (Report, error) {
	var report Report
	for _, path := range paths {
		fr, err := a.AuditFile(path)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, fr)
		report.TotalCues += fr.TotalCues
		report.TotalPunctuationEndings += fr.PunctuationEndings
	}
	if report.TotalCues > 0 {
		report.OverallPunctuationRatio =
			float64(report.TotalPunctuationEndings) / float64(report.TotalCues)
	}
	return report, nil
}

// endsInPunctuation checks the last non-whitespace character of the last
// physical line.
func endsInPunctuation(text string) bool {
	c := lastChar(text)
	if c == "" {
		return false
	}
	return strings.ContainsRune(endingPunctuation, []rune(c)[0])
}

func lastChar(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return ""
	}
	r, _ := utf8.DecodeLastRuneInString(last)
	return string(r)
}
