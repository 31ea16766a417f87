package engine

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cylind/subcue/internal/config"
)

// Merge eligibility caps. These are deliberate policy constants tuned
// against real transcripts; changing them changes observable output.
const (
	maxMergeGap      = 2.0 // seconds; entries further apart stay separate
	maxMergeDuration = 6.0 // seconds; hard cap during eligibility, below MaxSubtitleDuration
	mergeThreshold   = 5.0 // minimum benefit score required to merge
)

// Merger reduces over-segmentation by greedily absorbing short or fast
// neighboring entries without violating hard display constraints.
type Merger struct {
	Profile  ScriptProfile
	Settings config.Settings
}

// NewMerger creates a merger for the given profile and settings.
func NewMerger(profile ScriptProfile, settings config.Settings) *Merger {
	return &Merger{Profile: profile, Settings: settings}
}

// NonWhitespaceCount returns the number of non-whitespace runes in text.
// This is the character count all CPS and CPL budgets are measured in.
func NonWhitespaceCount(text string) int {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// CPS computes the reading speed of text over a display duration.
func CPS(text string, duration float64) float64 {
	if duration <= 0 {
		return math.Inf(1)
	}
	return float64(NonWhitespaceCount(text)) / duration
}

// DynamicCPSLimit scales the base reading-speed budget upward for short
// text so naturally brief utterances are not penalized.
func DynamicCPSLimit(base float64, text string) float64 {
	switch textLen := NonWhitespaceCount(text); {
	case textLen <= 3:
		return base * 3.0
	case textLen <= 5:
		return base * 2.0
	case textLen <= 10:
		return base * 1.5
	default:
		return base
	}
}

// displayLines estimates how many physical lines text would occupy.
func (m *Merger) displayLines(text string) int {
	if text == "" {
		return 0
	}

	remaining := strings.TrimSpace(text)
	lines := 0

	for remaining != "" {
		lines++
		runes := []rune(remaining)
		if len(runes) <= m.Profile.CPL {
			break
		}
		splitPos := m.Profile.lineScanPosition(remaining)
		remaining = strings.TrimSpace(string(runes[splitPos:]))
	}
	return lines
}

// canMerge reports whether two adjacent entries may be combined, with a
// human-readable reason when they may not.
func (m *Merger) canMerge(a, b Entry) (bool, string) {
	if a.IsAudioEvent || b.IsAudioEvent {
		return false, "audio event"
	}

	gap := b.Start - a.End
	if gap < m.Settings.MinSubtitleGap {
		return false, "gap too small"
	}
	if gap > maxMergeGap {
		return false, "gap too large"
	}

	mergedText := a.Text + " " + b.Text
	mergedDuration := b.End - a.Start

	maxAllowed := math.Min(m.Settings.MaxSubtitleDuration, maxMergeDuration)
	if mergedDuration > maxAllowed {
		return false, "duration too long"
	}

	mergedCPS := CPS(mergedText, mergedDuration)
	if mergedCPS > DynamicCPSLimit(m.Profile.CPS, mergedText) {
		return false, "CPS too high"
	}

	mergedLines := m.displayLines(mergedText)
	if mergedLines > 2 {
		return false, "too many lines"
	}
	if mergedLines == 1 && utf8.RuneCountInString(mergedText) > m.Profile.CPL {
		return false, "single line too long"
	}

	return true, ""
}

// mergeBenefit scores how much combining two entries would improve output
// quality. Not a hard gate: very short or fast entries and small gaps are
// rewarded; anything else scores near zero.
func (m *Merger) mergeBenefit(a, b Entry) float64 {
	benefit := 0.0

	if d := a.Duration(); d < m.Settings.MinSubtitleDuration {
		benefit += (m.Settings.MinSubtitleDuration - d) * 20
	}
	if d := b.Duration(); d < m.Settings.MinSubtitleDuration {
		benefit += (m.Settings.MinSubtitleDuration - d) * 20
	}

	gap := b.Start - a.End
	if gap < 0.3 {
		benefit += (0.3 - gap) * 10
	} else if gap < 0.5 {
		benefit += (0.5 - gap) * 5
	}

	for _, e := range []Entry{a, b} {
		cc := e.CharCount
		if cc == 0 {
			cc = utf8.RuneCountInString(e.Text)
		}
		if cc < 3 {
			benefit += float64(3-cc) * 5
		} else if cc < 8 {
			benefit += float64(8-cc) * 2
		}
	}

	return benefit
}

// mergeTwo combines two entries, joining text directly after trailing
// punctuation, without a separator for CJK, and with a single space
// otherwise.
func (m *Merger) mergeTwo(a, b Entry) Entry {
	t1 := strings.TrimSpace(a.Text)
	t2 := strings.TrimSpace(b.Text)

	var mergedText string
	switch {
	case t1 != "" && endsWithJoinPunctuation(t1):
		mergedText = t1 + t2
	case m.Profile.CJK:
		mergedText = t1 + t2
	default:
		mergedText = t1 + " " + t2
	}

	tokens := make([]Token, 0, len(a.Tokens)+len(b.Tokens))
	tokens = append(tokens, a.Tokens...)
	tokens = append(tokens, b.Tokens...)

	return Entry{
		Text:         mergedText,
		Start:        a.Start,
		End:          b.End,
		Tokens:       tokens,
		IsAudioEvent: a.IsAudioEvent || b.IsAudioEvent,
		WordCount:    a.WordCount + b.WordCount,
		CharCount:    NonWhitespaceCount(mergedText),
	}
}

// Merge performs the greedy left-to-right merging pass. For each entry it
// keeps absorbing the immediate next entry while eligible and beneficial,
// so ties and chains resolve by strict left-to-right precedence.
func (m *Merger) Merge(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}

	var merged []Entry
	i := 0

	for i < len(entries) {
		current := entries[i]

		for i+1 < len(entries) {
			next := entries[i+1]

			if ok, _ := m.canMerge(current, next); !ok {
				break
			}
			if m.mergeBenefit(current, next) <= mergeThreshold {
				break
			}

			current = m.mergeTwo(current, next)
			i++
		}

		merged = append(merged, current)
		i++
	}

	return merged
}
