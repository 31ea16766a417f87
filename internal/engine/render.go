package engine

import (
	"fmt"
	"math"
	"strings"
)

// FormatTime converts seconds to the SRT time format HH:MM:SS,mmm.
// Milliseconds are truncated, not rounded, so they never overflow into the
// seconds field.
func FormatTime(seconds float64) string {
	totalSec := math.Abs(seconds)
	hours := int(totalSec / 3600)
	remainder := math.Mod(totalSec, 3600)
	minutes := int(remainder / 60)
	secs := math.Mod(remainder, 60)
	millis := int(math.Mod(secs, 1) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, int(secs), millis)
}

// Render formats finalized entries into SRT text: 1-based sequential
// indices, a time range line, and text wrapped to at most two display
// lines, with one blank line between cue blocks.
func Render(entries []Entry, profile ScriptProfile) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, entry := range entries {
		text := wrapText(entry.Text, profile)
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n",
			i+1, FormatTime(entry.Start), FormatTime(entry.End), text)
		if i < len(entries)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// wrapText returns text on a single line when it fits within the line
// budget, otherwise splits it once at the best available boundary. An
// overlong remainder is emitted as-is: content is never truncated.
func wrapText(text string, profile ScriptProfile) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	runes := []rune(text)
	if len(runes) <= profile.CPL {
		return text
	}

	splitPos := profile.FindBreakPosition(text, profile.CPL)

	firstLine := strings.TrimSpace(string(runes[:splitPos]))
	remaining := strings.TrimSpace(string(runes[splitPos:]))

	if remaining == "" {
		return firstLine
	}
	return firstLine + "\n" + remaining
}
