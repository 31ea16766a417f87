package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/cylind/subcue/internal/config"
)

// Punctuation priority levels.
const (
	priorityHigh   = 0
	priorityMedium = 1
	priorityLow    = 2
	priorityNone   = -1
)

var highPriority = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'。': {}, '！': {}, '？': {}, // 。！？
}

var mediumPriority = map[rune]struct{}{
	';': {}, ':': {}, ')': {}, ']': {}, '}': {},
	'；': {}, '：': {}, '》': {}, '」': {}, '】': {}, '）': {}, // ；：》」】）
}

var lowPriority = map[rune]struct{}{
	',': {}, '(': {}, '[': {}, '{': {}, '-': {},
	'，': {}, '、': {}, '《': {}, '「': {}, '【': {}, '（': {}, // ，、《「【（
	'…': {}, // …
}

// joinPunctuation suppresses the separator when joining two subtitle texts
// during a merge.
var joinPunctuation = map[rune]struct{}{
	'。': {}, '？': {}, '！': {}, '、': {}, '，': {},
	'；': {}, '：': {},
	'“': {}, '”': {}, '‘': {}, '’': {},
	'（': {}, '）': {}, '《': {}, '》': {},
	'「': {}, '」': {},
	'.': {}, '?': {}, '!': {}, ',': {}, ';': {}, ':': {},
	'(': {}, ')': {}, '"': {}, '\'': {}, '-': {},
}

// Line-break boundary candidates, ordered scan sets per script. The renderer
// scans lineBreakChars (split before a space, after punctuation); the merger
// estimates display lines with the coarser lineScanChars set. The two sets
// are tuned independently and intentionally differ.
const (
	cjkLineBreakChars   = "。？！、，；：“”‘’（）《》「」 "
	latinLineBreakChars = " .,;:!?()\"'-"
	cjkLineScanChars    = "。？！、，；： .,;:!?()-"
	latinLineScanChars  = " .,;:!?()-"
)

// ScriptProfile bundles every language-dependent constant the pipeline
// needs: reading-speed and line-length budgets plus line-break boundary
// sets. It is selected once per invocation and passed to all stages.
type ScriptProfile struct {
	Language string // 3-letter (or shorter) language code prefix
	CJK      bool
	CPS      float64
	CPL      int

	lineBreakChars map[rune]struct{}
	lineScanChars  map[rune]struct{}
}

// NewScriptProfile selects the script profile for a language code. Only the
// first three characters of the code are inspected.
func NewScriptProfile(langCode string, settings config.Settings) ScriptProfile {
	lang := langCode
	if len(lang) > 3 {
		lang = lang[:3]
	}
	cjk := config.IsCJK(lang)

	p := ScriptProfile{Language: lang, CJK: cjk}
	if cjk {
		p.CPS = settings.CJKCPS
		p.CPL = settings.CJKCharsPerLine
		p.lineBreakChars = runeSet(cjkLineBreakChars)
		p.lineScanChars = runeSet(cjkLineScanChars)
	} else {
		p.CPS = settings.LatinCPS
		p.CPL = settings.LatinCharsPerLine
		p.lineBreakChars = runeSet(latinLineBreakChars)
		p.lineScanChars = runeSet(latinLineScanChars)
	}
	return p
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// punctuationPriority returns the split priority of a rune.
func punctuationPriority(r rune) int {
	if _, ok := highPriority[r]; ok {
		return priorityHigh
	}
	if _, ok := mediumPriority[r]; ok {
		return priorityMedium
	}
	if _, ok := lowPriority[r]; ok {
		return priorityLow
	}
	return priorityNone
}

// endsWithSplitPunctuation checks whether trimmed text ends in a split
// punctuation character. Returns (hasPunct, punctRune, priority).
func endsWithSplitPunctuation(text string) (bool, rune, int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, 0, priorityNone
	}
	lastRune, _ := utf8.DecodeLastRuneInString(text)
	if lastRune == utf8.RuneError {
		return false, 0, priorityNone
	}
	if priority := punctuationPriority(lastRune); priority >= 0 {
		return true, lastRune, priority
	}
	return false, 0, priorityNone
}

// endsWithJoinPunctuation reports whether text ends with a punctuation
// character that suppresses separator insertion when joining subtitles.
func endsWithJoinPunctuation(text string) bool {
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	_, ok := joinPunctuation[r]
	return ok
}

// FindBreakPosition finds the best rune index to break text for display,
// searching backward from min(maxLen+1, len) for a boundary character:
// before a space, after punctuation. Falls back to a hard cut at maxLen.
func (p ScriptProfile) FindBreakPosition(text string, maxLen int) int {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return len(runes)
	}

	searchEnd := min(maxLen+1, len(runes))

	bestPos := -1
	for i := searchEnd - 1; i > 0; i-- {
		r := runes[i]
		if _, ok := p.lineBreakChars[r]; !ok {
			continue
		}
		if r == ' ' {
			bestPos = i
		} else {
			bestPos = i + 1
		}
		break
	}

	if bestPos <= 0 {
		bestPos = maxLen
	}
	return bestPos
}

// lineScanPosition is the merger's coarser split estimate used only for
// counting display lines: the last scan-set character at or before CPL,
// split after it.
func (p ScriptProfile) lineScanPosition(text string) int {
	runes := []rune(text)
	if len(runes) <= p.CPL {
		return len(runes)
	}

	for i := min(p.CPL, len(runes)); i > 0; i-- {
		if _, ok := p.lineScanChars[runes[i-1]]; ok {
			return i
		}
	}
	return min(p.CPL, len(runes))
}
