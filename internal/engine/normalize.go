package engine

import (
	"strings"
	"unicode/utf8"
)

// cjkFoldPunctuation is the set of standalone CJK punctuation that gets
// folded into the preceding word during normalization. ASR emits trailing
// punctuation as an orphaned near-zero-duration token after a pause; folding
// it back repairs the timing.
var cjkFoldPunctuation = map[rune]struct{}{
	'。': {}, // 。
	'？': {}, // ？
	'！': {}, // ！
	'」': {}, // 」
	'「': {}, // 「
	'、': {}, // 、
	'・': {}, // ・
	'，': {}, // ，
}

// Normalize collapses the raw token stream into word and audio-event tokens
// only: spacing tokens are absorbed into the preceding word as a single
// trailing space, and orphaned CJK punctuation is folded onto the previous
// word (extending its end time). Audio events pass through unchanged and
// time order is preserved.
func Normalize(raw []Token) []Token {
	var tokens []Token

	for _, tok := range raw {
		if tok.Kind == KindAudioEvent {
			tokens = append(tokens, tok)
			continue
		}

		// Spacing: append a space to the previous word and drop the token.
		if tok.Kind == KindSpacing {
			if len(tokens) > 0 &&
				strings.TrimSpace(tok.Text) == "" &&
				tokens[len(tokens)-1].Kind == KindWord &&
				!strings.HasSuffix(tokens[len(tokens)-1].Text, " ") {
				tokens[len(tokens)-1].Text += " "
			}
			continue
		}

		// Fold standalone CJK punctuation into the previous word, unless
		// that word already ends in the same punctuation set.
		runes := []rune(tok.Text)
		if len(runes) == 1 {
			if _, ok := cjkFoldPunctuation[runes[0]]; ok && len(tokens) > 0 {
				prev := &tokens[len(tokens)-1]
				if prev.Kind == KindWord && prev.Text != "" {
					lastRune, _ := utf8.DecodeLastRuneInString(prev.Text)
					if _, alreadyPunct := cjkFoldPunctuation[lastRune]; !alreadyPunct {
						prev.Text += tok.Text
						prev.End = tok.End
						continue
					}
				}
			}
		}

		tokens = append(tokens, tok)
	}

	return tokens
}
