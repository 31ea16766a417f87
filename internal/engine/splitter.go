package engine

import (
	"strings"
	"unicode/utf8"
)

// Splitter partitions the normalized token stream into sentence groups at
// punctuation boundaries where it is safe to start a new cue candidate.
type Splitter struct {
	Profile ScriptProfile
}

// NewSplitter creates a splitter for the given script profile.
func NewSplitter(profile ScriptProfile) *Splitter {
	return &Splitter{Profile: profile}
}

// shouldSplitAfter decides whether to close the current group after tok.
// The accumulated slice holds the group's tokens before tok.
func (s *Splitter) shouldSplitAfter(tok Token, accumulated []Token) bool {
	hasPunct, _, priority := endsWithSplitPunctuation(tok.Text)
	if !hasPunct {
		return false
	}

	switch priority {
	case priorityHigh:
		// Sentence terminator: always split.
		return true
	case priorityMedium:
		// Clause terminator: split only with enough preceding content.
		return len(accumulated) >= 3
	case priorityLow:
		// Phrase separator: needs both enough words and enough characters
		// so short clauses keep flowing into one cue.
		if len(accumulated) < 5 {
			return false
		}
		totalChars := 0
		for _, t := range accumulated {
			totalChars += utf8.RuneCountInString(t.Text)
		}
		return totalChars >= 15
	}

	return false
}

// Split groups tokens into sentence groups. Audio events flush the current
// group and are emitted as singleton groups of their own; the final token
// always flushes.
func (s *Splitter) Split(tokens []Token) [][]Token {
	if len(tokens) == 0 {
		return nil
	}

	var groups [][]Token
	var current []Token

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}

	for i, tok := range tokens {
		if tok.Kind == KindAudioEvent {
			flush()
			groups = append(groups, []Token{tok})
			continue
		}

		current = append(current, tok)

		accumulated := current[:len(current)-1]
		if s.shouldSplitAfter(tok, accumulated) || i == len(tokens)-1 {
			flush()
		}
	}

	flush()
	return groups
}

// BuildEntries converts sentence groups into subtitle entries. Groups with
// no word-kind token, or whose text trims to empty, are discarded; a
// singleton audio-event group becomes an audio-event entry spanning the
// event's own timing.
func (s *Splitter) BuildEntries(groups [][]Token) []Entry {
	var entries []Entry

	for _, group := range groups {
		if len(group) == 0 {
			continue
		}

		if len(group) == 1 && group[0].Kind == KindAudioEvent {
			ev := group[0]
			text := strings.TrimSpace(ev.Text)
			if text == "" {
				continue
			}
			entries = append(entries, Entry{
				Text:         text,
				Start:        ev.Start,
				End:          ev.End,
				Tokens:       group,
				IsAudioEvent: true,
				CharCount:    NonWhitespaceCount(text),
			})
			continue
		}

		var wordTokens []Token
		for _, t := range group {
			if t.Kind == KindWord {
				wordTokens = append(wordTokens, t)
			}
		}
		if len(wordTokens) == 0 {
			continue
		}

		var b strings.Builder
		for _, t := range group {
			b.WriteString(t.Text)
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}

		entries = append(entries, Entry{
			Text:      text,
			Start:     wordTokens[0].Start,
			End:       wordTokens[len(wordTokens)-1].End,
			Tokens:    group,
			WordCount: len(wordTokens),
			CharCount: NonWhitespaceCount(text),
		})
	}

	return entries
}
