// Package engine converts word-level, timestamped speech-to-text output
// into SRT subtitle cues that obey display-readability constraints:
// duration bounds, inter-cue gap, reading speed (CPS), line length (CPL),
// and language-aware line breaking.
//
// The pipeline is pure and single-threaded: normalize tokens, split into
// sentence groups at punctuation boundaries, greedily merge short
// neighbors, finalize display timings, then render. Repeated or concurrent
// invocations on independent transcripts share no state.
package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cylind/subcue/internal/config"
)

// Generate runs the full pipeline on a transcript and returns the rendered
// SRT text with diagnostics. An empty transcript yields an empty result,
// not an error; only malformed token timing fails.
func Generate(transcript *Transcript, settings config.Settings) (Result, error) {
	if err := validateTokens(transcript.Words); err != nil {
		return Result{}, err
	}

	profile := NewScriptProfile(transcript.LanguageCode, settings)

	tokens := Normalize(transcript.Words)
	if len(tokens) == 0 {
		return Result{}, nil
	}

	splitter := NewSplitter(profile)
	entries := splitter.BuildEntries(splitter.Split(tokens))
	if len(entries) == 0 {
		return Result{}, nil
	}
	slog.Debug("sentence splitting done", "language", profile.Language, "groups", len(entries))

	merger := NewMerger(profile, settings)
	entries = merger.Merge(entries)
	slog.Debug("intelligent merge done", "entries", len(entries))

	optimizer := NewOptimizer(profile, settings)
	entries = optimizer.Optimize(entries)
	entries = optimizer.MergeLeftovers(entries)
	entries = optimizer.FinalGapSweep(entries)

	return Result{
		SRT:           Render(entries, profile),
		CueCount:      len(entries),
		GapCollisions: optimizer.GapCollisions(),
	}, nil
}

// validateTokens rejects timing the arithmetic cannot work with. Everything
// else degrades gracefully downstream.
func validateTokens(tokens []Token) error {
	for i, tok := range tokens {
		if math.IsNaN(tok.Start) || math.IsNaN(tok.End) ||
			math.IsInf(tok.Start, 0) || math.IsInf(tok.End, 0) {
			return fmt.Errorf("word %d (%q): non-finite timing", i, tok.Text)
		}
		if tok.Start < 0 || tok.End < 0 {
			return fmt.Errorf("word %d (%q): negative timing %.3f-%.3f", i, tok.Text, tok.Start, tok.End)
		}
		if tok.Start > tok.End {
			return fmt.Errorf("word %d (%q): start %.3f after end %.3f", i, tok.Text, tok.Start, tok.End)
		}
	}
	return nil
}
