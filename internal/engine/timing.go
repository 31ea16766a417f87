package engine

import (
	"log/slog"
	"math"

	"github.com/cylind/subcue/internal/config"
)

// Post-process safety net thresholds for cues the merge stage left behind.
const (
	leftoverMaxChars = 50  // combined non-whitespace chars allowed in a late merge
	leftoverMaxGap   = 0.5 // seconds; late merges require a near-adjacent pair
)

// Optimizer finalizes each entry's display window: duration clamping,
// reading-speed extension, and minimum-gap enforcement against the
// following entry. It records every gap collision — a cue that could not
// honor both minimum duration and minimum gap — instead of hiding it.
type Optimizer struct {
	Profile  ScriptProfile
	Settings config.Settings

	gapCollisions int
}

// NewOptimizer creates an optimizer for the given profile and settings.
func NewOptimizer(profile ScriptProfile, settings config.Settings) *Optimizer {
	return &Optimizer{Profile: profile, Settings: settings}
}

// GapCollisions returns how many cues kept their minimum duration at the
// cost of the minimum gap to the following cue.
func (o *Optimizer) GapCollisions() int {
	return o.gapCollisions
}

// Optimize runs the forward timing pass: per-entry duration and CPS
// optimization first, then gap enforcement against the next entry's start.
func (o *Optimizer) Optimize(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}

	optimized := make([]Entry, 0, len(entries))

	for i, entry := range entries {
		e := o.optimizeSingle(entry)

		if i+1 < len(entries) {
			e = o.enforceGap(e, entries[i+1].Start)
		}

		optimized = append(optimized, e)
	}

	return optimized
}

// optimizeSingle clamps duration to [min, max] and extends the end time
// when the text reads faster than the dynamic CPS limit allows.
func (o *Optimizer) optimizeSingle(entry Entry) Entry {
	e := entry
	duration := e.Duration()

	if duration > o.Settings.MaxSubtitleDuration {
		e.End = e.Start + o.Settings.MaxSubtitleDuration
		duration = o.Settings.MaxSubtitleDuration
	}

	if duration < o.Settings.MinSubtitleDuration {
		e.End = e.Start + o.Settings.MinSubtitleDuration
		duration = o.Settings.MinSubtitleDuration
	}

	cps := CPS(e.Text, duration)
	limit := DynamicCPSLimit(o.Profile.CPS, e.Text)
	if cps > limit {
		required := float64(NonWhitespaceCount(e.Text)) / limit
		required = math.Min(required, o.Settings.MaxSubtitleDuration)
		e.End = e.Start + required
	}

	return e
}

// enforceGap shrinks the entry's end so the next entry starts at least
// MinSubtitleGap later. When that would undercut the minimum duration, the
// minimum duration wins and the violated gap is recorded as a collision.
func (o *Optimizer) enforceGap(e Entry, nextStart float64) Entry {
	gap := nextStart - e.End
	if gap >= o.Settings.MinSubtitleGap {
		return e
	}

	e.End = nextStart - o.Settings.MinSubtitleGap
	minEnd := e.Start + o.Settings.MinSubtitleDuration
	if e.End < minEnd {
		e.End = minEnd
		if e.End > nextStart-o.Settings.MinSubtitleGap {
			o.gapCollisions++
			slog.Warn("subtitle gap collision: minimum duration kept over minimum gap",
				"start", e.Start, "end", e.End, "next_start", nextStart)
		}
	}
	return e
}

// MergeLeftovers is the post-process safety net for still-too-short
// adjacent cues the merge stage could not see: pairs closer than half a
// second whose combined text stays short are recombined.
func (o *Optimizer) MergeLeftovers(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}

	m := Merger{Profile: o.Profile, Settings: o.Settings}

	var out []Entry
	i := 0
	for i < len(entries) {
		current := entries[i]

		for i+1 < len(entries) {
			next := entries[i+1]
			if current.IsAudioEvent || next.IsAudioEvent {
				break
			}
			tooShort := current.Duration() < o.Settings.MinSubtitleDuration ||
				next.Duration() < o.Settings.MinSubtitleDuration
			if !tooShort {
				break
			}
			if next.Start-current.End >= leftoverMaxGap {
				break
			}
			if current.CharCount+next.CharCount > leftoverMaxChars {
				break
			}

			current = o.optimizeSingle(m.mergeTwo(current, next))
			i++
		}

		out = append(out, current)
		i++
	}

	return out
}

// FinalGapSweep re-checks every adjacent pair after late merges, shrinking
// end times that crowd the following cue, never below minimum duration.
// Entries already sitting at their minimum duration are left alone so a
// collision recorded by Optimize is not double-counted.
func (o *Optimizer) FinalGapSweep(entries []Entry) []Entry {
	for i := 0; i+1 < len(entries); i++ {
		e := entries[i]
		nextStart := entries[i+1].Start
		if nextStart-e.End >= o.Settings.MinSubtitleGap {
			continue
		}

		end := nextStart - o.Settings.MinSubtitleGap
		minEnd := e.Start + o.Settings.MinSubtitleDuration
		if end < minEnd {
			end = minEnd
		}
		if end >= e.End {
			continue
		}

		e.End = end
		if e.End > nextStart-o.Settings.MinSubtitleGap {
			o.gapCollisions++
			slog.Warn("subtitle gap collision: minimum duration kept over minimum gap",
				"start", e.Start, "end", e.End, "next_start", nextStart)
		}
		entries[i] = e
	}
	return entries
}
