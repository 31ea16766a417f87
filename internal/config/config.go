// Package config holds the subtitle generation settings. A Settings value
// is constructed once per invocation (defaults, optional TOML file, then
// flags) and passed through the pipeline unchanged; nothing here is mutated
// at runtime.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds all subtitle generation parameters.
type Settings struct {
	MinSubtitleDuration float64 `toml:"min_subtitle_duration"`
	MaxSubtitleDuration float64 `toml:"max_subtitle_duration"`
	MinSubtitleGap      float64 `toml:"min_subtitle_gap"`
	CJKCPS              float64 `toml:"cjk_cps"`
	LatinCPS            float64 `toml:"latin_cps"`
	CJKCharsPerLine     int     `toml:"cjk_chars_per_line"`
	LatinCharsPerLine   int     `toml:"latin_chars_per_line"`
}

// Default returns the professional-standard defaults: Netflix-style
// minimum display time, two frames of gap at 24fps, and per-script
// reading-speed and line-length budgets.
func Default() Settings {
	return Settings{
		MinSubtitleDuration: 0.83,
		MaxSubtitleDuration: 7.0,
		MinSubtitleGap:      0.083,
		CJKCPS:              11,
		LatinCPS:            15,
		CJKCharsPerLine:     25,
		LatinCharsPerLine:   42,
	}
}

// Load reads settings from a TOML file layered over the defaults.
func Load(path string) (Settings, error) {
	s := Default()

	file, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("open settings: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate ensures the settings are usable for timing arithmetic.
func (s Settings) Validate() error {
	if s.MinSubtitleDuration <= 0 {
		return fmt.Errorf("min_subtitle_duration must be positive, got %g", s.MinSubtitleDuration)
	}
	if s.MaxSubtitleDuration < s.MinSubtitleDuration {
		return fmt.Errorf("max_subtitle_duration %g below min_subtitle_duration %g",
			s.MaxSubtitleDuration, s.MinSubtitleDuration)
	}
	if s.MinSubtitleGap < 0 {
		return fmt.Errorf("min_subtitle_gap must not be negative, got %g", s.MinSubtitleGap)
	}
	if s.MinSubtitleGap >= s.MinSubtitleDuration {
		return fmt.Errorf("min_subtitle_gap %g must be below min_subtitle_duration %g",
			s.MinSubtitleGap, s.MinSubtitleDuration)
	}
	if s.CJKCPS <= 0 || s.LatinCPS <= 0 {
		return fmt.Errorf("CPS limits must be positive, got cjk=%g latin=%g", s.CJKCPS, s.LatinCPS)
	}
	if s.CJKCharsPerLine <= 0 || s.LatinCharsPerLine <= 0 {
		return fmt.Errorf("chars-per-line limits must be positive, got cjk=%d latin=%d",
			s.CJKCharsPerLine, s.LatinCharsPerLine)
	}
	return nil
}
