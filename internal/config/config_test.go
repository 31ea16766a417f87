package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.MinSubtitleDuration != 0.83 {
		t.Errorf("MinSubtitleDuration = %g, want 0.83", s.MinSubtitleDuration)
	}
	if s.MaxSubtitleDuration != 7.0 {
		t.Errorf("MaxSubtitleDuration = %g, want 7.0", s.MaxSubtitleDuration)
	}
	if s.MinSubtitleGap != 0.083 {
		t.Errorf("MinSubtitleGap = %g, want 0.083", s.MinSubtitleGap)
	}
	if s.CJKCPS != 11 || s.LatinCPS != 15 {
		t.Errorf("CPS = cjk %g latin %g, want 11 and 15", s.CJKCPS, s.LatinCPS)
	}
	if s.CJKCharsPerLine != 25 || s.LatinCharsPerLine != 42 {
		t.Errorf("chars per line = cjk %d latin %d, want 25 and 42", s.CJKCharsPerLine, s.LatinCharsPerLine)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero min duration", func(s *Settings) { s.MinSubtitleDuration = 0 }},
		{"max below min", func(s *Settings) { s.MaxSubtitleDuration = 0.5 }},
		{"negative gap", func(s *Settings) { s.MinSubtitleGap = -0.1 }},
		{"gap above min duration", func(s *Settings) { s.MinSubtitleGap = 1.0 }},
		{"zero latin CPS", func(s *Settings) { s.LatinCPS = 0 }},
		{"zero cjk CPS", func(s *Settings) { s.CJKCPS = 0 }},
		{"zero line length", func(s *Settings) { s.LatinCharsPerLine = 0 }},
	}

	for _, tt := range tests {
		s := Default()
		tt.mutate(&s)
		if err := s.Validate(); err == nil {
			t.Errorf("%s: Validate returned nil error", tt.name)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := []byte("min_subtitle_duration = 1.0\nlatin_cps = 17\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.MinSubtitleDuration != 1.0 {
		t.Errorf("MinSubtitleDuration = %g, want 1.0 (from file)", s.MinSubtitleDuration)
	}
	if s.LatinCPS != 17 {
		t.Errorf("LatinCPS = %g, want 17 (from file)", s.LatinCPS)
	}
	if s.MaxSubtitleDuration != 7.0 {
		t.Errorf("MaxSubtitleDuration = %g, want 7.0 (default kept)", s.MaxSubtitleDuration)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load of a missing file returned nil error")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("min_subtitle_duration = -1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load with negative min duration returned nil error")
	}
}

func TestIsCJK(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"zho", true},
		{"jpn", true},
		{"kor", true},
		{"zh", true},
		{"ja", true},
		{"ko", true},
		{"chi", true},
		{"eng", false},
		{"fra", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsCJK(tt.lang); got != tt.want {
			t.Errorf("IsCJK(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}
