package engine

import (
	"strings"
	"testing"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{61.25, "00:01:01,250"},
		{3661.75, "01:01:01,750"},
		{7325.125, "02:02:05,125"},
		{-1.5, "00:00:01,500"}, // negative values use the absolute value
	}

	for _, tt := range tests {
		got := FormatTime(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatTime(%f) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatTime_MillisecondsTruncated(t *testing.T) {
	// 0.9999 must not round up into the next second.
	got := FormatTime(0.9999)
	if got != "00:00:00,999" {
		t.Errorf("FormatTime(0.9999) = %q, want %q", got, "00:00:00,999")
	}
}

func TestWrapText_ShortLine(t *testing.T) {
	p := latinProfile()

	got := wrapText("Hello world", p)
	if got != "Hello world" {
		t.Errorf("wrapText = %q, want unchanged single line", got)
	}
}

func TestWrapText_SplitsAtSpace(t *testing.T) {
	p := latinProfile()

	text := "This is a longer piece of text that exceeds forty two characters"
	got := wrapText(text, p)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("wrapText produced %d lines, want 2: %q", len(lines), got)
	}
	for i, line := range lines {
		if strings.TrimSpace(line) != line {
			t.Errorf("line %d has surrounding whitespace: %q", i, line)
		}
	}
	rejoined := lines[0] + " " + lines[1]
	if rejoined != text {
		t.Errorf("wrapped lines rejoin to %q, want %q", rejoined, text)
	}
}

func TestWrapText_NoBoundaryHardCut(t *testing.T) {
	p := latinProfile()

	text := strings.Repeat("x", 50)
	got := wrapText(text, p)

	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("wrapText produced %d lines, want 2: %q", len(lines), got)
	}
	if len(lines[0]) != 42 {
		t.Errorf("first line length = %d, want 42 (hard cut at line budget)", len(lines[0]))
	}
	if lines[0]+lines[1] != text {
		t.Error("wrapped lines lost characters")
	}
}

func TestRender_SingleEntry(t *testing.T) {
	p := latinProfile()

	got := Render([]Entry{entry("Hello world.", 0, 1.0)}, p)
	want := "1\n00:00:00,000 --> 00:00:01,000\nHello world.\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_MultipleEntries(t *testing.T) {
	p := latinProfile()

	got := Render([]Entry{
		entry("First cue.", 0, 1.0),
		entry("Second cue.", 1.5, 2.5),
	}, p)

	want := "1\n00:00:00,000 --> 00:00:01,000\nFirst cue.\n" +
		"\n" +
		"2\n00:00:01,500 --> 00:00:02,500\nSecond cue.\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(nil, latinProfile()); got != "" {
		t.Errorf("Render(nil) = %q, want empty string", got)
	}
}
