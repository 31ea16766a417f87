package engine

import "testing"

func TestNormalize_SpacingAbsorbed(t *testing.T) {
	raw := []Token{
		{Text: "Hello", Start: 0.0, End: 0.5, Kind: KindWord},
		{Text: " ", Start: 0.5, End: 0.5, Kind: KindSpacing},
		{Text: "world", Start: 0.5, End: 1.0, Kind: KindWord},
	}

	got := Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("Normalize returned %d tokens, want 2", len(got))
	}
	if got[0].Text != "Hello " {
		t.Errorf("first token = %q, want %q", got[0].Text, "Hello ")
	}
	if got[1].Text != "world" {
		t.Errorf("second token = %q, want %q", got[1].Text, "world")
	}
}

func TestNormalize_SpacingNotDuplicated(t *testing.T) {
	raw := []Token{
		{Text: "Hello ", Start: 0.0, End: 0.5, Kind: KindWord},
		{Text: " ", Start: 0.5, End: 0.5, Kind: KindSpacing},
		{Text: "world", Start: 0.5, End: 1.0, Kind: KindWord},
	}

	got := Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("Normalize returned %d tokens, want 2", len(got))
	}
	if got[0].Text != "Hello " {
		t.Errorf("first token = %q, want %q (no double space)", got[0].Text, "Hello ")
	}
}

func TestNormalize_LeadingSpacingDropped(t *testing.T) {
	raw := []Token{
		{Text: " ", Start: 0.0, End: 0.0, Kind: KindSpacing},
		{Text: "Hello", Start: 0.0, End: 0.5, Kind: KindWord},
	}

	got := Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("Normalize returned %d tokens, want 1", len(got))
	}
	if got[0].Text != "Hello" {
		t.Errorf("token = %q, want %q", got[0].Text, "Hello")
	}
}

func TestNormalize_CJKPunctuationFolded(t *testing.T) {
	raw := []Token{
		{Text: "你好", Start: 0.0, End: 0.5, Kind: KindWord},
		{Text: "。", Start: 0.5, End: 0.6, Kind: KindWord},
	}

	got := Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("Normalize returned %d tokens, want 1", len(got))
	}
	if got[0].Text != "你好。" {
		t.Errorf("token = %q, want %q", got[0].Text, "你好。")
	}
	if got[0].End != 0.6 {
		t.Errorf("token end = %f, want 0.6 (extended to cover the punctuation)", got[0].End)
	}
}

func TestNormalize_CJKPunctuationNotFoldedTwice(t *testing.T) {
	raw := []Token{
		{Text: "你好。", Start: 0.0, End: 0.5, Kind: KindWord},
		{Text: "。", Start: 0.5, End: 0.6, Kind: KindWord},
	}

	got := Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("Normalize returned %d tokens, want 2 (no folding onto existing punctuation)", len(got))
	}
	if got[0].Text != "你好。" {
		t.Errorf("first token = %q, want %q", got[0].Text, "你好。")
	}
}

func TestNormalize_AudioEventPassesThrough(t *testing.T) {
	raw := []Token{
		{Text: "Hello", Start: 0.0, End: 0.5, Kind: KindWord},
		{Text: "(laughter)", Start: 0.6, End: 1.2, Kind: KindAudioEvent},
		{Text: "world", Start: 1.3, End: 1.8, Kind: KindWord},
	}

	got := Normalize(raw)
	if len(got) != 3 {
		t.Fatalf("Normalize returned %d tokens, want 3", len(got))
	}
	if got[1].Kind != KindAudioEvent {
		t.Errorf("middle token kind = %q, want %q (position preserved)", got[1].Kind, KindAudioEvent)
	}
	if got[1].Text != "(laughter)" {
		t.Errorf("middle token = %q, want %q", got[1].Text, "(laughter)")
	}
}

func TestNormalize_SpacingAfterAudioEventDropped(t *testing.T) {
	raw := []Token{
		{Text: "(music)", Start: 0.0, End: 1.0, Kind: KindAudioEvent},
		{Text: " ", Start: 1.0, End: 1.0, Kind: KindSpacing},
		{Text: "Hello", Start: 1.0, End: 1.5, Kind: KindWord},
	}

	got := Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("Normalize returned %d tokens, want 2", len(got))
	}
	if got[0].Text != "(music)" {
		t.Errorf("first token = %q, want %q (no space appended to event)", got[0].Text, "(music)")
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("Normalize(nil) returned %d tokens, want 0", len(got))
	}
}
