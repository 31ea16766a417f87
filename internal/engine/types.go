package engine

// Token kinds as delivered by the transcription collaborator.
const (
	KindWord       = "word"
	KindSpacing    = "spacing"
	KindAudioEvent = "audio_event"
)

// Token is a single ASR-aligned unit of the transcript: a word, inter-word
// spacing, or a non-speech audio event.
type Token struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Kind      string  `json:"type"` // "word", "spacing", "audio_event"
	SpeakerID string  `json:"speaker_id,omitempty"`
}

// Transcript is the input object supplied by the transcription collaborator.
type Transcript struct {
	LanguageCode string  `json:"language_code"`
	Text         string  `json:"text,omitempty"`
	Words        []Token `json:"words"`
}

// Entry is one subtitle candidate as it evolves through the pipeline stages:
// built from a sentence group, possibly merged with neighbors, then given
// final display timings.
type Entry struct {
	Text         string
	Start        float64
	End          float64
	Tokens       []Token
	IsAudioEvent bool
	WordCount    int
	CharCount    int // non-whitespace runes
}

// Duration returns the entry's current display duration in seconds.
func (e Entry) Duration() float64 {
	return e.End - e.Start
}

// Result holds the rendered SRT text plus diagnostics the caller may want
// to surface. Gap collisions are cues whose end time had to be forced past
// the following cue's minimum-gap boundary to preserve minimum duration.
type Result struct {
	SRT           string
	CueCount      int
	GapCollisions int
}
