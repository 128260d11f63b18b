package transcriber

import (
	"context"
	"errors"
)

// ErrTranscriptFailed is returned when the service finishes a job in the error state.
var ErrTranscriptFailed = errors.New("transcription failed")

// Utterance is one contiguous speech segment attributed to a diarized speaker.
type Utterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Transcript is the completed, diarized result of one job.
type Transcript struct {
	ID           string      `json:"id"`
	LanguageCode string      `json:"language_code"`
	Utterances   []Utterance `json:"utterances"`
}

// Transcriber turns a reachable media URL into a diarized transcript. It
// blocks until the remote job reaches a terminal state.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (Transcript, error)
}
