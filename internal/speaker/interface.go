package speaker

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/speaker-scribe/internal/transcriber"
)

// ErrUnresolvedSpeaker is returned when an utterance's label received no answer.
var ErrUnresolvedSpeaker = errors.New("speaker label has no resolved name")

// Query is one batched question-answering request over a context text.
type Query struct {
	Questions []string
	InputText string
	Context   string
	Model     string
}

// Answer pairs a submitted question with the model's answer.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Answerer answers every question of a Query in a single remote call.
type Answerer interface {
	Ask(ctx context.Context, q Query) ([]Answer, error)
}

// Resolver renders a transcript with inferred names in place of speaker labels.
type Resolver interface {
	Label(ctx context.Context, tr transcriber.Transcript) (string, error)
}
