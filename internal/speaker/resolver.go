package speaker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/speaker-scribe/internal/transcriber"
)

const questionFormat = "Who is speaker %s?"

var reQuestion = regexp.MustCompile(`Who is speaker (\w+)\?`)

// Mapping maps a diarization label to an inferred display name.
type Mapping map[string]string

// Label asks one question per distinct speaker label in a single batched
// call, then renders every utterance under its resolved name.
func (r *implResolver) Label(ctx context.Context, tr transcriber.Transcript) (string, error) {
	labels := distinctLabels(tr.Utterances)

	query := Query{
		Questions: Questions(labels),
		InputText: LabeledText(tr.Utterances),
		Context:   r.instruction,
		Model:     r.model,
	}

	answers, err := r.answerer.Ask(ctx, query)
	if err != nil {
		return "", fmt.Errorf("ask speaker questions: %w", err)
	}

	mapping := ParseMapping(answers)
	r.logger.Debug(ctx, "Transcript %s: resolved %d of %d speakers", tr.ID, len(mapping), len(labels))

	return Render(tr.Utterances, mapping)
}

// LabeledText is the transcript as "Speaker {label}:\n{text}\n" blocks.
func LabeledText(utterances []transcriber.Utterance) string {
	var b strings.Builder
	for _, u := range utterances {
		fmt.Fprintf(&b, "Speaker %s:\n%s\n", u.Speaker, u.Text)
	}
	return b.String()
}

// distinctLabels returns each label once, in order of first appearance.
func distinctLabels(utterances []transcriber.Utterance) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, u := range utterances {
		if !seen[u.Speaker] {
			seen[u.Speaker] = true
			labels = append(labels, u.Speaker)
		}
	}
	return labels
}

// Questions builds one question per label.
func Questions(labels []string) []string {
	questions := make([]string, 0, len(labels))
	for _, label := range labels {
		questions = append(questions, fmt.Sprintf(questionFormat, label))
	}
	return questions
}

// ParseMapping recovers labels from answered questions. The first answer
// for a label wins; answers whose question does not match are dropped.
func ParseMapping(answers []Answer) Mapping {
	mapping := make(Mapping)
	for _, a := range answers {
		m := reQuestion.FindStringSubmatch(a.Question)
		if m == nil {
			continue
		}
		if _, ok := mapping[m[1]]; !ok {
			mapping[m[1]] = a.Answer
		}
	}
	return mapping
}

// Render emits "{name}:\n{text}\n\n" per utterance in order. Every label
// must be present in mapping.
func Render(utterances []transcriber.Utterance, mapping Mapping) (string, error) {
	var b strings.Builder
	for i, u := range utterances {
		name, ok := mapping[u.Speaker]
		if !ok {
			return "", fmt.Errorf("%w: utterance %d, speaker %q", ErrUnresolvedSpeaker, i, u.Speaker)
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", name, u.Text)
	}
	return b.String(), nil
}
