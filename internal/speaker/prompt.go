package speaker

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildPrompt packs a Query into one prompt for chat-style models that
// have no native batched question-answer API.
func buildPrompt(q Query) string {
	var b strings.Builder
	if q.Context != "" {
		b.WriteString(q.Context)
		b.WriteString("\n\n")
	}
	b.WriteString("Transcript:\n---\n")
	b.WriteString(q.InputText)
	b.WriteString("---\n\n")
	b.WriteString("Answer each question below. Respond with JSON only, in the form ")
	b.WriteString(`{"answers":[{"question":"<question exactly as written>","answer":"<answer>"}]}`)
	b.WriteString(".\n\nQuestions:\n")
	for i, question := range q.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, question)
	}
	return b.String()
}

// parseAnswers accepts {"answers":[...]} or a bare array, optionally
// wrapped in a markdown code fence.
func parseAnswers(text string) ([]Answer, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "[") {
		var answers []Answer
		if err := json.Unmarshal([]byte(text), &answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		return answers, nil
	}

	var wrapped struct {
		Answers []Answer `json:"answers"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return wrapped.Answers, nil
}

// decodeAnswers parses a chat reply and aligns each answer with the
// submitted question it belongs to.
func decodeAnswers(questions []string, text string) ([]Answer, error) {
	answers, err := parseAnswers(text)
	if err != nil {
		return nil, err
	}
	return alignAnswers(questions, answers), nil
}

// alignAnswers rewrites each answer's question to the submitted wording. An
// echo is matched ignoring case and spacing; failing that, by position when
// the reply has exactly one answer per question.
func alignAnswers(questions []string, answers []Answer) []Answer {
	byKey := make(map[string]string, len(questions))
	for _, q := range questions {
		byKey[questionKey(q)] = q
	}

	aligned := make([]Answer, 0, len(answers))
	for i, a := range answers {
		if q, ok := byKey[questionKey(a.Question)]; ok {
			a.Question = q
		} else if len(answers) == len(questions) {
			a.Question = questions[i]
		}
		aligned = append(aligned, a)
	}
	return aligned
}

func questionKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
