package speaker

import (
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

type implLeMUR struct {
	client *aai.Client
}

// NewLeMUR creates an Answerer backed by AssemblyAI's LeMUR question-answer
// endpoint, sharing the transcription client and its key.
func NewLeMUR(client *aai.Client) Answerer {
	return &implLeMUR{client: client}
}

func (l *implLeMUR) Ask(ctx context.Context, q Query) ([]Answer, error) {
	questions := make([]aai.LeMURQuestion, 0, len(q.Questions))
	for _, question := range q.Questions {
		questions = append(questions, aai.LeMURQuestion{Question: aai.String(question)})
	}

	params := aai.LeMURQuestionAnswerParams{
		LeMURBaseParams: aai.LeMURBaseParams{
			InputText:  aai.String(q.InputText),
			FinalModel: aai.LeMURModel(q.Model),
		},
		Questions: questions,
	}
	if q.Context != "" {
		params.Context = q.Context
	}

	resp, err := l.client.LeMUR.Question(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("lemur question-answer: %w", err)
	}

	answers := make([]Answer, 0, len(resp.Response))
	for _, a := range resp.Response {
		answers = append(answers, Answer{
			Question: aai.ToString(a.Question),
			Answer:   aai.ToString(a.Answer),
		})
	}
	return answers, nil
}
