package speaker

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an Answerer backed by one JSON-mode chat completion per
// query. baseURL is optional.
func NewOpenAI(apiKey, model, baseURL string) Answerer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &implOpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

// Ask ignores q.Model; the OpenAI model is fixed at construction.
func (o *implOpenAI) Ask(ctx context.Context, q Query) ([]Answer, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(q)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	return decodeAnswers(q.Questions, resp.Choices[0].Message.Content)
}
