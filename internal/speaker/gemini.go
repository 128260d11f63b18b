package speaker

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type implGemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates an Answerer that sends the whole query to Gemini in one
// GenerateContent call. baseURL is optional.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (Answerer, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &implGemini{client: client, model: model}, nil
}

// Ask ignores q.Model; the Gemini model is fixed at construction.
func (g *implGemini) Ask(ctx context.Context, q Query) ([]Answer, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(q)), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return decodeAnswers(q.Questions, text)
}
