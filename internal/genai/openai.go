package genai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAIGenerator implements TextGenerator using the OpenAI Responses
// API.
type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int64
}

// NewOpenAIGenerator creates a generator for the given model.
func NewOpenAIGenerator(apiKey, model string, maxTokens int64) *OpenAIGenerator {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if maxTokens <= 0 {
		maxTokens = 600
	}
	return &OpenAIGenerator{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate sends the prompt and returns the raw model output. A
// content-filter refusal is reported as ErrBlocked.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(g.maxTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	if resp.IncompleteDetails.Reason == "content_filter" {
		return "", ErrBlocked
	}

	return resp.OutputText(), nil
}
