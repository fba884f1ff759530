package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadolammi/careerinsights/internal/retry"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// Generator sends a prompt to a generative model and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator asks a Gemini model for JSON-formatted output.
type GeminiGenerator struct {
	llm model.LLM
}

// NewGeminiModel creates the ADK Gemini model used by GeminiGenerator.
func NewGeminiModel(ctx context.Context, apiKey, modelName string) (model.LLM, error) {
	llm, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return llm, nil
}

func NewGeminiGenerator(llm model.LLM) *GeminiGenerator {
	return &GeminiGenerator{llm: llm}
}

// Generate returns the concatenated non-thought text of the response. Provider
// errors are returned unmodified; an empty response yields "" and nil.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := &model.LLMRequest{
		Model: g.llm.Name(),
		Contents: []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		},
		Config: &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	}

	var out strings.Builder
	for resp, err := range g.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", err
		}
		if resp == nil {
			continue
		}
		if resp.ErrorCode != "" {
			return "", fmt.Errorf("gemini error %s: %s", resp.ErrorCode, resp.ErrorMessage)
		}
		if resp.Content == nil {
			continue
		}
		for _, part := range resp.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			out.WriteString(part.Text)
		}
	}
	return out.String(), nil
}

// RetryGenerator applies a retry policy around another Generator.
type RetryGenerator struct {
	inner  Generator
	policy retry.Policy
}

func NewRetryGenerator(inner Generator, policy retry.Policy) *RetryGenerator {
	return &RetryGenerator{inner: inner, policy: policy}
}

func (g *RetryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return retry.Do(ctx, g.policy, func(ctx context.Context) (string, error) {
		return g.inner.Generate(ctx, prompt)
	})
}
