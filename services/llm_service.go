package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"news-verifier/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrEmptyCompletion is returned when the model produces no choices
var ErrEmptyCompletion = errors.New("model returned no completion")

// Generator runs the language model on a rendered prompt.
// Implementations decode deterministically with a bounded output length.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator creates the model handle for the configured provider.
// It is built once at startup and shared by all requests.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Initializing model",
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.ModelID),
		zap.String("device", cfg.Device),
		zap.Int("max_new_tokens", cfg.MaxNewTokens))

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.GeminiKey, cfg.LLMBaseURL, cfg.ModelID, cfg.MaxNewTokens)
	default:
		clientConfig := openai.DefaultConfig(cfg.ProviderKey())
		if cfg.LLMBaseURL != "" {
			clientConfig.BaseURL = cfg.LLMBaseURL
		}
		return NewOpenAIGenerator(openai.NewClientWithConfig(clientConfig), cfg.ModelID, cfg.MaxNewTokens), nil
	}
}

// =============================================================================
// OpenAI-compatible endpoints (Hugging Face router, OpenAI, Groq, TGI, vLLM)
// =============================================================================

type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIGenerator wraps a go-openai client
func NewOpenAIGenerator(client *openai.Client, model string, maxTokens int) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate sends the prompt as a single user turn with greedy decoding
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	seed := 0
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		// A literal 0 is dropped by omitempty and the server default applies
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   g.maxTokens,
		Seed:        &seed,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// =============================================================================
// Google Gemini
// =============================================================================

type GeminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiGenerator creates a Gemini API client. An empty baseURL keeps the
// public endpoint.
func NewGeminiGenerator(ctx context.Context, apiKey, baseURL, model string, maxTokens int) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Generate runs the prompt with temperature 0
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: int32(g.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(resp.Text()), nil
}
