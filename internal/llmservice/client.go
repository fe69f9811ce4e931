package llmservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hoshin-matrix/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderHTTP   = "http"
)

// ErrNoChoices is returned when the model answers without any choice.
var ErrNoChoices = errors.New("model returned no choices")

// Completer sends a single user prompt and returns the text of the first choice.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewCompleter builds the completer for the configured provider.
func NewCompleter(llmConfig *config.LLMConfig) (Completer, error) {
	log.Debug().
		Str("provider", llmConfig.Provider).
		Str("base_url", llmConfig.BaseURL).
		Str("model", llmConfig.Model).
		Msg("Creating completer")

	switch llmConfig.Provider {
	case ProviderOpenAI, "":
		llm, err := openai.New(
			openai.WithBaseURL(llmConfig.BaseURL),
			openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
			openai.WithModel(llmConfig.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return NewModelCompleter(llm, llmConfig.Temperature, llmConfig.Timeout), nil
	case ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(llmConfig.Model)}
		if llmConfig.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(llmConfig.BaseURL))
		}
		llm, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewModelCompleter(llm, llmConfig.Temperature, llmConfig.Timeout), nil
	case ProviderHTTP:
		return NewChatClient(llmConfig), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", llmConfig.Provider)
	}
}

// ModelCompleter adapts a langchaingo model to Completer.
type ModelCompleter struct {
	llm         llms.Model
	temperature float64
	timeout     time.Duration
}

func NewModelCompleter(llm llms.Model, temperature float64, timeout time.Duration) *ModelCompleter {
	return &ModelCompleter{llm: llm, temperature: temperature, timeout: timeout}
}

func (c *ModelCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	res, err := c.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 || res.Choices[0] == nil {
		return "", ErrNoChoices
	}
	return res.Choices[0].Content, nil
}

// call llm
func (c *ModelCompleter) GenerateContent(ctx context.Context, messages []llms.MessageContent) (*llms.ContentResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	log.Debug().Int("messages", len(messages)).Float64("temperature", c.temperature).Msg("Generating content")
	return c.llm.GenerateContent(ctx, messages, llms.WithTemperature(c.temperature))
}
