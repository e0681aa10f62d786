package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Referer  string
	Title    string
}

// New returns the Completer for opts.Provider. A missing API key yields an
// Unconfigured completer so the server can start and report the problem per request.
func New(ctx context.Context, opts Options, logger *slog.Logger) (Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = ProviderOpenRouter
	}

	switch provider {
	case ProviderOpenRouter:
		if opts.APIKey == "" {
			return Unconfigured{Provider: "OpenRouter"}, nil
		}
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  opts.APIKey,
			BaseURL: opts.BaseURL,
			Model:   opts.Model,
			Referer: opts.Referer,
			Title:   opts.Title,
		}, logger), nil
	case ProviderGemini:
		if opts.APIKey == "" {
			return Unconfigured{Provider: "Gemini"}, nil
		}
		return NewGeminiClient(ctx, GeminiConfig{APIKey: opts.APIKey, Model: opts.Model}, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", opts.Provider)
	}
}
