package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"vibedezine_server/internal/types"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "anthropic/claude-3-haiku"
)

// OpenAIConfig configures an OpenAI-compatible endpoint such as OpenRouter.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Referer and Title are sent as HTTP-Referer and X-Title for OpenRouter attribution.
	Referer string
	Title   string
	// HTTPClient overrides the transport; nil uses http.DefaultTransport with no timeout.
	HTTPClient *http.Client
}

// OpenAIClient implements Completer using the go-openai SDK.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

var _ Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client for an OpenAI-compatible chat completions API.
func NewOpenAIClient(cfg OpenAIConfig, logger *slog.Logger) *OpenAIClient {
	if logger == nil {
		logger = slog.Default()
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	base := http.DefaultTransport
	if cfg.HTTPClient != nil && cfg.HTTPClient.Transport != nil {
		base = cfg.HTTPClient.Transport
	}
	headers := map[string]string{}
	if cfg.Referer != "" {
		headers["HTTP-Referer"] = cfg.Referer
	}
	if cfg.Title != "" {
		headers["X-Title"] = cfg.Title
	}
	httpClient := &http.Client{Transport: &headerTransport{base: base, headers: headers}}
	if cfg.HTTPClient != nil {
		httpClient.Timeout = cfg.HTTPClient.Timeout
	}
	config.HTTPClient = httpClient

	model := cfg.Model
	if model == "" {
		model = DefaultOpenRouterModel
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger,
	}
}

func (c *OpenAIClient) Ready() error { return nil }

// Complete sends the conversation as a chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == types.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		c.logger.Warn("chat completion failed", "model", c.model, "err", err)
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("chat completion returned no content", "model", c.model, "usage", resp.Usage)
		return "", emptyResponse("openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError turns SDK errors into upstream errors carrying the
// status code and message reported by the service.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &types.Error{Code: types.EUPSTREAM, Message: apiErr.Message, Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &types.Error{Code: types.EUPSTREAM, Status: reqErr.HTTPStatusCode, Err: err}
	}
	return &types.Error{Code: types.EUPSTREAM, Err: err}
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(r)
	}
	r = r.Clone(r.Context())
	for k, v := range t.headers {
		r.Header.Set(k, v)
	}
	return t.base.RoundTrip(r)
}
