package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"vibedezine_server/internal/types"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// KickoffPrompt opens a conversation whose history is empty or starts with
// the assistant, since Gemini needs a leading user turn.
const KickoffPrompt = "Begin the interview."

// GeminiConfig configures the Gemini API backend.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint; empty uses the SDK default.
	BaseURL string
}

// GeminiClient implements Completer using Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ Completer = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini-backed Completer.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger *slog.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

func (g *GeminiClient) Ready() error { return nil }

// Complete sends the conversation to Gemini.
func (g *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, BuildContents(req.Messages), BuildConfig(req.System))
	if err != nil {
		g.logger.Warn("gemini generate content failed", "model", g.model, "err", err)
		return "", classifyGeminiError(err)
	}
	if result == nil {
		return "", emptyResponse("gemini")
	}
	text := result.Text()
	if text == "" {
		return "", emptyResponse("gemini")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig carrying the system instruction.
func BuildConfig(system string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}

// classifyGeminiError turns SDK errors into upstream errors carrying the
// status code and message reported by the service.
func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &types.Error{Code: types.EUPSTREAM, Message: apiErr.Message, Status: apiErr.Code, Err: err}
	}
	return &types.Error{Code: types.EUPSTREAM, Err: err}
}

// BuildContents converts interview turns into Gemini contents. Assistant
// turns map to the model role. A history that is empty or opens with the
// assistant is preceded by KickoffPrompt as a user turn.
func BuildContents(turns []types.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns)+1)
	if len(turns) == 0 || turns[0].Role == types.RoleAssistant {
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{{Text: KickoffPrompt}},
		})
	}
	for _, t := range turns {
		role := "user"
		if t.Role == types.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Content}},
		})
	}
	return contents
}
