package ai

import (
	"context"
	"strings"

	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/ai/utils"
	"vibedezine_server/internal/llm"
	"vibedezine_server/internal/types"
)

// AnalyzeURL fetches rawURL, reduces it to text and asks the model for the
// five-field product summary. Fetch failures are reported as client errors.
func (g *Generator) AnalyzeURL(ctx context.Context, rawURL string) (*types.URLAnalysis, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, types.Errorf(types.EINVALID, "URL is required")
	}
	if err := g.Ready(); err != nil {
		return nil, err
	}

	content, err := g.reader.ReadText(ctx, rawURL)
	if err != nil {
		g.logger.Warn("page fetch failed", "url", rawURL, "err", err)
		return nil, err
	}
	g.logger.Info("page fetched", "url", rawURL, "chars", len(content))

	text, err := g.complete(ctx, "analyze_url", llm.UserPrompt("", prompts.GetURLAnalysisPrompt(content)), "Failed to analyze URL")
	if err != nil {
		return nil, err
	}

	analysis, err := utils.ParseJSON[types.URLAnalysis](text)
	if err != nil {
		g.logger.Warn("url analysis was not valid JSON", "url", rawURL, "err", err)
		return nil, err
	}
	return &analysis, nil
}
