package ai

import (
	"context"
	"strings"

	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/ai/utils"
	"vibedezine_server/internal/llm"
	"vibedezine_server/internal/types"
)

// GeneratePageCopy asks the model for copy covering every landing page section.
// Hero and final call to action are required; the rest may be absent.
// Sparse product data is accepted; a missing name falls back to the tagline.
func (g *Generator) GeneratePageCopy(ctx context.Context, data *types.ExtractedProductData) (*types.PageCopy, error) {
	if data == nil {
		return nil, types.Errorf(types.EINVALID, "Product data is required")
	}
	if err := g.Ready(); err != nil {
		return nil, err
	}

	normalized := data.Clone()
	normalized.Tone = types.ParseTone(string(data.Tone))
	if strings.TrimSpace(normalized.ProductName) == "" {
		normalized.ProductName = strings.TrimSpace(normalized.Tagline)
	}

	text, err := g.complete(ctx, "generate_page", llm.UserPrompt("", prompts.GetLandingPagePrompt(normalized)), "Failed to generate page")
	if err != nil {
		return nil, err
	}

	pageCopy, err := utils.ParseJSON[types.PageCopy](text)
	if err != nil {
		g.logger.Warn("page copy was not valid JSON", "product", data.ProductName, "err", err)
		return nil, err
	}
	if pageCopy.Hero == nil || pageCopy.FinalCTA == nil {
		g.logger.Warn("page copy missing required sections", "product", data.ProductName,
			"hero", pageCopy.Hero != nil, "final_cta", pageCopy.FinalCTA != nil)
		return nil, types.Errorf(types.EPARSE, "Invalid response format")
	}
	return &pageCopy, nil
}
