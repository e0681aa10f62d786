package ai

import (
	"context"

	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/ai/utils"
	"vibedezine_server/internal/llm"
	"vibedezine_server/internal/types"
)

// ExtractProductData converts a finished interview into structured product data.
func (g *Generator) ExtractProductData(ctx context.Context, turns []types.Turn) (*types.ExtractedProductData, error) {
	text, err := g.complete(ctx, "extract", llm.UserPrompt("", prompts.GetExtractionPrompt(turns)), "Failed to extract product data")
	if err != nil {
		return nil, err
	}

	data, err := utils.ParseJSON[types.ExtractedProductData](text)
	if err != nil {
		return nil, err
	}
	data.Tone = types.ParseTone(string(data.Tone))
	return &data, nil
}
