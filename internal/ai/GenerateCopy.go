package ai

import (
	"context"
	"strings"
	"unicode/utf8"

	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/ai/utils"
	"vibedezine_server/internal/llm"
	"vibedezine_server/internal/types"
)

// MaxDescriptionChars bounds the quick-mode product description.
const MaxDescriptionChars = 5000

// GenerateCopy produces quick-mode copy for a free-text product description.
// An invalid tone falls back to professional.
func (g *Generator) GenerateCopy(ctx context.Context, description string, tone types.Tone) (*types.GeneratedCopy, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, types.Errorf(types.EINVALID, "Description is required")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionChars {
		return nil, types.Errorf(types.EINVALID, "Description must be at most %d characters", MaxDescriptionChars)
	}
	if !tone.Valid() {
		tone = types.ToneProfessional
	}
	if err := g.Ready(); err != nil {
		return nil, err
	}

	text, err := g.complete(ctx, "generate_copy", llm.UserPrompt(prompts.GetQuickCopyPrompt(tone), description), "Failed to generate copy")
	if err != nil {
		return nil, err
	}

	generated, err := utils.ParseJSON[types.GeneratedCopy](text)
	if err != nil {
		g.logger.Warn("quick copy was not valid JSON", "tone", tone, "err", err)
		return nil, err
	}
	if err := validateCopy(&generated); err != nil {
		g.logger.Warn("quick copy rejected", "tone", tone, "reason", err.Error())
		return nil, err
	}
	return &generated, nil
}

func validateCopy(c *types.GeneratedCopy) error {
	c.Headline = strings.TrimSpace(c.Headline)
	c.Subheadline = strings.TrimSpace(c.Subheadline)
	c.CTA = strings.TrimSpace(c.CTA)
	if c.Headline == "" || c.Subheadline == "" || c.CTA == "" || len(c.Benefits) != 3 {
		return types.Errorf(types.EPARSE, "Invalid response format")
	}
	for i, b := range c.Benefits {
		c.Benefits[i] = strings.TrimSpace(b)
		if c.Benefits[i] == "" {
			return types.Errorf(types.EPARSE, "Invalid response format")
		}
	}

	fields := append([]string{c.Headline, c.Subheadline, c.CTA}, c.Benefits...)
	if word, found := utils.FindForbiddenWord(fields...); found {
		return types.WrapError(types.EPARSE, errForbidden(word), "Generated copy contains forbidden words")
	}
	return nil
}
