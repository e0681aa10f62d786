package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"vibedezine_server/internal/types"
)

var pageToneInstructions = map[types.Tone]string{
	types.ToneProfessional: "Professional, authoritative tone. Clear, confident, trustworthy.",
	types.ToneCasual:       "Friendly, conversational tone. Approachable, like a smart friend.",
	types.ToneBold:         "Bold, direct tone. Provocative, confident, cut through the noise.",
	types.TonePlayful:      "Fun, energetic tone. Witty, memorable, clever where appropriate.",
}

// PageToneInstruction returns the full-page directive for tone.
func PageToneInstruction(tone types.Tone) string {
	if s, ok := pageToneInstructions[tone]; ok {
		return s
	}
	return pageToneInstructions[types.ToneProfessional]
}

// GetLandingPagePrompt renders the full-page copy request for data.
func GetLandingPagePrompt(data *types.ExtractedProductData) string {
	var b strings.Builder

	b.WriteString("Generate landing page copy based on this product information:\n\n")
	fmt.Fprintf(&b, "Product: %s\n", data.ProductName)
	fmt.Fprintf(&b, "Target Audience: %s\n", data.TargetAudience)
	fmt.Fprintf(&b, "Problem: %s\n", data.Problem)
	fmt.Fprintf(&b, "Solution: %s\n", data.Solution)
	fmt.Fprintf(&b, "Benefits: %s\n", strings.Join(data.Benefits, ", "))
	fmt.Fprintf(&b, "Differentiators: %s\n", strings.Join(data.Differentiators, ", "))
	if data.SocialProof != nil {
		fmt.Fprintf(&b, "Social Proof: %s\n", data.SocialProof.Content)
	}
	if data.Pricing != nil {
		fmt.Fprintf(&b, "Pricing: %s, CTA: %s\n", data.Pricing.Model, data.Pricing.CTAAction)
	}
	fmt.Fprintf(&b, "\nTone: %s\n\n", PageToneInstruction(types.ParseTone(string(data.Tone))))

	fmt.Fprintf(&b, `Generate copy for each section. Rules:
1. Headlines: Max 10 words, specific, no buzzwords
2. Subheadlines: 1-2 sentences explaining the "what"
3. Benefits: Outcome-focused, not feature-focused
4. CTA: Action-oriented, specific to the product

FORBIDDEN WORDS (never use): %s

Sound like a smart human copywriter, not AI.

Return ONLY valid JSON (no markdown):
{
  "hero": {
    "headline": "max 10 words",
    "subheadline": "1-2 sentences",
    "cta": "action text"
  },
  "benefits": [
    { "title": "short title", "description": "1 sentence" },
    { "title": "short title", "description": "1 sentence" },
    { "title": "short title", "description": "1 sentence" }
  ],
  "problem": {
    "headline": "agitate the problem",
    "body": "2-3 sentences describing the pain"
  },
  "socialProof": %s,
  "finalCta": {
    "headline": "reinforcing headline",
    "cta": "final action text"
  },
  "metadata": {
    "title": "page title for SEO",
    "description": "meta description for SEO"
  }
}`, strings.Join(ForbiddenWords, ", "), socialProofShape(data.SocialProof))

	return b.String()
}

// socialProofShape is the expected socialProof JSON. Author and title are
// JSON-encoded so user text cannot break the template.
func socialProofShape(sp *types.SocialProof) string {
	if sp == nil {
		return "null"
	}
	author := sp.Author
	if author == "" {
		author = "Customer"
	}
	return fmt.Sprintf(`{
    "quote": "testimonial quote",
    "author": %s,
    "title": %s
  }`, jsonString(author), jsonString(sp.Title))
}

func jsonString(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}
