package prompts

import (
	"fmt"
	"strings"

	"vibedezine_server/internal/types"
)

// FormatConversation renders turns as "User: ..." / "Assistant: ..." blocks
// separated by blank lines.
func FormatConversation(turns []types.Turn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		speaker := "User"
		if t.Role == types.RoleAssistant {
			speaker = "Assistant"
		}
		parts[i] = speaker + ": " + t.Content
	}
	return strings.Join(parts, "\n\n")
}

// GetExtractionPrompt asks the model to turn a finished interview into
// ExtractedProductData JSON.
func GetExtractionPrompt(turns []types.Turn) string {
	return fmt.Sprintf(`Based on this interview conversation, extract the product information into structured JSON.

Conversation:
%s

Extract the following information. If something wasn't mentioned, make reasonable inferences based on context or set to null.

Return ONLY valid JSON (no markdown):
{
  "productName": "name of the product/service",
  "tagline": "short catchy tagline (generate if not mentioned)",
  "targetAudience": "who this is for",
  "problem": "the painful problem being solved",
  "solution": "how the product solves it",
  "benefits": ["benefit 1", "benefit 2", "benefit 3"],
  "differentiators": ["what makes it unique 1", "what makes it unique 2"],
  "socialProof": { "type": "testimonial|stats|logos", "content": "...", "author": "...", "title": "..." } or null,
  "pricing": { "model": "saas|one-time|freemium|free", "pricePoint": "..." or null, "ctaAction": "signup|demo|download|waitlist" } or null,
  "tone": "professional|casual|bold|playful"
}

Choose the tone based on the product type and how the user communicated:
- professional: B2B, enterprise, serious products
- casual: consumer apps, friendly products
- bold: disruptive products, strong opinions
- playful: fun products, creative tools`, FormatConversation(turns))
}
