package prompts

import (
	"fmt"

	"vibedezine_server/internal/types"
)

var quickToneInstructions = map[types.Tone]string{
	types.ToneProfessional: "Write in a professional, authoritative tone. Be clear, confident, and trustworthy. Suitable for B2B and enterprise.",
	types.ToneCasual:       "Write in a friendly, conversational tone. Be approachable and relatable. Like talking to a smart friend.",
	types.ToneBold:         "Write in a bold, direct tone. Be provocative and confident. Make strong claims. Cut through the noise.",
	types.TonePlayful:      "Write in a fun, energetic tone. Be witty and memorable. Use clever wordplay where appropriate.",
}

// QuickToneInstruction returns the quick-mode directive for tone.
// Unknown tones get the professional directive.
func QuickToneInstruction(tone types.Tone) string {
	if s, ok := quickToneInstructions[tone]; ok {
		return s
	}
	return quickToneInstructions[types.ToneProfessional]
}

// GetQuickCopyPrompt returns the system instruction for quick mode. The
// product description itself is sent as the user turn.
func GetQuickCopyPrompt(tone types.Tone) string {
	return fmt.Sprintf(`You are a landing page copywriter. Given a product description, generate:
1. Headline (max 10 words, punchy, specific)
2. Subheadline (1 sentence, explains what it does)
3. 3 Benefits (short, outcome-focused, not features)
4. CTA text (action-oriented, specific)

Tone: %s

Sound human. Avoid: %s.

Return ONLY valid JSON with no markdown formatting:
{"headline":"...","subheadline":"...","benefits":["...","...","..."],"cta":"..."}`, QuickToneInstruction(tone), quotedList(ForbiddenWords))
}
