package ai

import (
	"context"

	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/llm"
	"vibedezine_server/internal/types"
)

// Converse returns the interviewer's next reply for the given history.
// The full history is sent on every call, prefixed by the interview instruction.
func (g *Generator) Converse(ctx context.Context, turns []types.Turn) (string, error) {
	return g.complete(ctx, "interview", llm.Request{
		System:   prompts.InterviewSystemPrompt,
		Messages: turns,
	}, "Failed to get response")
}
