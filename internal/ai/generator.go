// Package ai turns product input into marketing copy through a completion service.
package ai

import (
	"context"
	"log/slog"

	"vibedezine_server/internal/llm"
)

// PageReader fetches a URL and returns its visible text.
type PageReader interface {
	ReadText(ctx context.Context, rawURL string) (string, error)
}

// Generator runs the generation operations. Each operation is one round
// trip to the completion service followed by a parse of its output.
type Generator struct {
	llm    llm.Completer
	reader PageReader
	logger *slog.Logger
}

func NewGenerator(completer llm.Completer, reader PageReader, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		llm:    completer,
		reader: reader,
		logger: logger,
	}
}

// Ready reports a config error when the completion credential is missing.
func (g *Generator) Ready() error {
	return g.llm.Ready()
}

func (g *Generator) complete(ctx context.Context, op string, req llm.Request, fallback string) (string, error) {
	text, err := g.llm.Complete(ctx, req)
	if err != nil {
		g.logUpstream(op, err)
		return "", describe(err, fallback)
	}
	g.logger.Debug("completion received", "op", op, "chars", len(text))
	return text, nil
}
