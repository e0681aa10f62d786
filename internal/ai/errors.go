package ai

import (
	"fmt"

	"vibedezine_server/internal/ai/utils"
)

func describe(err error, fallback string) error {
	return utils.DescribeUpstream(err, fallback)
}

func errForbidden(word string) error {
	return fmt.Errorf("forbidden word %q", word)
}

// logUpstream logs transient failures at warn and everything else at error.
func (g *Generator) logUpstream(op string, err error) {
	if utils.Transient(err) {
		g.logger.Warn("completion failed", "op", op, "err", err)
		return
	}
	g.logger.Error("completion failed", "op", op, "err", err)
}
