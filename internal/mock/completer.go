// Package mock provides function-field test doubles.
package mock

import (
	"context"

	"vibedezine_server/internal/llm"
)

var _ llm.Completer = (*Completer)(nil)

// Completer is a mock implementation of llm.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req llm.Request) (string, error)
	ReadyFn    func() error
}

func (c *Completer) Complete(ctx context.Context, req llm.Request) (string, error) {
	return c.CompleteFn(ctx, req)
}

func (c *Completer) Ready() error {
	if c.ReadyFn == nil {
		return nil
	}
	return c.ReadyFn()
}

// Replies returns a Completer that answers with replies in order and records
// every request it receives. It fails the call once replies run out.
func Replies(replies ...string) (*Completer, *[]llm.Request) {
	var seen []llm.Request
	i := 0
	c := &Completer{
		CompleteFn: func(_ context.Context, req llm.Request) (string, error) {
			seen = append(seen, req)
			if i >= len(replies) {
				return "", errOutOfReplies
			}
			r := replies[i]
			i++
			return r, nil
		},
	}
	return c, &seen
}
