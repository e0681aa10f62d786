package mock

import "context"

// PageReader is a mock implementation of ai.PageReader.
type PageReader struct {
	ReadTextFn func(ctx context.Context, rawURL string) (string, error)
}

func (r *PageReader) ReadText(ctx context.Context, rawURL string) (string, error) {
	return r.ReadTextFn(ctx, rawURL)
}
