package webpage

import (
	"context"
	"log/slog"
)

// Reader fetches a page and extracts its text.
type Reader struct {
	fetcher  *Fetcher
	maxChars int
	logger   *slog.Logger
}

func NewReader(fetcher *Fetcher, maxChars int, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{fetcher: fetcher, maxChars: maxChars, logger: logger}
}

// ReadText returns the visible text of rawURL, bounded to the reader's limit.
func (r *Reader) ReadText(ctx context.Context, rawURL string) (string, error) {
	page, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	text, err := ExtractText(page, r.maxChars)
	if err != nil {
		r.logger.Info("page has too little text", "url", rawURL, "html_bytes", len(page))
		return "", err
	}
	return text, nil
}
