package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Publisher writes rendered sites under a directory that the server exposes
// read-only. Each publish gets a fresh id and its own subdirectory.
type Publisher struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

func NewPublisher(dir, baseURL string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		dir:     dir,
		baseURL: "/" + strings.Trim(baseURL, "/"),
		logger:  logger,
	}
}

// Dir is the root directory holding published sites.
func (p *Publisher) Dir() string { return p.dir }

// BaseURL is the path prefix published sites are served under.
func (p *Publisher) BaseURL() string { return p.baseURL }

// URL returns where the site with id is served.
func (p *Publisher) URL(id string) string {
	return path.Join(p.baseURL, id) + "/"
}

// PublishFiles writes files (name to content) into a new site directory and
// returns its id. Files are staged in a temporary directory and moved into
// place in one rename, so a site is never visible half-written.
func (p *Publisher) PublishFiles(ctx context.Context, files map[string]string) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create publish dir: %w", err)
	}

	stage, err := os.MkdirTemp(p.dir, ".publish-*")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(stage)

	for name, content := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		clean := filepath.Clean(filepath.FromSlash(name))
		if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || clean == ".." {
			return "", fmt.Errorf("invalid file name %q", name)
		}
		filePath := filepath.Join(stage, clean)
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return "", fmt.Errorf("create subdirectories for %s: %w", name, err)
		}
		if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("write file %s: %w", name, err)
		}
	}
	if err := os.Chmod(stage, 0o755); err != nil {
		return "", fmt.Errorf("chmod staging dir: %w", err)
	}

	id := uuid.NewString()
	if err := os.Rename(stage, filepath.Join(p.dir, id)); err != nil {
		return "", fmt.Errorf("move site into place: %w", err)
	}

	p.logger.Info("site published", "id", id, "files", len(files))
	return id, nil
}
