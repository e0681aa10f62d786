// Package store provides interview session persistence.
package store

import (
	"context"

	"vibedezine_server/internal/types"
)

// SessionRepository stores interview sessions keyed by id. Concurrent saves
// of the same session are last-writer-wins.
type SessionRepository interface {
	// GetSession returns a copy of the session, or an ENOTFOUND error.
	GetSession(ctx context.Context, id string) (*types.InterviewSession, error)

	// SaveSession creates or replaces the session.
	SaveSession(ctx context.Context, session *types.InterviewSession) error

	// Close releases any underlying resources.
	Close() error
}

func errSessionNotFound(id string) error {
	return types.WrapError(types.ENOTFOUND, &missingError{id: id}, "Session not found")
}

type missingError struct{ id string }

func (e *missingError) Error() string { return "session " + e.id + " not found" }
