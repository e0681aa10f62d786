// Package interview runs the multi-turn founder interview and hands the
// finished conversation to extraction.
package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"vibedezine_server/internal/store"
	"vibedezine_server/internal/types"
)

// Agent is the model side of the interview.
type Agent interface {
	Ready() error
	Converse(ctx context.Context, turns []types.Turn) (string, error)
	ExtractProductData(ctx context.Context, turns []types.Turn) (*types.ExtractedProductData, error)
}

// Result is what the caller sees after a turn or an extraction attempt.
type Result struct {
	SessionID     string
	Message       string
	IsComplete    bool
	ExtractedData *types.ExtractedProductData
}

// Manager owns interview sessions. Status only moves forward and extracted
// data, once set, is never cleared.
type Manager struct {
	agent    Agent
	repo     store.SessionRepository
	detector Detector
	now      func() time.Time
	newID    func() string
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithDetector replaces the completion detector.
func WithDetector(d Detector) Option {
	return func(m *Manager) { m.detector = d }
}

// WithClock sets the time source used for session creation.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator sets how new session ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// WithLogger sets the logger; nil keeps slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a Manager that converses through agent and persists
// sessions in repo. Completion is detected with DefaultDetector unless
// WithDetector overrides it.
func NewManager(agent Agent, repo store.SessionRepository, opts ...Option) *Manager {
	m := &Manager{
		agent:    agent,
		repo:     repo,
		detector: DefaultDetector(),
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Advance appends message (if any) to the session, asks the model for its
// next reply and records it. An absent or unknown sessionID starts a new
// session. When the reply signals completion, extraction runs once.
//
// If the model call fails the user turn is kept and no assistant turn is
// added. A failed extraction leaves the session in extracting without data.
func (m *Manager) Advance(ctx context.Context, sessionID, message string) (*Result, error) {
	if err := m.agent.Ready(); err != nil {
		return nil, err
	}

	session, err := m.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	log := m.logger.With("session_id", session.ID)

	if strings.TrimSpace(message) != "" {
		session.Messages = append(session.Messages, types.Turn{Role: types.RoleUser, Content: message})
	}

	reply, err := m.agent.Converse(ctx, session.Messages)
	if err != nil {
		log.Warn("interview turn failed", "turns", len(session.Messages), "err", err)
		if saveErr := m.repo.SaveSession(ctx, session); saveErr != nil {
			log.Error("failed to save session", "err", saveErr)
		}
		return nil, err
	}
	session.Messages = append(session.Messages, types.Turn{Role: types.RoleAssistant, Content: reply})

	if session.Status == types.StatusInterviewing && m.detector.Done(reply) {
		log.Info("interview complete, extracting", "turns", len(session.Messages))
		// A failed extraction leaves the session in extracting for a manual retry.
		_ = m.extract(ctx, session, log)
	}

	if err := m.repo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return resultFor(session, reply), nil
}

// Get returns the session, or an ENOTFOUND error.
func (m *Manager) Get(ctx context.Context, sessionID string) (*types.InterviewSession, error) {
	if sessionID == "" {
		return nil, types.Errorf(types.ENOTFOUND, "Session not found")
	}
	return m.repo.GetSession(ctx, sessionID)
}

// Extract retries extraction for a session stuck in extracting. A complete
// session returns its existing data; a session still interviewing is rejected.
func (m *Manager) Extract(ctx context.Context, sessionID string) (*Result, error) {
	session, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case types.StatusComplete:
		return resultFor(session, ""), nil
	case types.StatusInterviewing:
		return nil, types.Errorf(types.EINVALID, "Interview is not finished yet")
	}

	if err := m.agent.Ready(); err != nil {
		return nil, err
	}

	log := m.logger.With("session_id", session.ID)
	if err := m.extract(ctx, session, log); err != nil {
		return nil, err
	}
	if err := m.repo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return resultFor(session, ""), nil
}

func (m *Manager) loadOrCreate(ctx context.Context, sessionID string) (*types.InterviewSession, error) {
	if sessionID != "" {
		session, err := m.repo.GetSession(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if types.ErrorCode(err) != types.ENOTFOUND {
			return nil, err
		}
		m.logger.Info("unknown session, starting a new one", "requested_id", sessionID)
	}

	return &types.InterviewSession{
		ID:        m.newID(),
		Messages:  []types.Turn{},
		Status:    types.StatusInterviewing,
		CreatedAt: m.now().UTC(),
	}, nil
}

// extract moves the session to extracting and, on success, to complete.
func (m *Manager) extract(ctx context.Context, session *types.InterviewSession, log *slog.Logger) error {
	advance(session, types.StatusExtracting)

	data, err := m.agent.ExtractProductData(ctx, session.Messages)
	if err != nil {
		log.Warn("extraction failed", "err", err)
		return err
	}

	session.ExtractedData = data
	advance(session, types.StatusComplete)
	log.Info("extraction complete", "product", data.ProductName)
	return nil
}

func advance(session *types.InterviewSession, next types.SessionStatus) {
	if session.Status.CanAdvanceTo(next) {
		session.Status = next
	}
}

func resultFor(session *types.InterviewSession, message string) *Result {
	return &Result{
		SessionID:     session.ID,
		Message:       message,
		IsComplete:    session.Status == types.StatusComplete,
		ExtractedData: session.ExtractedData.Clone(),
	}
}
