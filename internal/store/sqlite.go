package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"vibedezine_server/internal/types"
)

// SQLiteStore implements SessionRepository using SQLite, so sessions
// survive restarts and can be shared by processes using the same file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ SessionRepository = (*SQLiteStore)(nil)

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS interview_sessions (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		turns_json TEXT NOT NULL,
		extracted_json TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interview_sessions_updated ON interview_sessions(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*types.InterviewSession, error) {
	query := `
		SELECT id, status, turns_json, extracted_json, created_at
		FROM interview_sessions WHERE id = ?`

	var session types.InterviewSession
	var turnsJSON string
	var extractedJSON sql.NullString
	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.Status, &turnsJSON, &extractedJSON, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errSessionNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	if err := json.Unmarshal([]byte(turnsJSON), &session.Messages); err != nil {
		return nil, fmt.Errorf("decode turns for session %s: %w", id, err)
	}
	if extractedJSON.Valid {
		var data types.ExtractedProductData
		if err := json.Unmarshal([]byte(extractedJSON.String), &data); err != nil {
			return nil, fmt.Errorf("decode extracted data for session %s: %w", id, err)
		}
		session.ExtractedData = &data
	}
	session.CreatedAt = time.UnixMilli(createdAt).UTC()

	return &session, nil
}

func (s *SQLiteStore) SaveSession(ctx context.Context, session *types.InterviewSession) error {
	turns := session.Messages
	if turns == nil {
		turns = []types.Turn{}
	}
	turnsJSON, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encode turns: %w", err)
	}

	var extracted any
	if session.ExtractedData != nil {
		raw, err := json.Marshal(session.ExtractedData)
		if err != nil {
			return fmt.Errorf("encode extracted data: %w", err)
		}
		extracted = string(raw)
	}

	query := `
	INSERT INTO interview_sessions (id, status, turns_json, extracted_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		status = excluded.status,
		turns_json = excluded.turns_json,
		extracted_json = excluded.extracted_json,
		updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		session.ID, string(session.Status), string(turnsJSON), extracted,
		session.CreatedAt.UnixMilli(), s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
