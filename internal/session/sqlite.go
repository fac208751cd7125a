package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	resume_text TEXT NOT NULL DEFAULT '',
	resume_name TEXT NOT NULL DEFAULT '',
	job_text    TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL,
	expires_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at ON sessions (expires_at);`

// SQLiteStore keeps sessions in a SQLite database file so they survive restarts.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLiteStore(ctx context.Context, path string, ttl time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session db: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate session db: %w", err)
	}

	return &SQLiteStore{db: db, ttl: normalizeTTL(ttl), now: time.Now}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	now := s.now()

	var (
		sess      Session
		createdAt int64
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, resume_text, resume_name, job_text, created_at, expires_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.ResumeText, &sess.ResumeName, &sess.JobText, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if now.UnixNano() >= expiresAt {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, ErrNotFound
	}

	sess.CreatedAt = time.Unix(0, createdAt)
	sess.ExpiresAt = now.Add(s.ttl)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET expires_at = ? WHERE id = ?`, sess.ExpiresAt.UnixNano(), id,
	); err != nil {
		return nil, fmt.Errorf("failed to extend session: %w", err)
	}

	return &sess, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return fmt.Errorf("session id is required")
	}

	now := s.now()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.ExpiresAt = now.Add(s.ttl)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, resume_text, resume_name, job_text, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			resume_text = excluded.resume_text,
			resume_name = excluded.resume_name,
			job_text    = excluded.job_text,
			expires_at  = excluded.expires_at`,
		sess.ID, sess.ResumeText, sess.ResumeName, sess.JobText,
		sess.CreatedAt.UnixNano(), sess.ExpiresAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired implements Store.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged sessions: %w", err)
	}
	return int(n), nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
