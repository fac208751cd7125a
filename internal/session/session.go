// Package session keeps the resume and job description a client uploaded
// between requests. Sessions expire after a period of inactivity.
package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned for unknown and expired sessions.
var ErrNotFound = errors.New("session not found")

type Session struct {
	ID         string    `json:"id"`
	ResumeText string    `json:"resume_text"`
	ResumeName string    `json:"resume_name"`
	JobText    string    `json:"job_text"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Store persists sessions. Get extends the expiry of the session it returns.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int, error)
	Close() error
}

// RunJanitor purges expired sessions every interval until ctx is done.
func RunJanitor(ctx context.Context, store Store, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("🧹 Session janitor started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 Session janitor stopped")
			return
		case <-ticker.C:
			purged, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Warn("⚠️  Failed to purge expired sessions", zap.Error(err))
				continue
			}
			if purged > 0 {
				log.Debug("🧹 Purged expired sessions", zap.Int("count", purged))
			}
		}
	}
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
