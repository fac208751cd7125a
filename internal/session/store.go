package session

import (
	"context"
	"fmt"
	"time"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Open returns the store for backend ("memory" or "sqlite").
func Open(ctx context.Context, backend, sqlitePath string, ttl time.Duration) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(ttl), nil
	case BackendSQLite:
		if sqlitePath == "" {
			return nil, fmt.Errorf("sqlite session backend requires a path")
		}
		return NewSQLiteStore(ctx, sqlitePath, ttl)
	default:
		return nil, fmt.Errorf("unknown session backend: %s", backend)
	}
}
