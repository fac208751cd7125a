package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func newStores(t *testing.T, ttl time.Duration, c *clock) map[string]Store {
	t.Helper()

	mem := NewMemoryStore(ttl)
	mem.now = c.Now

	lite, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "sessions.db"), ttl)
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	lite.now = c.Now
	t.Cleanup(func() { lite.Close() })

	return map[string]Store{"memory": mem, "sqlite": lite}
}

func TestStoreSaveGet(t *testing.T) {
	t.Parallel()

	c := newClock()
	for name, store := range newStores(t, time.Minute, c) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			in := &Session{ID: "s1", ResumeText: "Python developer", ResumeName: "cv.pdf"}
			if err := store.Save(ctx, in); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			in.JobText = "Looking for a Python developer"
			if err := store.Save(ctx, in); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := store.Get(ctx, "s1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ResumeText != in.ResumeText || got.JobText != in.JobText || got.ResumeName != "cv.pdf" {
				t.Fatalf("unexpected session: %+v", got)
			}
			if !got.CreatedAt.Equal(c.Now()) {
				t.Fatalf("expected created_at %v, got %v", c.Now(), got.CreatedAt)
			}

			if err := store.Delete(ctx, "s1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStoreSlidingExpiry(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"memory", "sqlite"} {
		t.Run(name, func(t *testing.T) {
			c := newClock()
			store := newStores(t, time.Minute, c)[name]
			ctx := context.Background()

			if err := store.Save(ctx, &Session{ID: "s1"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			c.Advance(40 * time.Second)
			if _, err := store.Get(ctx, "s1"); err != nil {
				t.Fatalf("expected session to be alive: %v", err)
			}

			// the read above pushed expiry to +100s
			c.Advance(40 * time.Second)
			if _, err := store.Get(ctx, "s1"); err != nil {
				t.Fatalf("expected sliding expiry to keep session alive: %v", err)
			}

			c.Advance(2 * time.Minute)
			if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected expired session, got %v", err)
			}
		})
	}
}

func TestStorePurgeExpired(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"memory", "sqlite"} {
		t.Run(name, func(t *testing.T) {
			c := newClock()
			store := newStores(t, time.Minute, c)[name]
			ctx := context.Background()

			for _, id := range []string{"a", "b"} {
				if err := store.Save(ctx, &Session{ID: id}); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			c.Advance(30 * time.Second)
			if err := store.Save(ctx, &Session{ID: "c"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			c.Advance(45 * time.Second)
			purged, err := store.PurgeExpired(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if purged != 2 {
				t.Fatalf("expected 2 purged sessions, got %d", purged)
			}
			if _, err := store.Get(ctx, "c"); err != nil {
				t.Fatalf("expected session c to survive: %v", err)
			}
		})
	}
}

func TestStoreSaveRequiresID(t *testing.T) {
	t.Parallel()

	for name, store := range newStores(t, time.Minute, newClock()) {
		if err := store.Save(context.Background(), &Session{}); err == nil {
			t.Fatalf("%s: expected error for empty id", name)
		}
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")

	first, err := NewSQLiteStore(ctx, path, time.Hour)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := first.Save(ctx, &Session{ID: "keep", ResumeText: "resume"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Close()

	second, err := NewSQLiteStore(ctx, path, time.Hour)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer second.Close()

	got, err := second.Get(ctx, "keep")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ResumeText != "resume" {
		t.Fatalf("unexpected resume text: %q", got.ResumeText)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%5))
			_ = store.Save(ctx, &Session{ID: id, JobText: "job"})
			_, _ = store.Get(ctx, id)
			_, _ = store.PurgeExpired(ctx)
		}(i)
	}
	wg.Wait()

	if store.Len() != 5 {
		t.Fatalf("expected 5 sessions, got %d", store.Len())
	}
}

func TestRunJanitor(t *testing.T) {
	t.Parallel()

	c := newClock()
	store := NewMemoryStore(time.Minute)
	store.now = c.Now

	if err := store.Save(context.Background(), &Session{ID: "old"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, store, 5*time.Millisecond, zap.NewNop())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for store.Len() != 0 {
		select {
		case <-deadline:
			t.Fatalf("janitor did not purge expired session")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("janitor did not stop after cancel")
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mem, err := Open(ctx, "", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := mem.(*MemoryStore); !ok {
		t.Fatalf("expected memory store by default, got %T", mem)
	}

	lite, err := Open(ctx, BackendSQLite, filepath.Join(t.TempDir(), "s.db"), time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer lite.Close()

	if _, err := Open(ctx, BackendSQLite, "", time.Minute); err == nil {
		t.Fatalf("expected error for sqlite without path")
	}
	if _, err := Open(ctx, "redis", "", time.Minute); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
