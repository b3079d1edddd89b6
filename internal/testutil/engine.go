package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/thuchi/internal/classifier"
	"github.com/Veraticus/thuchi/internal/common"
	"github.com/Veraticus/thuchi/internal/engine"
)

// Clock is a settable time source.
type Clock struct {
	now time.Time
	mu  sync.Mutex
}

// NewClock returns a clock stopped at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current clock time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestEngine bundles an engine with the real stores and classifier behind it.
type TestEngine struct {
	*TestDB
	Classifier *classifier.Service
	Engine     *engine.Engine
	Clock      *Clock
}

// SetupTestEngine creates an engine over a fresh database whose classifier is
// loaded from the seed corpus. The engine clock starts at now.
func SetupTestEngine(t *testing.T, db *TestDB, now time.Time) *TestEngine {
	t.Helper()

	if db == nil {
		db = SetupTestDB(t)
	}

	svc := classifier.NewService(db.Storage, db.Storage, classifier.SeedCorpus())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("failed to load classifier: %v", err)
	}

	clock := NewClock(now)
	eng := engine.NewWithConfig(db.Storage, svc, engine.Config{
		Now: clock.Now,
		Retry: common.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
			Multiplier:   1,
		},
	})

	return &TestEngine{
		TestDB:     db,
		Classifier: svc,
		Engine:     eng,
		Clock:      clock,
	}
}
