// Package memory keeps colony history in process memory. Writes made inside
// TxManager.RunInTx share the transaction's lock.
package memory

import (
	"context"
	"sync"

	"colonysim/internal/app/ports"
	"colonysim/internal/domain/activity"
)

type Store struct {
	mu      sync.RWMutex
	events  map[string][]activity.Event
	records map[string][]ports.ActivityRecord
	ids     map[string]struct{}
	clock   *ports.ClockState
}

func NewStore() *Store {
	return &Store{
		events:  make(map[string][]activity.Event),
		records: make(map[string][]ports.ActivityRecord),
		ids:     make(map[string]struct{}),
	}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey{}).(bool)
	return held
}

// write runs fn under the write lock unless ctx already carries it.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if inTx(ctx) {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(ctx context.Context, fn func()) {
	if inTx(ctx) {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// tail returns the newest limit items; limit <= 0 means all.
func tail[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return append([]T(nil), items...)
}
