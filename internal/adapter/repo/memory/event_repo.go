package memory

import (
	"context"

	"colonysim/internal/domain/activity"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, colonistID string, events []activity.Event) error {
	if colonistID == "" {
		colonistID = "global"
	}
	return r.store.write(ctx, func() error {
		r.store.events[colonistID] = append(r.store.events[colonistID], events...)
		return nil
	})
}

func (r EventRepo) ListByColonistID(ctx context.Context, colonistID string, limit int) ([]activity.Event, error) {
	var out []activity.Event
	r.store.read(ctx, func() {
		out = tail(r.store.events[colonistID], limit)
	})
	return out, nil
}
