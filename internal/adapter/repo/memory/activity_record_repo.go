package memory

import (
	"context"

	"colonysim/internal/app/ports"
)

type ActivityRecordRepo struct {
	store *Store
}

func NewActivityRecordRepo(store *Store) ActivityRecordRepo {
	return ActivityRecordRepo{store: store}
}

func (r ActivityRecordRepo) Save(ctx context.Context, rec ports.ActivityRecord) error {
	return r.store.write(ctx, func() error {
		if _, exists := r.store.ids[rec.ID]; exists {
			return ports.ErrConflict
		}
		r.store.ids[rec.ID] = struct{}{}
		r.store.records[rec.ColonistID] = append(r.store.records[rec.ColonistID], rec)
		return nil
	})
}

func (r ActivityRecordRepo) ListByColonistID(ctx context.Context, colonistID string, limit int) ([]ports.ActivityRecord, error) {
	var out []ports.ActivityRecord
	r.store.read(ctx, func() {
		out = tail(r.store.records[colonistID], limit)
	})
	return out, nil
}
