package memory

import (
	"context"

	"colonysim/internal/app/ports"
)

type ClockRepo struct {
	store *Store
}

func NewClockRepo(store *Store) ClockRepo {
	return ClockRepo{store: store}
}

func (r ClockRepo) Load(ctx context.Context) (ports.ClockState, bool, error) {
	var (
		state ports.ClockState
		ok    bool
	)
	r.store.read(ctx, func() {
		if r.store.clock != nil {
			state, ok = *r.store.clock, true
		}
	})
	return state, ok, nil
}

func (r ClockRepo) Save(ctx context.Context, state ports.ClockState) error {
	return r.store.write(ctx, func() error {
		r.store.clock = &state
		return nil
	})
}
