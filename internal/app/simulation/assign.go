package simulation

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"colonysim/internal/app/ports"
	"colonysim/internal/domain/activity"
)

type Assignment struct {
	RecordID   string         `json:"record_id"`
	ColonistID string         `json:"colonist_id"`
	Kind       Kind           `json:"kind"`
	Activity   string         `json:"activity"`
	Phase      activity.Phase `json:"phase,omitempty"`
	Done       bool           `json:"done"`
}

// Assign starts a new root activity for a colonist. An activity that fails
// softly at construction is recorded as completed and reported Done.
func (d *Driver) Assign(ctx context.Context, colonistID string, kind Kind, p Params) (Assignment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.byID[colonistID]
	if !ok {
		return Assignment{}, fmt.Errorf("colonist %q: %w", colonistID, ports.ErrNotFound)
	}
	spec, ok := d.deps.Registry[kind]
	if !ok {
		return Assignment{}, fmt.Errorf("%q: %w", kind, ErrUnknownActivity)
	}
	if s, busy := d.slots[colonistID]; busy && !s.act.Done() {
		return Assignment{}, fmt.Errorf("colonist %q running %s: %w", colonistID, s.act.Name(), ErrActivityInProgress)
	}

	b := Build{
		Colonist:    c,
		Params:      p,
		Env:         d.activityEnv(),
		Airlock:     d.deps.Airlock,
		Environment: d.outdoors(),
		Lab:         d.deps.Lab,
		DefaultSite: d.cfg.DefaultSite,
		Deposit:     d.deposit,
	}
	if p.TeacherID != "" {
		teacher, ok := d.byID[p.TeacherID]
		if !ok {
			return Assignment{}, fmt.Errorf("teacher %q: %w", p.TeacherID, ports.ErrNotFound)
		}
		b.Teacher = teacher
	}
	act, err := spec.Build(b)
	if err != nil {
		return Assignment{}, fmt.Errorf("assign %s: %w", kind, err)
	}

	s := &slot{recordID: uuid.NewString(), kind: kind, act: act, startedAt: d.now}
	d.slots[colonistID] = s
	var records []ports.ActivityRecord
	if act.Done() {
		d.deps.Metrics.RecordCompleted(act.Name())
		records = append(records, d.record(c, s, ports.OutcomeCompleted, nil, d.now))
	}
	d.log.Info("activity assigned",
		zap.String("colonist_id", colonistID),
		zap.String("kind", string(kind)),
		zap.String("record_id", s.recordID),
		zap.Bool("done", act.Done()),
	)
	if err := d.persist(ctx, records); err != nil {
		return Assignment{}, fmt.Errorf("persist assignment: %w", err)
	}
	return Assignment{
		RecordID:   s.recordID,
		ColonistID: colonistID,
		Kind:       kind,
		Activity:   act.Name(),
		Phase:      act.Phase(),
		Done:       act.Done(),
	}, nil
}

// Kinds lists the registered activity kinds in name order.
func (d *Driver) Kinds() []Spec {
	out := make([]Spec, 0, len(d.deps.Registry))
	for _, spec := range d.deps.Registry {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
