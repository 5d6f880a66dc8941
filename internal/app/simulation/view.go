package simulation

import (
	"fmt"

	"colonysim/internal/app/ports"
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/colonist"
	"colonysim/internal/domain/eva"
)

type ActivityView struct {
	RecordID  string           `json:"record_id"`
	Kind      Kind             `json:"kind"`
	Name      string           `json:"name"`
	Done      bool             `json:"done"`
	StartedAt float64          `json:"started_at"`
	Trace     []activity.Frame `json:"trace"`
}

type ColonistView struct {
	colonist.View
	Activity *ActivityView `json:"activity,omitempty"`
}

type ColonyView struct {
	Tick       int64           `json:"tick"`
	Millisol   float64         `json:"millisol"`
	Sol        int             `json:"sol"`
	Conditions *eva.Conditions `json:"conditions,omitempty"`
	Samples    float64         `json:"samples_kg"`
	LabUsers   []string        `json:"lab_users,omitempty"`
	Airlock    any             `json:"airlock,omitempty"`
	Colonists  []ColonistView  `json:"colonists"`
}

// snapshotter is implemented by airlocks that can describe their state.
type snapshotter interface {
	SnapshotAny() any
}

func (d *Driver) Snapshot() ColonyView {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := ColonyView{
		Tick:      d.tick,
		Millisol:  d.now,
		Sol:       d.cfg.Clock.Sol(d.now),
		Samples:   d.samples,
		Colonists: make([]ColonistView, 0, len(d.colonists)),
	}
	if d.deps.Environment != nil {
		c := d.deps.Environment.ConditionsAt(d.now)
		v.Conditions = &c
	}
	if d.deps.Lab != nil {
		v.LabUsers = d.deps.Lab.Users()
	}
	if s, ok := d.deps.Airlock.(snapshotter); ok {
		v.Airlock = s.SnapshotAny()
	}
	for _, c := range d.colonists {
		v.Colonists = append(v.Colonists, d.colonistView(c))
	}
	return v
}

func (d *Driver) Colonist(id string) (ColonistView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.byID[id]
	if !ok {
		return ColonistView{}, fmt.Errorf("colonist %q: %w", id, ports.ErrNotFound)
	}
	return d.colonistView(c), nil
}

func (d *Driver) colonistView(c *colonist.Colonist) ColonistView {
	v := ColonistView{View: c.Snapshot()}
	if s, ok := d.slots[c.ID()]; ok {
		v.Activity = &ActivityView{
			RecordID:  s.recordID,
			Kind:      s.kind,
			Name:      s.act.Name(),
			Done:      s.act.Done(),
			StartedAt: s.startedAt,
			Trace:     s.act.Trace(),
		}
	}
	return v
}
