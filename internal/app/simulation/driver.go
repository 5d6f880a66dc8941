// Package simulation owns the colony and advances every colonist's root
// activity once per tick.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"colonysim/internal/app/ports"
	"colonysim/internal/domain/accident"
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/colonist"
	"colonysim/internal/domain/eva"
	"colonysim/internal/domain/tasks"
	"colonysim/internal/domain/world"
)

// DefaultQuantum is the number of millisols offered per tick.
const DefaultQuantum = 5.0

var (
	ErrUnknownActivity    = errors.New("unknown activity kind")
	ErrActivityInProgress = errors.New("colonist already has an activity in progress")
	ErrInvalidTicks       = errors.New("ticks must be positive")
)

// Environment reports outdoor conditions at an absolute millisol.
type Environment interface {
	ConditionsAt(millisol float64) eva.Conditions
}

type Config struct {
	Quantum     float64
	Clock       world.Clock
	DefaultSite world.Position
}

type Deps struct {
	Airlock     eva.Airlock
	Environment Environment
	Lab         *tasks.Lab
	Accidents   *accident.Model
	Events      ports.EventRepository
	Records     ports.ActivityRecordRepository
	ClockRepo   ports.ClockRepository
	TxManager   ports.TxManager
	Metrics     ports.SimMetrics
	Logger      *zap.Logger
	Registry    map[Kind]Spec
}

type slot struct {
	recordID  string
	kind      Kind
	act       activity.Activity
	startedAt float64
}

type TickResult struct {
	Tick      int64   `json:"tick"`
	Millisol  float64 `json:"millisol"`
	Advanced  int     `json:"advanced"`
	Completed int     `json:"completed"`
	Aborted   int     `json:"aborted"`
	Events    int     `json:"events"`
	Accidents int     `json:"accidents"`
}

// Driver serializes every mutation of the colony behind one mutex. Activities
// and colonists are only touched while it is held.
type Driver struct {
	mu        sync.Mutex
	cfg       Config
	deps      Deps
	log       *zap.Logger
	tick      int64
	now       float64
	colonists []*colonist.Colonist
	byID      map[string]*colonist.Colonist
	slots     map[string]*slot
	samples   float64
	pending   []activity.Event
}

func New(cfg Config, deps Deps) *Driver {
	if cfg.Quantum <= 0 {
		cfg.Quantum = DefaultQuantum
	}
	if cfg.Clock == (world.Clock{}) {
		cfg.Clock = world.DefaultClock()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	if deps.Registry == nil {
		deps.Registry = DefaultRegistry()
	}
	return &Driver{
		cfg:   cfg,
		deps:  deps,
		log:   deps.Logger.Named("simulation"),
		byID:  map[string]*colonist.Colonist{},
		slots: map[string]*slot{},
	}
}

// Resume restores the clock from the clock repository, if one is set and
// holds a saved state.
func (d *Driver) Resume(ctx context.Context) error {
	if d.deps.ClockRepo == nil {
		return nil
	}
	state, ok, err := d.deps.ClockRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load clock: %w", err)
	}
	if !ok {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tick = state.Tick
	d.now = state.Millisol
	d.log.Info("clock resumed", zap.Int64("tick", d.tick), zap.Float64("millisol", d.now))
	return nil
}

func (d *Driver) AddColonist(c *colonist.Colonist) error {
	if c == nil {
		return fmt.Errorf("add colonist: %w", activity.ErrNoWorker)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byID[c.ID()]; exists {
		return fmt.Errorf("colonist %q: %w", c.ID(), ports.ErrConflict)
	}
	d.colonists = append(d.colonists, c)
	d.byID[c.ID()] = c
	return nil
}

func (d *Driver) Now() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.now
}

func (d *Driver) Samples() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.samples
}

// Tick offers one quantum to every live root activity in colonist order,
// then persists the events and finished activities of the tick.
func (d *Driver) Tick(ctx context.Context) (TickResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step(ctx)
}

// Advance runs n ticks back to back and returns their results.
func (d *Driver) Advance(ctx context.Context, n int) ([]TickResult, error) {
	if n <= 0 {
		return nil, ErrInvalidTicks
	}
	out := make([]TickResult, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res, err := d.Tick(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

// Run ticks every interval until ctx is cancelled. Persistence failures are
// logged and do not stop the loop.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := d.Tick(ctx); err != nil {
				d.log.Error("tick failed", zap.Error(err))
			}
		}
	}
}

func (d *Driver) step(ctx context.Context) (TickResult, error) {
	d.tick++
	end := d.now + d.cfg.Quantum
	res := TickResult{Tick: d.tick}
	var records []ports.ActivityRecord

	for _, c := range d.colonists {
		s, ok := d.slots[c.ID()]
		if !ok {
			continue
		}
		// Finished activities are released one tick after they end.
		if s.act.Done() {
			delete(d.slots, c.ID())
			continue
		}
		res.Advanced++
		if _, err := s.act.Advance(d.cfg.Quantum); err != nil {
			d.abort(c, s, err)
			records = append(records, d.record(c, s, ports.OutcomeAborted, err, end))
			res.Aborted++
			continue
		}
		if s.act.Done() {
			d.deps.Metrics.RecordCompleted(s.act.Name())
			records = append(records, d.record(c, s, ports.OutcomeCompleted, nil, end))
			res.Completed++
		}
	}

	d.now = end
	res.Millisol = d.now
	res.Events = len(d.pending)
	for _, e := range d.pending {
		if e.Type == activity.EventAccident {
			res.Accidents++
		}
	}
	d.deps.Metrics.RecordTick(len(d.colonists))
	if err := d.persist(ctx, records); err != nil {
		return res, fmt.Errorf("persist tick %d: %w", d.tick, err)
	}
	return res, nil
}

// abort discards an activity whose Advance failed. EndTask still runs so its
// clear-down hooks give back shared resources.
func (d *Driver) abort(c *colonist.Colonist, s *slot, err error) {
	name := s.act.Name()
	d.log.Error("activity aborted",
		zap.String("colonist_id", c.ID()),
		zap.String("activity", name),
		zap.String("phase", string(s.act.Phase())),
		zap.Bool("contract_violation", activity.IsContractViolation(err)),
		zap.Error(err),
	)
	if activity.IsContractViolation(err) {
		d.deps.Metrics.RecordViolation(name)
	}
	d.deps.Metrics.RecordAborted(name)
	s.act.EndTask()
	delete(d.slots, c.ID())
}

func (d *Driver) record(c *colonist.Colonist, s *slot, outcome ports.ActivityOutcome, err error, endedAt float64) ports.ActivityRecord {
	rec := ports.ActivityRecord{
		ID:         s.recordID,
		ColonistID: c.ID(),
		Kind:       string(s.kind),
		Activity:   s.act.Name(),
		Outcome:    outcome,
		StartedAt:  s.startedAt,
		EndedAt:    endedAt,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

func (d *Driver) persist(ctx context.Context, records []ports.ActivityRecord) error {
	events := d.pending
	d.pending = nil
	for _, e := range events {
		if e.Type == activity.EventAccident {
			d.deps.Metrics.RecordAccident()
		}
	}
	run := func(ctx context.Context) error {
		if d.deps.Events != nil {
			order, grouped := groupByColonist(events)
			for _, id := range order {
				if err := d.deps.Events.Append(ctx, id, grouped[id]); err != nil {
					return err
				}
			}
		}
		if d.deps.Records != nil {
			for _, rec := range records {
				if err := d.deps.Records.Save(ctx, rec); err != nil {
					return err
				}
			}
		}
		if d.deps.ClockRepo != nil {
			return d.deps.ClockRepo.Save(ctx, ports.ClockState{Tick: d.tick, Millisol: d.now})
		}
		return nil
	}
	if d.deps.TxManager == nil {
		return run(ctx)
	}
	return d.deps.TxManager.RunInTx(ctx, run)
}

func groupByColonist(events []activity.Event) ([]string, map[string][]activity.Event) {
	order := []string{}
	grouped := map[string][]activity.Event{}
	for _, e := range events {
		if _, seen := grouped[e.WorkerID]; !seen {
			order = append(order, e.WorkerID)
		}
		grouped[e.WorkerID] = append(grouped[e.WorkerID], e)
	}
	return order, grouped
}

// publish is the event sink handed to every activity. It only runs while
// d.mu is held, from inside Tick or Assign.
func (d *Driver) publish(evt activity.Event) {
	evt.Millisol = d.now
	d.pending = append(d.pending, evt)
}

func (d *Driver) activityEnv() activity.Env {
	return activity.Env{
		Events:    activity.EventSinkFunc(d.publish),
		Log:       d.deps.Logger,
		Accidents: d.deps.Accidents,
	}
}

// outdoors binds the environment to the driver clock.
type outdoors struct{ d *Driver }

func (o outdoors) EVAConditions() eva.Conditions {
	return o.d.deps.Environment.ConditionsAt(o.d.now)
}

func (d *Driver) outdoors() eva.Environment {
	if d.deps.Environment == nil {
		return nil
	}
	return outdoors{d: d}
}

func (d *Driver) deposit(kg float64) {
	if kg > 0 {
		d.samples += kg
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordTick(int)         {}
func (noopMetrics) RecordCompleted(string) {}
func (noopMetrics) RecordAborted(string)   {}
func (noopMetrics) RecordViolation(string) {}
func (noopMetrics) RecordAccident()        {}
