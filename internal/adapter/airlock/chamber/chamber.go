// Package chamber is an in-process airlock: a pressure chamber with an inner
// and an outer door, a single operator and two waiting queues.
package chamber

import (
	"slices"
	"sync"

	"colonysim/internal/domain/eva"
	"colonysim/internal/domain/world"
)

const (
	DefaultCycleTime = 10.0
	DefaultCapacity  = 4
)

var _ eva.Airlock = (*Airlock)(nil)

type Config struct {
	Name string
	// CycleTime is the millisols one pressurise or depressurise run takes.
	CycleTime float64
	Capacity  int
	Interior  world.Position
	Exterior  world.Position
}

type Airlock struct {
	mu  sync.Mutex
	cfg Config

	state       eva.State
	innerLocked bool
	outerLocked bool
	operator    string
	remaining   float64

	occupants     []string
	awaitingInner []string
	awaitingOuter []string
}

// New returns a pressurized airlock with the inner door open.
func New(cfg Config) *Airlock {
	if cfg.CycleTime <= 0 {
		cfg.CycleTime = DefaultCycleTime
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Name == "" {
		cfg.Name = "airlock"
	}
	return &Airlock{
		cfg:         cfg,
		state:       eva.Pressurized,
		outerLocked: true,
	}
}

func (a *Airlock) Name() string                     { return a.cfg.Name }
func (a *Airlock) ExteriorPosition() world.Position { return a.cfg.Exterior }
func (a *Airlock) InteriorPosition() world.Position { return a.cfg.Interior }

func (a *Airlock) State() eva.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Airlock) InnerDoorLocked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.innerLocked
}

func (a *Airlock) OuterDoorLocked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.outerLocked
}

func (a *Airlock) EnqueueAtInnerDoor(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.awaitingInner = a.enqueue(a.awaitingInner, id)
}

func (a *Airlock) EnqueueAtOuterDoor(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.awaitingOuter = a.enqueue(a.awaitingOuter, id)
}

func (a *Airlock) enqueue(queue []string, id string) []string {
	if id == "" || slices.Contains(queue, id) || slices.Contains(a.occupants, id) {
		return queue
	}
	return append(queue, id)
}

func (a *Airlock) Activate(id string) bool {
	if id == "" {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.state.Steady() {
		if a.operator == "" {
			a.operator = id
		}
		return a.operator == id
	}
	if a.operator != "" && a.operator != id {
		return false
	}
	a.operator = id
	a.innerLocked = true
	a.outerLocked = true
	a.remaining = a.cfg.CycleTime
	if a.state == eva.Pressurized {
		a.state = eva.Depressurizing
	} else {
		a.state = eva.Pressurizing
	}
	return true
}

func (a *Airlock) Operator() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.operator, a.operator != ""
}

func (a *Airlock) ClearOperator() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.operator = ""
}

func (a *Airlock) RemainingCycleTime() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remaining
}

func (a *Airlock) AdvanceCycle(id string, time float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id == "" || a.operator != id || a.state.Steady() || time <= 0 {
		return false
	}
	a.remaining -= time
	if a.remaining <= 1e-9 {
		a.remaining = 0
		a.settle()
	}
	return true
}

// settle finishes a cycle and opens the door on the new pressure side.
func (a *Airlock) settle() {
	switch a.state {
	case eva.Depressurizing:
		a.state = eva.Depressurized
		a.innerLocked = true
		a.outerLocked = false
	case eva.Pressurizing:
		a.state = eva.Pressurized
		a.innerLocked = false
		a.outerLocked = true
	}
}

func (a *Airlock) OccupiedBy(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Contains(a.occupants, id)
}

func (a *Airlock) StepIn(id string, door eva.Door) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id == "" || a.locked(door) || slices.Contains(a.occupants, id) || len(a.occupants) >= a.cfg.Capacity {
		return false
	}
	a.occupants = append(a.occupants, id)
	a.awaitingInner = remove(a.awaitingInner, id)
	a.awaitingOuter = remove(a.awaitingOuter, id)
	return true
}

func (a *Airlock) StepOut(id string, door eva.Door) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.locked(door) || !slices.Contains(a.occupants, id) {
		return false
	}
	a.occupants = remove(a.occupants, id)
	if a.operator == id {
		a.operator = ""
	}
	return true
}

func (a *Airlock) Evict(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	inside := slices.Contains(a.occupants, id)
	a.occupants = remove(a.occupants, id)
	a.awaitingInner = remove(a.awaitingInner, id)
	a.awaitingOuter = remove(a.awaitingOuter, id)
	if id != "" && a.operator == id {
		a.operator = ""
	}
	return inside
}

func (a *Airlock) locked(door eva.Door) bool {
	if door == eva.InnerDoor {
		return a.innerLocked
	}
	return a.outerLocked
}

func remove(list []string, id string) []string {
	return slices.DeleteFunc(list, func(v string) bool { return v == id })
}
