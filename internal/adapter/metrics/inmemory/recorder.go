package inmemory

import (
	"sync"

	"colonysim/internal/app/ports"
)

var _ ports.SimMetrics = (*Recorder)(nil)

type Snapshot struct {
	Ticks              uint64            `json:"ticks"`
	LastColonistCount  int               `json:"last_colonist_count"`
	ActivitiesTotal    uint64            `json:"activities_total"`
	ActivitiesComplete uint64            `json:"activities_completed"`
	ActivitiesAborted  uint64            `json:"activities_aborted"`
	Violations         uint64            `json:"contract_violations"`
	Accidents          uint64            `json:"accidents"`
	CompletedByName    map[string]uint64 `json:"completed_by_activity"`
	AbortedByName      map[string]uint64 `json:"aborted_by_activity"`
}

type Recorder struct {
	mu         sync.Mutex
	ticks      uint64
	colonists  int
	completed  uint64
	aborted    uint64
	violations uint64
	accidents  uint64
	byDone     map[string]uint64
	byAborted  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byDone:    map[string]uint64{},
		byAborted: map[string]uint64{},
	}
}

func (r *Recorder) RecordTick(colonists int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.colonists = colonists
}

func (r *Recorder) RecordCompleted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
	r.byDone[name]++
}

func (r *Recorder) RecordAborted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aborted++
	r.byAborted[name]++
}

// RecordViolation counts a contract violation; the matching abort is
// recorded separately.
func (r *Recorder) RecordViolation(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.violations++
}

func (r *Recorder) RecordAccident() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accidents++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Ticks:              r.ticks,
		LastColonistCount:  r.colonists,
		ActivitiesComplete: r.completed,
		ActivitiesAborted:  r.aborted,
		ActivitiesTotal:    r.completed + r.aborted,
		Violations:         r.violations,
		Accidents:          r.accidents,
		CompletedByName:    make(map[string]uint64, len(r.byDone)),
		AbortedByName:      make(map[string]uint64, len(r.byAborted)),
	}
	for k, v := range r.byDone {
		out.CompletedByName[k] = v
	}
	for k, v := range r.byAborted {
		out.AbortedByName[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
