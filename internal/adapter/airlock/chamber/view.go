package chamber

import "colonysim/internal/domain/eva"

type View struct {
	Name               string    `json:"name"`
	State              eva.State `json:"state"`
	Operator           string    `json:"operator,omitempty"`
	RemainingCycleTime float64   `json:"remaining_cycle_time"`
	InnerDoorLocked    bool      `json:"inner_door_locked"`
	OuterDoorLocked    bool      `json:"outer_door_locked"`
	Occupants          []string  `json:"occupants"`
	AwaitingInnerDoor  []string  `json:"awaiting_inner_door"`
	AwaitingOuterDoor  []string  `json:"awaiting_outer_door"`
}

func (a *Airlock) Snapshot() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return View{
		Name:               a.cfg.Name,
		State:              a.state,
		Operator:           a.operator,
		RemainingCycleTime: a.remaining,
		InnerDoorLocked:    a.innerLocked,
		OuterDoorLocked:    a.outerLocked,
		Occupants:          append([]string{}, a.occupants...),
		AwaitingInnerDoor:  append([]string{}, a.awaitingInner...),
		AwaitingOuterDoor:  append([]string{}, a.awaitingOuter...),
	}
}

// SnapshotAny lets callers outside the adapter layer expose the view without
// importing it.
func (a *Airlock) SnapshotAny() any { return a.Snapshot() }
