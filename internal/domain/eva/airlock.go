package eva

import "colonysim/internal/domain/world"

type State string

const (
	Pressurized    State = "pressurized"
	Depressurizing State = "depressurizing"
	Depressurized  State = "depressurized"
	Pressurizing   State = "pressurizing"
)

// Steady reports whether the chamber is between cycles.
func (s State) Steady() bool {
	return s == Pressurized || s == Depressurized
}

type Door string

const (
	InnerDoor Door = "inner"
	OuterDoor Door = "outer"
)

// Airlock is the shared chamber colonists pass through to go outside. At most
// one colonist is its operator, and only the operator advances a cycle.
type Airlock interface {
	Name() string
	State() State
	OuterDoorLocked() bool
	InnerDoorLocked() bool
	EnqueueAtOuterDoor(id string)
	EnqueueAtInnerDoor(id string)
	// Activate starts a cycle if none is running and makes id the operator
	// if nobody is. It reports whether id operates the chamber afterwards.
	Activate(id string) bool
	Operator() (string, bool)
	ClearOperator()
	RemainingCycleTime() float64
	// AdvanceCycle fails unless id is the operator.
	AdvanceCycle(id string, time float64) bool
	OccupiedBy(id string) bool
	StepIn(id string, door Door) bool
	StepOut(id string, door Door) bool
	// Evict removes id from the chamber and both queues whatever the door
	// state, and drops its operator-ship. It reports whether id was inside.
	Evict(id string) bool
	ExteriorPosition() world.Position
	InteriorPosition() world.Position
}

// route describes one direction of travel through the chamber.
type route struct {
	enterDoor  Door
	enterState State
	exitDoor   Door
	exitState  State
	enqueue    func(id string)
}

func egress(a Airlock) route {
	return route{
		enterDoor:  InnerDoor,
		enterState: Pressurized,
		exitDoor:   OuterDoor,
		exitState:  Depressurized,
		enqueue:    a.EnqueueAtInnerDoor,
	}
}

func ingress(a Airlock) route {
	return route{
		enterDoor:  OuterDoor,
		enterState: Depressurized,
		exitDoor:   InnerDoor,
		exitState:  Pressurized,
		enqueue:    a.EnqueueAtOuterDoor,
	}
}
