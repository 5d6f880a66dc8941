package activity

import "fmt"

// Phase names one state of an activity's internal state machine. Concrete
// activities declare their own closed set of Phase constants.
type Phase string

const NoPhase Phase = ""

// PhaseHandler performs work for one slice of time and returns the part of
// the slice it did not use.
type PhaseHandler func(time float64) (float64, error)

// PhaseRegistry is the ordered set of phases an activity has registered
// together with the current-phase pointer.
type PhaseRegistry struct {
	order    []Phase
	handlers map[Phase]PhaseHandler
	current  Phase
}

// AddPhase registers id with its handler. Registering the same id twice
// replaces the handler and keeps its place in the order.
func (r *PhaseRegistry) AddPhase(id Phase, handler PhaseHandler) {
	if id == NoPhase {
		panic("activity: empty phase id")
	}
	if handler == nil {
		panic(fmt.Sprintf("activity: nil handler for phase %q", id))
	}
	if r.handlers == nil {
		r.handlers = make(map[Phase]PhaseHandler)
	}
	if _, ok := r.handlers[id]; !ok {
		r.order = append(r.order, id)
	}
	r.handlers[id] = handler
}

func (r *PhaseRegistry) SetPhase(id Phase) error {
	if !r.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnregisteredPhase, id)
	}
	r.current = id
	return nil
}

func (r *PhaseRegistry) Current() Phase {
	return r.current
}

func (r *PhaseRegistry) Has(id Phase) bool {
	if id == NoPhase {
		return false
	}
	_, ok := r.handlers[id]
	return ok
}

func (r *PhaseRegistry) Phases() []Phase {
	out := make([]Phase, len(r.order))
	copy(out, r.order)
	return out
}

func (r *PhaseRegistry) clear() {
	r.current = NoPhase
}

func (r *PhaseRegistry) dispatch(time float64) (float64, error) {
	if r.current == NoPhase {
		return time, ErrNoPhase
	}
	handler, ok := r.handlers[r.current]
	if !ok {
		return time, fmt.Errorf("%w: %q", ErrUnregisteredPhase, r.current)
	}
	return handler(time)
}
