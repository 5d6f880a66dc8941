package eva_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"colonysim/internal/adapter/airlock/chamber"
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/colonist"
	"colonysim/internal/domain/equipment"
	"colonysim/internal/domain/eva"
	"colonysim/internal/domain/world"
)

const phaseDig activity.Phase = "dig"

var (
	interior = world.Position{X: 0, Y: 0}
	exterior = world.Position{X: 5, Y: 0}
	site     = world.Position{X: 65, Y: 0}
)

type fakeEnv struct {
	conditions eva.Conditions
}

func (e *fakeEnv) EVAConditions() eva.Conditions { return e.conditions }

func daylight() *fakeEnv {
	return &fakeEnv{conditions: eva.Conditions{Daylight: true}}
}

type recordingSink struct {
	events []activity.Event
}

func (s *recordingSink) Publish(evt activity.Event) { s.events = append(s.events, evt) }

func (s *recordingSink) count(typ activity.EventType) int {
	n := 0
	for _, e := range s.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// auditedAirlock counts cycle progress made by anyone but the operator.
type auditedAirlock struct {
	*chamber.Airlock
	violations int
}

func (a *auditedAirlock) AdvanceCycle(id string, time float64) bool {
	before := a.Airlock.RemainingCycleTime()
	op, _ := a.Airlock.Operator()
	ok := a.Airlock.AdvanceCycle(id, time)
	if id != op && (ok || a.Airlock.RemainingCycleTime() < before) {
		a.violations++
	}
	return ok
}

func newAirlock() *auditedAirlock {
	return newAirlockWithCapacity(0)
}

func newAirlockWithCapacity(capacity int) *auditedAirlock {
	return &auditedAirlock{Airlock: chamber.New(chamber.Config{
		Name:      "north lock",
		CycleTime: 8,
		Capacity:  capacity,
		Interior:  interior,
		Exterior:  exterior,
	})}
}

func newColonist(id string) *colonist.Colonist {
	return colonist.New(colonist.Config{
		ID:       id,
		Name:     id,
		Position: interior,
		Suit:     equipment.NewSuit(id+"-suit", equipment.SuitConfig{}),
	})
}

// digger works until it has dug for quota millisols, then asks to go home.
type digger struct {
	*eva.Operation
	quota  float64
	dug    float64
	stowed bool
}

func newDigger(t *testing.T, c eva.Colonist, lock eva.Airlock, env eva.Environment, quota float64, sink activity.EventSink) *digger {
	t.Helper()
	d := &digger{quota: quota}
	op, err := eva.New(c, eva.Config{
		Task:        activity.Config{Name: "Dig", CreateEvents: true, Env: activity.Env{Events: sink}},
		Airlock:     lock,
		Environment: env,
		Site:        site,
		Work:        []eva.WorkPhase{{Phase: phaseDig, Handler: d.dig}},
		Stow:        func() { d.stowed = true },
	})
	require.NoError(t, err)
	d.Operation = op
	return d
}

func (d *digger) dig(time float64) (float64, error) {
	use := time
	if d.quota-d.dug < use {
		use = d.quota - d.dug
	}
	d.dug += use
	if d.dug >= d.quota {
		d.RequestEnd("quota reached")
	}
	return time - use, nil
}

// runUntilDone advances every activity with the same quantum each tick and
// returns the tick on which all of them were done.
func runUntilDone(t *testing.T, quantum float64, maxTicks int, acts ...activity.Activity) int {
	t.Helper()
	for tick := 1; tick <= maxTicks; tick++ {
		allDone := true
		for _, a := range acts {
			if a.Done() {
				continue
			}
			allDone = false
			_, err := a.Advance(quantum)
			require.NoError(t, err)
		}
		if allDone {
			return tick
		}
	}
	t.Fatalf("activities not done after %d ticks", maxTicks)
	return 0
}
