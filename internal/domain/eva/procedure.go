package eva

import (
	"go.uber.org/zap"

	"colonysim/internal/domain/activity"
)

// passThrough moves the colonist one step further along r and reports
// whether they came out on the far side. Time is only spent by the operator
// advancing a cycle; everyone else waits and re-checks on the next tick.
func (o *Operation) passThrough(time float64, r route) (float64, bool) {
	id := o.colonist.ID()
	for {
		if o.airlock.OccupiedBy(id) {
			if o.airlock.State() == r.exitState {
				if !o.airlock.StepOut(id, r.exitDoor) {
					return time, false
				}
				o.releaseOperator()
				return time, true
			}
		} else {
			if o.airlock.State() == r.enterState {
				if !o.airlock.StepIn(id, r.enterDoor) {
					r.enqueue(id)
					return time, false
				}
				continue
			}
			r.enqueue(id)
		}

		left := o.cycle(time)
		if left >= time {
			return time, false
		}
		time = left
	}
}

// cycle advances the chamber's cycle if the colonist operates it.
func (o *Operation) cycle(time float64) float64 {
	id := o.colonist.ID()
	if op, held := o.airlock.Operator(); !held || op == id {
		o.airlock.Activate(id)
	}
	if op, held := o.airlock.Operator(); !held || op != id {
		return time
	}
	step := o.airlock.RemainingCycleTime()
	if step > time {
		step = time
	}
	if step <= 0 || !o.airlock.AdvanceCycle(id, step) {
		return time
	}
	return time - step
}

// releaseOperator gives up operator-ship if this colonist holds it.
func (o *Operation) releaseOperator() bool {
	if o.airlock == nil {
		return false
	}
	op, held := o.airlock.Operator()
	if !held || op != o.colonist.ID() {
		return false
	}
	o.airlock.ClearOperator()
	o.Publish(activity.EventAirlockOperatorReleased, map[string]any{"airlock": o.airlock.Name()})
	return true
}

// leaveChamber puts a colonist whose activity ended mid-transfer back on the
// side they came from, so the chamber does not hold them for good.
func (o *Operation) leaveChamber() {
	if o.airlock == nil {
		return
	}
	if !o.airlock.Evict(o.colonist.ID()) {
		return
	}
	if o.colonist.Outside() {
		o.colonist.SetPosition(o.airlock.ExteriorPosition())
	} else {
		o.colonist.SetPosition(o.airlock.InteriorPosition())
	}
	o.Logger().Info("left airlock chamber", zap.String("airlock", o.airlock.Name()), zap.Bool("outside", o.colonist.Outside()))
}
