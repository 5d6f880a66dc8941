// Package walk moves a colonist toward a point at walking speed.
package walk

import (
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/world"
)

const (
	Name                        = "Walk"
	PhaseWalking activity.Phase = "walking"

	// DefaultSpeed is in meters per millisol.
	DefaultSpeed = 60.0
)

type Mover interface {
	activity.Worker
	Position() world.Position
	SetPosition(p world.Position)
}

type Config struct {
	Target world.Position
	Speed  float64
	Env    activity.Env
}

type Walk struct {
	*activity.Task
	mover  Mover
	target world.Position
	speed  float64
}

// New returns a walk toward cfg.Target. A mover already at the target gets
// a walk that is done on creation.
func New(mover Mover, cfg Config) (*Walk, error) {
	if mover == nil {
		return nil, activity.ErrNoWorker
	}
	task, err := activity.NewTask(activity.Config{
		Name:        Name,
		Description: "Walking to " + cfg.Target.String(),
		Worker:      mover,
		Env:         cfg.Env,
	})
	if err != nil {
		return nil, err
	}
	speed := cfg.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}
	w := &Walk{Task: task, mover: mover, target: cfg.Target, speed: speed}
	w.AddPhase(PhaseWalking, w.walking)
	if err := w.SetPhase(PhaseWalking); err != nil {
		return nil, err
	}
	if mover.Position().Close(cfg.Target) {
		w.EndTask()
	}
	return w, nil
}

func (w *Walk) Target() world.Position { return w.target }

func (w *Walk) walking(time float64) (float64, error) {
	pos := w.mover.Position()
	dist := pos.DistanceTo(w.target)
	if dist <= world.Tolerance {
		w.mover.SetPosition(w.target)
		w.EndTask()
		return time, nil
	}
	reach := w.speed * time
	if reach >= dist {
		w.mover.SetPosition(w.target)
		w.EndTask()
		return time - dist/w.speed, nil
	}
	w.mover.SetPosition(pos.MoveToward(w.target, reach))
	return 0, nil
}
