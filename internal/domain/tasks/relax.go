package tasks

import "colonysim/internal/domain/activity"

const (
	RelaxName                    = "Relax"
	PhaseRelaxing activity.Phase = "relaxing"

	DefaultRelaxDuration = 50.0
	RelaxStressModifier  = -0.3
)

type RelaxConfig struct {
	Duration float64
	Env      activity.Env
}

// Relax lets stress drain for a fixed stretch of time.
type Relax struct {
	*activity.Task
}

func NewRelax(w activity.Worker, cfg RelaxConfig) (*Relax, error) {
	d := cfg.Duration
	if d <= 0 {
		d = DefaultRelaxDuration
	}
	task, err := activity.NewTask(activity.Config{
		Name:           RelaxName,
		Description:    "Relaxing",
		Worker:         w,
		CreateEvents:   true,
		StressModifier: RelaxStressModifier,
		Duration:       d,
		Env:            cfg.Env,
	})
	if err != nil {
		return nil, err
	}
	r := &Relax{Task: task}
	r.AddPhase(PhaseRelaxing, r.relaxing)
	if err := r.SetPhase(PhaseRelaxing); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Relax) relaxing(float64) (float64, error) {
	return 0, nil
}
