// Package activity is the time-sliced execution core shared by every colonist
// activity. A Task owns time budgeting, phase dispatch, subtask delegation
// and the stress and experience side effects; concrete activities embed a
// *Task and register phase handlers on it.
package activity

import (
	"fmt"

	"go.uber.org/zap"

	"colonysim/internal/domain/accident"
)

const (
	// JobStressModifier scales positive stress for role-related activities.
	JobStressModifier = 0.5

	timeEpsilon = 1e-6
	// maxIdleIterations bounds phase changes that consume no time within one
	// call to Advance.
	maxIdleIterations = 100
)

// Activity is one node of a colonist's activity chain. All implementations
// embed *Task.
type Activity interface {
	Name() string
	Description() string
	Advance(time float64) (float64, error)
	Done() bool
	EndTask()
	AddSubTask(sub Activity) bool
	SubTask() Activity
	Phase() Phase
	Worker() Worker
	Stack() []Activity
	Trace() []Frame

	task() *Task
}

// Env carries the collaborators an activity needs from the wider simulation.
type Env struct {
	Events    EventSink
	Log       *zap.Logger
	Accidents *accident.Model
}

type Config struct {
	Name         string
	Description  string
	Worker       Worker
	EffortDriven bool
	CreateEvents bool
	// StressModifier is the stress added per millisol while active.
	StressModifier float64
	Skill          Skill
	// ExperienceRatio is millisols of work per experience point.
	ExperienceRatio float64
	// Duration is the total time budget; 0 means none.
	Duration float64
	Env      Env
}

type Task struct {
	name        string
	description string
	worker      Worker
	env         Env
	log         *zap.Logger

	done         bool
	effortDriven bool
	createEvents bool

	hasDuration   bool
	duration      float64
	timeCompleted float64

	stressModifier  float64
	skill           Skill
	experienceRatio float64

	phases  PhaseRegistry
	subTask Activity
	teacher Worker
	level   int
	onEnd   []func()
}

func NewTask(cfg Config) (*Task, error) {
	if cfg.Worker == nil {
		return nil, ErrNoWorker
	}
	if cfg.Duration < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, cfg.Duration)
	}
	log := cfg.Env.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Task{
		name:            cfg.Name,
		description:     cfg.Description,
		worker:          cfg.Worker,
		env:             cfg.Env,
		log:             log.With(zap.String("worker", cfg.Worker.ID()), zap.String("activity", cfg.Name)),
		effortDriven:    cfg.EffortDriven,
		createEvents:    cfg.CreateEvents,
		hasDuration:     cfg.Duration > 0,
		duration:        cfg.Duration,
		stressModifier:  cfg.StressModifier,
		skill:           cfg.Skill,
		experienceRatio: cfg.ExperienceRatio,
	}, nil
}

func (t *Task) task() *Task { return t }

func (t *Task) Name() string           { return t.name }
func (t *Task) Description() string    { return t.description }
func (t *Task) Worker() Worker         { return t.worker }
func (t *Task) Done() bool             { return t.done }
func (t *Task) Phase() Phase           { return t.phases.Current() }
func (t *Task) SubTask() Activity      { return t.subTask }
func (t *Task) Level() int             { return t.level }
func (t *Task) Skill() Skill           { return t.skill }
func (t *Task) TimeCompleted() float64 { return t.timeCompleted }
func (t *Task) Duration() float64      { return t.duration }
func (t *Task) Logger() *zap.Logger    { return t.log }
func (t *Task) Env() Env               { return t.env }
func (t *Task) Teacher() Worker        { return t.teacher }

// SetTeacher records who is instructing this activity. It only changes the
// experience multiplier.
func (t *Task) SetTeacher(w Worker) { t.teacher = w }

func (t *Task) AddPhase(id Phase, handler PhaseHandler) {
	t.phases.AddPhase(id, handler)
}

func (t *Task) HasPhase(id Phase) bool { return t.phases.Has(id) }

func (t *Task) Phases() []Phase { return t.phases.Phases() }

// SetPhase moves the activity to a registered phase.
func (t *Task) SetPhase(id Phase) error {
	prev := t.phases.Current()
	if err := t.phases.SetPhase(id); err != nil {
		return fmt.Errorf("%s: %w", t.name, err)
	}
	if prev != id && t.createEvents {
		t.publish(EventPhaseChanged, map[string]any{"from": string(prev), "to": string(id)})
	}
	return nil
}

// OnEnd registers a clear-down hook. Hooks run once, in reverse order, when
// the activity ends by any path.
func (t *Task) OnEnd(fn func()) {
	if fn != nil {
		t.onEnd = append(t.onEnd, fn)
	}
}

// Advance offers time to the activity and returns what it did not use.
func (t *Task) Advance(offered float64) (float64, error) {
	if t.done || offered <= 0 {
		return offered, nil
	}
	remaining := offered

	if t.subTask != nil {
		if t.subTask.Done() {
			t.subTask = nil
		} else {
			left, err := t.subTask.Advance(remaining)
			if err != nil {
				return remaining, fmt.Errorf("%s: %w", t.name, err)
			}
			remaining = snap(left)
			if t.subTask.Done() {
				t.subTask = nil
			}
		}
	}

	if t.subTask == nil && !t.done && remaining > 0 {
		if t.effortDriven && t.worker.Performance() <= 0 {
			t.log.Debug("worker incapacitated, ending effort-driven activity")
			t.EndTask()
		} else {
			left, err := t.perform(remaining)
			if err != nil {
				return left, err
			}
			remaining = left
		}
	}

	t.applyStress(offered - remaining)
	return remaining, nil
}

func (t *Task) perform(time float64) (float64, error) {
	idle := 0
	for time > 0 && !t.done {
		if t.subTask != nil {
			left, err := t.subTask.Advance(time)
			if err != nil {
				return time, fmt.Errorf("%s: %w", t.name, err)
			}
			time = snap(left)
			if !t.subTask.Done() {
				break
			}
			t.subTask = nil
			continue
		}

		before := t.phases.Current()
		left, err := t.performSlice(time)
		if err != nil {
			return time, err
		}
		consumed := time - left
		time = snap(left)

		if consumed > 0 {
			idle = 0
			continue
		}
		if t.done || t.subTask != nil {
			continue
		}
		if t.phases.Current() == before {
			// Nothing changed; the activity is waiting on something outside
			// itself and re-checks next tick.
			break
		}
		idle++
		if idle > maxIdleIterations {
			return time, fmt.Errorf("%w: phase %q", ErrStalled, t.phases.Current())
		}
	}
	return time, nil
}

func (t *Task) performSlice(time float64) (float64, error) {
	if !t.hasDuration {
		return t.dispatch(time)
	}
	required := t.duration - t.timeCompleted
	if time >= required {
		left, err := t.dispatch(required)
		if err != nil {
			return time, err
		}
		t.timeCompleted = t.duration
		t.EndTask()
		return left + (time - required), nil
	}
	left, err := t.dispatch(time)
	if err != nil {
		return time, err
	}
	t.timeCompleted += time - left
	return left, nil
}

func (t *Task) dispatch(slice float64) (float64, error) {
	left, err := t.phases.dispatch(slice)
	if err != nil {
		if IsContractViolation(err) {
			return slice, fmt.Errorf("%s: %w", t.name, err)
		}
		return slice, err
	}
	if left < 0 {
		return 0, nil
	}
	if left > slice {
		return slice, nil
	}
	return left, nil
}

func (t *Task) applyStress(elapsed float64) {
	if elapsed <= 0 || t.stressModifier == 0 {
		return
	}
	mod := t.stressModifier
	if mod > 0 {
		if t.worker.RoleRelated(t.name) {
			mod *= JobStressModifier
		}
		mod -= mod * float64(t.worker.SkillLevel(t.skill)) / 10
		if mod < 0 {
			mod = 0
		}
	}
	if mod != 0 {
		t.worker.AddStress(mod * elapsed)
	}
}

// EndTask marks the activity done. It ends the live subtask chain, runs the
// clear-down hooks and notifies the worker. Calling it again does nothing.
func (t *Task) EndTask() {
	if t.done {
		return
	}
	t.done = true
	if t.subTask != nil {
		t.subTask.EndTask()
		t.subTask = nil
	}
	for i := len(t.onEnd) - 1; i >= 0; i-- {
		t.onEnd[i]()
	}
	t.onEnd = nil
	last := t.phases.Current()
	t.phases.clear()
	t.worker.ActivityEnded(t.name)
	if t.createEvents {
		t.publishAt(EventActivityEnded, last, map[string]any{"time_completed": t.timeCompleted})
	}
}

// ClearTask ends the activity because a resource it needs is unavailable.
func (t *Task) ClearTask(reason string) {
	t.log.Warn("activity cleared", zap.String("reason", reason))
	t.EndTask()
}

// AddSubTask puts sub in the subtask slot when the slot is empty or holds a
// finished activity; otherwise the live subtask takes sub deeper down the
// chain. Finished activities are rejected.
func (t *Task) AddSubTask(sub Activity) bool {
	if sub == nil || sub.Done() || t.done {
		return false
	}
	if t.subTask != nil && !t.subTask.Done() {
		return t.subTask.AddSubTask(sub)
	}
	t.subTask = sub
	sub.task().setLevel(t.level + 1)
	if t.createEvents {
		t.publish(EventSubTaskAdded, map[string]any{"subtask": sub.Name()})
	}
	return true
}

func (t *Task) setLevel(level int) {
	t.level = level
	if t.subTask != nil {
		t.subTask.task().setLevel(level + 1)
	}
}

// Stack returns the live chain from this activity down to the deepest
// subtask.
func (t *Task) Stack() []Activity {
	out := []Activity{t}
	for sub := t.subTask; sub != nil; sub = sub.SubTask() {
		out = append(out, sub)
	}
	return out
}

type Frame struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Phase         Phase   `json:"phase,omitempty"`
	Level         int     `json:"level"`
	TimeCompleted float64 `json:"time_completed"`
	Duration      float64 `json:"duration,omitempty"`
}

func (t *Task) Trace() []Frame {
	stack := t.Stack()
	out := make([]Frame, 0, len(stack))
	for _, a := range stack {
		n := a.task()
		out = append(out, Frame{
			Name:          n.name,
			Description:   n.description,
			Phase:         n.phases.Current(),
			Level:         n.level,
			TimeCompleted: n.timeCompleted,
			Duration:      n.duration,
		})
	}
	return out
}

// AddExperience credits the worker for time spent on the activity's skill.
func (t *Task) AddExperience(time float64) {
	if t.skill == SkillNone || t.experienceRatio <= 0 || time <= 0 {
		return
	}
	teaching := 1.0
	if t.teacher != nil {
		teaching = TeachingModifier(t.teacher.Aptitude(AttrTeaching), t.worker.Aptitude(AttrAcademicAptitude))
	}
	gain := ExperienceGain(time/t.experienceRatio, t.worker.Aptitude(AttrExperienceAptitude), teaching)
	t.worker.AddExperience(t.skill, gain)
}

// CheckForAccident rolls for an accident on entity using the worker's level
// in the activity's skill. Accidents never fail the activity.
func (t *Task) CheckForAccident(entity accident.Malfunctionable, base, time float64, location string) bool {
	if t.env.Accidents == nil || entity == nil {
		return false
	}
	skill := t.worker.SkillLevel(t.skill)
	if !t.env.Accidents.MaybeTrigger(entity, base, time, skill, location, t.worker.ID()) {
		return false
	}
	t.log.Info("accident", zap.String("location", location), zap.Int("skill", skill))
	t.publish(EventAccident, map[string]any{"location": location, "skill": skill})
	return true
}

// Publish sends an event regardless of the activity's CreateEvents setting.
func (t *Task) Publish(typ EventType, payload map[string]any) {
	t.publish(typ, payload)
}

func (t *Task) publish(typ EventType, payload map[string]any) {
	t.publishAt(typ, t.phases.Current(), payload)
}

func (t *Task) publishAt(typ EventType, phase Phase, payload map[string]any) {
	if t.env.Events == nil {
		return
	}
	t.env.Events.Publish(Event{
		Type:     typ,
		WorkerID: t.worker.ID(),
		Activity: t.name,
		Phase:    phase,
		Payload:  payload,
	})
}

func snap(v float64) float64 {
	if v < timeEpsilon {
		return 0
	}
	return v
}
