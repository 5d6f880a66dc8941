package activity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeWorker struct {
	id          string
	performance float64
	skills      map[Skill]int
	roles       map[string]bool
	aptitudes   map[Attribute]int
	stress      float64
	stressCalls int
	experience  map[Skill]float64
	ended       []string
}

func newFakeWorker(id string) *fakeWorker {
	return &fakeWorker{
		id:          id,
		performance: 1,
		skills:      map[Skill]int{},
		roles:       map[string]bool{},
		aptitudes:   map[Attribute]int{},
		experience:  map[Skill]float64{},
	}
}

func (w *fakeWorker) ID() string                       { return w.id }
func (w *fakeWorker) Name() string                     { return "worker " + w.id }
func (w *fakeWorker) Performance() float64             { return w.performance }
func (w *fakeWorker) SkillLevel(s Skill) int           { return w.skills[s] }
func (w *fakeWorker) RoleRelated(name string) bool     { return w.roles[name] }
func (w *fakeWorker) Aptitude(a Attribute) int         { return w.aptitudes[a] }
func (w *fakeWorker) AddExperience(s Skill, p float64) { w.experience[s] += p }
func (w *fakeWorker) ActivityEnded(name string)        { w.ended = append(w.ended, name) }

func (w *fakeWorker) AddStress(amount float64) {
	w.stress += amount
	w.stressCalls++
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) Publish(evt Event) { s.events = append(s.events, evt) }

func (s *recordingSink) types() []EventType {
	out := make([]EventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

func mustTask(t *testing.T, cfg Config) *Task {
	t.Helper()
	if cfg.Worker == nil {
		cfg.Worker = newFakeWorker("w-1")
	}
	if cfg.Name == "" {
		cfg.Name = "test activity"
	}
	task, err := NewTask(cfg)
	require.NoError(t, err)
	return task
}

// consume returns a handler that uses up to n millisols per call and records
// every slice it is offered.
func consume(n float64, slices *[]float64) PhaseHandler {
	return func(time float64) (float64, error) {
		if slices != nil {
			*slices = append(*slices, time)
		}
		if time <= n {
			return 0, nil
		}
		return time - n, nil
	}
}

// consumeAll uses the whole slice.
func consumeAll(slices *[]float64) PhaseHandler {
	return func(time float64) (float64, error) {
		if slices != nil {
			*slices = append(*slices, time)
		}
		return 0, nil
	}
}
