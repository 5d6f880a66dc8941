package tasks

import (
	"slices"
	"sync"

	"colonysim/internal/domain/activity"
)

const (
	StudyName                    = "Study"
	PhaseStudying activity.Phase = "studying"

	DefaultStudyDuration = 100.0
	StudyStressModifier  = 0.1
	studyExperienceRatio = 25.0
)

// Lab is a room with a fixed number of research spots.
type Lab struct {
	mu       sync.Mutex
	name     string
	capacity int
	users    []string
}

func NewLab(name string, capacity int) *Lab {
	return &Lab{name: name, capacity: capacity}
}

func (l *Lab) Name() string { return l.name }

func (l *Lab) Reserve(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if slices.Contains(l.users, id) {
		return true
	}
	if len(l.users) >= l.capacity {
		return false
	}
	l.users = append(l.users, id)
	return true
}

func (l *Lab) Release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.users = slices.DeleteFunc(l.users, func(v string) bool { return v == id })
}

func (l *Lab) Users() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.users...)
}

type StudyConfig struct {
	Lab      *Lab
	Teacher  activity.Worker
	Duration float64
	Env      activity.Env
}

// Study occupies a lab spot and turns effort into research progress.
type Study struct {
	*activity.Task
	progress float64
}

func NewStudy(w activity.Worker, cfg StudyConfig) (*Study, error) {
	d := cfg.Duration
	if d <= 0 {
		d = DefaultStudyDuration
	}
	task, err := activity.NewTask(activity.Config{
		Name:            StudyName,
		Description:     "Studying",
		Worker:          w,
		EffortDriven:    true,
		CreateEvents:    true,
		StressModifier:  StudyStressModifier,
		Skill:           activity.SkillResearch,
		ExperienceRatio: studyExperienceRatio,
		Duration:        d,
		Env:             cfg.Env,
	})
	if err != nil {
		return nil, err
	}
	s := &Study{Task: task}
	s.AddPhase(PhaseStudying, s.studying)
	if err := s.SetPhase(PhaseStudying); err != nil {
		return nil, err
	}

	lab := cfg.Lab
	if lab == nil || !lab.Reserve(w.ID()) {
		s.ClearTask("no research spot available")
		return s, nil
	}
	s.OnEnd(func() { lab.Release(w.ID()) })
	if cfg.Teacher != nil && cfg.Teacher.ID() != w.ID() {
		s.SetTeacher(cfg.Teacher)
	}
	return s, nil
}

func (s *Study) Progress() float64 { return s.progress }

func (s *Study) studying(time float64) (float64, error) {
	s.progress += time * s.Worker().Performance()
	s.AddExperience(time)
	return 0, nil
}
