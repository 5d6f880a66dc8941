package simulation

import (
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/colonist"
	"colonysim/internal/domain/eva"
	"colonysim/internal/domain/tasks"
	"colonysim/internal/domain/world"
)

type Kind string

const (
	KindCollectSamples Kind = "collect_samples"
	KindRelax          Kind = "relax"
	KindStudy          Kind = "study"
)

// Params are the assignment options; each kind reads the ones it needs.
type Params struct {
	Site         *world.Position `json:"site,omitempty"`
	Duration     float64         `json:"duration,omitempty"`
	SiteDuration float64         `json:"site_duration,omitempty"`
	BagCapacity  float64         `json:"bag_capacity,omitempty"`
	TeacherID    string          `json:"teacher_id,omitempty"`
}

// Build is everything a factory may wire into a new activity.
type Build struct {
	Colonist    *colonist.Colonist
	Teacher     *colonist.Colonist
	Params      Params
	Env         activity.Env
	Airlock     eva.Airlock
	Environment eva.Environment
	Lab         *tasks.Lab
	DefaultSite world.Position
	Deposit     func(kg float64)
}

type Spec struct {
	Kind        Kind
	Description string
	Build       func(b Build) (activity.Activity, error)
}

func DefaultRegistry() map[Kind]Spec {
	return map[Kind]Spec{
		KindCollectSamples: {
			Kind:        KindCollectSamples,
			Description: "EVA to a site to collect rock samples",
			Build:       buildCollectSamples,
		},
		KindRelax: {
			Kind:        KindRelax,
			Description: "rest indoors to shed stress",
			Build:       buildRelax,
		},
		KindStudy: {
			Kind:        KindStudy,
			Description: "research at a lab spot, optionally taught",
			Build:       buildStudy,
		},
	}
}

func buildCollectSamples(b Build) (activity.Activity, error) {
	site := b.DefaultSite
	if b.Params.Site != nil {
		site = *b.Params.Site
	}
	return tasks.NewCollectSamples(b.Colonist, tasks.CollectSamplesConfig{
		Airlock:      b.Airlock,
		Environment:  b.Environment,
		Site:         site,
		BagCapacity:  b.Params.BagCapacity,
		SiteDuration: b.Params.SiteDuration,
		Deposit:      b.Deposit,
		Env:          b.Env,
	})
}

func buildRelax(b Build) (activity.Activity, error) {
	return tasks.NewRelax(b.Colonist, tasks.RelaxConfig{Duration: b.Params.Duration, Env: b.Env})
}

func buildStudy(b Build) (activity.Activity, error) {
	var teacher activity.Worker
	if b.Teacher != nil {
		teacher = b.Teacher
	}
	return tasks.NewStudy(b.Colonist, tasks.StudyConfig{
		Lab:      b.Lab,
		Teacher:  teacher,
		Duration: b.Params.Duration,
		Env:      b.Env,
	})
}
