// Package tasks holds the concrete colonist activities.
package tasks

import (
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/eva"
	"colonysim/internal/domain/world"
)

const (
	CollectSamplesName                = "Collect Samples"
	PhaseCollecting    activity.Phase = "collecting"

	// DefaultCollectionRate is kilograms of regolith per millisol for an
	// unskilled collector.
	DefaultCollectionRate = 0.05
	DefaultBagCapacity    = 2.0
	sampleExperienceRatio = 50.0
)

type CollectSamplesConfig struct {
	Airlock     eva.Airlock
	Environment eva.Environment
	Site        world.Position
	// BagCapacity is in kilograms; a negative value means no bag.
	BagCapacity float64
	Rate        float64
	// SiteDuration caps time at the site; 0 means until the bag is full.
	SiteDuration float64
	// Deposit receives the collected mass once back inside.
	Deposit func(kg float64)
	Env     activity.Env
}

// CollectSamples walks out to a site and fills a sample bag.
type CollectSamples struct {
	*eva.Operation
	capacity  float64
	rate      float64
	collected float64
	deposit   func(kg float64)
}

func NewCollectSamples(c eva.Colonist, cfg CollectSamplesConfig) (*CollectSamples, error) {
	s := &CollectSamples{
		capacity: cfg.BagCapacity,
		rate:     cfg.Rate,
		deposit:  cfg.Deposit,
	}
	if s.capacity == 0 {
		s.capacity = DefaultBagCapacity
	}
	if s.rate <= 0 {
		s.rate = DefaultCollectionRate
	}
	op, err := eva.New(c, eva.Config{
		Task: activity.Config{
			Name:         CollectSamplesName,
			Description:  "Collecting rock samples at " + cfg.Site.String(),
			CreateEvents: true,
			Env:          cfg.Env,
		},
		Airlock:      cfg.Airlock,
		Environment:  cfg.Environment,
		Site:         cfg.Site,
		SiteDuration: cfg.SiteDuration,
		Work:         []eva.WorkPhase{{Phase: PhaseCollecting, Handler: s.collecting}},
		Stow:         s.stow,
	})
	if err != nil {
		return nil, err
	}
	s.Operation = op
	if s.capacity < 0 && !s.Done() {
		s.ClearTask("no sample bag available")
	}
	return s, nil
}

func (s *CollectSamples) Collected() float64 { return s.collected }

func (s *CollectSamples) collecting(time float64) (float64, error) {
	c := s.Colonist()
	rate := s.rate * (1 + 0.1*float64(c.SkillLevel(activity.SkillAreology)))
	room := s.capacity - s.collected
	if room <= 0 {
		return time, s.FinishWork()
	}
	used := time
	if rate*time >= room {
		used = room / rate
		s.collected = s.capacity
	} else {
		s.collected += rate * time
	}
	c.AddExperience(activity.SkillAreology,
		activity.ExperienceGain(used/sampleExperienceRatio, c.Aptitude(activity.AttrExperienceAptitude), 1))
	if s.collected >= s.capacity {
		if err := s.FinishWork(); err != nil {
			return time, err
		}
	}
	return time - used, nil
}

func (s *CollectSamples) stow() {
	if s.deposit != nil && s.collected > 0 {
		s.deposit(s.collected)
	}
	// The suit is serviced on every return: refilled and cleared of faults.
	if r, ok := s.Suit().(interface{ Refill() }); ok {
		r.Refill()
	}
	if r, ok := s.Suit().(interface{ Repair() }); ok {
		r.Repair()
	}
}
