// Package runtime derives outdoor conditions from the sol clock and a dust
// storm schedule.
package runtime

import (
	"sort"

	"colonysim/internal/domain/eva"
	"colonysim/internal/domain/world"
)

// Storm is a dust storm window in absolute millisols, End exclusive.
type Storm struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
}

func (s Storm) covers(now float64) bool { return now >= s.Start && now < s.End }

type Config struct {
	Clock  world.Clock
	Storms []Storm
}

type Provider struct {
	clock  world.Clock
	storms []Storm
}

func NewProvider(cfg Config) Provider {
	if cfg.Clock == (world.Clock{}) {
		cfg.Clock = world.DefaultClock()
	}
	storms := make([]Storm, 0, len(cfg.Storms))
	for _, s := range cfg.Storms {
		if s.End > s.Start {
			storms = append(storms, s)
		}
	}
	sort.Slice(storms, func(i, j int) bool { return storms[i].Start < storms[j].Start })
	return Provider{clock: cfg.Clock, storms: storms}
}

// ConditionsAt reports daylight and dust storm state at an absolute millisol.
func (p Provider) ConditionsAt(now float64) eva.Conditions {
	phase, _ := p.clock.PhaseAt(now)
	return eva.Conditions{
		Daylight:  phase == world.PhaseDay,
		DustStorm: p.stormAt(now),
	}
}

func (p Provider) stormAt(now float64) bool {
	for _, s := range p.storms {
		if s.Start > now {
			return false
		}
		if s.covers(now) {
			return true
		}
	}
	return false
}
