// Package accident injects probabilistic failures into equipment while a
// colonist works with it. Damage itself is left to the equipment.
package accident

import (
	"math/rand/v2"
)

// BaseChance is the default per-millisol accident chance, in percent.
const BaseChance = 0.01

// Malfunctionable is implemented by anything an accident can happen to.
type Malfunctionable interface {
	// AccidentModifier scales risk by wear; 1 is a pristine entity.
	AccidentModifier() float64
	Accident(location string, workerID string)
}

type Model struct {
	rng *rand.Rand
}

func New(seed uint64) *Model {
	return NewWithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func NewWithRand(rng *rand.Rand) *Model {
	return &Model{rng: rng}
}

// ScaleForSkill raises risk for novices (up to 4x at skill 0) and divides it
// for experts.
func ScaleForSkill(chance float64, skill int) float64 {
	if skill < 0 {
		skill = 0
	}
	if skill <= 3 {
		return chance * float64(4-skill)
	}
	return chance / float64(skill-2)
}

// Probability returns the chance in [0,1] that an accident happens during a
// slice of the given length.
func Probability(base, time float64, skill int, wear float64) float64 {
	if time <= 0 || base <= 0 || wear <= 0 {
		return 0
	}
	p := ScaleForSkill(base, skill) * wear * time / 100
	if p > 1 {
		return 1
	}
	return p
}

// MaybeTrigger makes one Bernoulli draw and forwards a hit to the entity.
func (m *Model) MaybeTrigger(entity Malfunctionable, base, time float64, skill int, location, workerID string) bool {
	if m == nil || entity == nil {
		return false
	}
	p := Probability(base, time, skill, entity.AccidentModifier())
	if p <= 0 || m.rng.Float64() >= p {
		return false
	}
	entity.Accident(location, workerID)
	return true
}
