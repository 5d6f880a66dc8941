// Package equipment holds the gear colonists carry outside.
package equipment

import (
	"fmt"
	"sync"
)

const (
	DefaultOxygenCapacity = 1.0   // kg
	DefaultOxygenRate     = 0.002 // kg per millisol
	accidentWear          = 10.0
)

type SuitConfig struct {
	OxygenCapacity float64
	OxygenRate     float64
	Condition      float64
}

// Suit is an EVA suit. Its condition (0-100) drives accident risk, and every
// accident leaves a malfunction until the suit is repaired.
type Suit struct {
	mu           sync.Mutex
	name         string
	oxygen       float64
	capacity     float64
	rate         float64
	condition    float64
	malfunctions []string
}

func NewSuit(name string, cfg SuitConfig) *Suit {
	if cfg.OxygenCapacity <= 0 {
		cfg.OxygenCapacity = DefaultOxygenCapacity
	}
	if cfg.OxygenRate <= 0 {
		cfg.OxygenRate = DefaultOxygenRate
	}
	if cfg.Condition <= 0 || cfg.Condition > 100 {
		cfg.Condition = 100
	}
	return &Suit{
		name:      name,
		oxygen:    cfg.OxygenCapacity,
		capacity:  cfg.OxygenCapacity,
		rate:      cfg.OxygenRate,
		condition: cfg.Condition,
	}
}

func (s *Suit) Name() string { return s.name }

func (s *Suit) OxygenFraction() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.oxygen / s.capacity
}

func (s *Suit) Condition() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.condition
}

// Consume draws oxygen for time millisols of use.
func (s *Suit) Consume(time float64) {
	if time <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oxygen -= s.rate * time
	if s.oxygen < 0 {
		s.oxygen = 0
	}
}

func (s *Suit) Refill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oxygen = s.capacity
}

func (s *Suit) HasMalfunction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.malfunctions) > 0
}

func (s *Suit) Malfunctions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.malfunctions))
	copy(out, s.malfunctions)
	return out
}

func (s *Suit) Repair() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.malfunctions = nil
}

// AccidentModifier grows from 1 for a pristine suit to 2 for a worn-out one.
func (s *Suit) AccidentModifier() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 1 + (1 - s.condition/100)
}

func (s *Suit) Accident(location, workerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.condition -= accidentWear
	if s.condition < 0 {
		s.condition = 0
	}
	s.malfunctions = append(s.malfunctions, fmt.Sprintf("suit breach at %s (worn by %s)", location, workerID))
}
