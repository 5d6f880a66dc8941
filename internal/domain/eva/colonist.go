package eva

import (
	"colonysim/internal/domain/accident"
	"colonysim/internal/domain/walk"
)

// Suit is the life-support gear a colonist wears outside.
type Suit interface {
	accident.Malfunctionable
	Name() string
	OxygenFraction() float64
	HasMalfunction() bool
	Consume(time float64)
}

type Colonist interface {
	walk.Mover
	Outside() bool
	SetOutside(outside bool)
	// Suit returns nil when the colonist has no suit.
	Suit() Suit
	Stress() float64
}

type Conditions struct {
	Daylight  bool `json:"daylight"`
	DustStorm bool `json:"dust_storm"`
}

// Environment reports the outdoor conditions that matter for EVA.
type Environment interface {
	EVAConditions() Conditions
}
