package world

import (
	"fmt"
	"math"
)

// Tolerance is the distance (meters) under which two positions coincide.
const Tolerance = 0.01

// Position is a settlement-local coordinate in meters.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

func (p Position) Close(o Position) bool {
	return p.DistanceTo(o) <= Tolerance
}

// MoveToward returns the point reached after travelling step meters toward
// target, stopping on the target.
func (p Position) MoveToward(target Position, step float64) Position {
	dist := p.DistanceTo(target)
	if step <= 0 {
		return p
	}
	if dist <= step || dist == 0 {
		return target
	}
	ratio := step / dist
	return Position{
		X: p.X + (target.X-p.X)*ratio,
		Y: p.Y + (target.Y-p.Y)*ratio,
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
