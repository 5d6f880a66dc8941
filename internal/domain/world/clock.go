package world

import "math"

// MillisolsPerSol is the number of base time units in one Martian day.
const MillisolsPerSol = 1000.0

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

type ClockConfig struct {
	// StartMillisol is the time of sol at simulation time zero.
	StartMillisol float64
	SunriseAt     float64
	SunsetAt      float64
}

// Clock maps simulation time (millisols since the epoch) onto the day/night
// cycle of a sol.
type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.SunriseAt <= 0 || cfg.SunsetAt >= MillisolsPerSol || cfg.SunsetAt <= cfg.SunriseAt {
		cfg.SunriseAt = 250
		cfg.SunsetAt = 750
	}
	if cfg.StartMillisol < 0 || cfg.StartMillisol >= MillisolsPerSol {
		cfg.StartMillisol = 0
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

// Sol returns the 1-based sol number at the given time.
func (c Clock) Sol(now float64) int {
	elapsed := c.elapsed(now)
	return int(math.Floor(elapsed/MillisolsPerSol)) + 1
}

// MillisolOfSol returns the position within the current sol, in [0, 1000).
func (c Clock) MillisolOfSol(now float64) float64 {
	return math.Mod(c.elapsed(now), MillisolsPerSol)
}

// PhaseAt returns the lighting phase at now and the millisols until it flips.
func (c Clock) PhaseAt(now float64) (Phase, float64) {
	offset := c.MillisolOfSol(now)
	switch {
	case offset < c.cfg.SunriseAt:
		return PhaseNight, c.cfg.SunriseAt - offset
	case offset < c.cfg.SunsetAt:
		return PhaseDay, c.cfg.SunsetAt - offset
	default:
		return PhaseNight, MillisolsPerSol - offset + c.cfg.SunriseAt
	}
}

func (c Clock) elapsed(now float64) float64 {
	if now < 0 {
		now = 0
	}
	return now + c.cfg.StartMillisol
}
