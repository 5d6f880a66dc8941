package world

import "testing"

func TestClockPhaseCycle(t *testing.T) {
	clock := NewClock(ClockConfig{
		StartMillisol: 0,
		SunriseAt:     200,
		SunsetAt:      800,
	})

	phase, remain := clock.PhaseAt(0)
	if phase != PhaseNight {
		t.Fatalf("expected night at start, got %s", phase)
	}
	if remain != 200 {
		t.Fatalf("expected 200 millisols until sunrise, got %v", remain)
	}

	phase, remain = clock.PhaseAt(350)
	if phase != PhaseDay {
		t.Fatalf("expected day at 350, got %s", phase)
	}
	if remain != 450 {
		t.Fatalf("expected 450 remain, got %v", remain)
	}

	phase, remain = clock.PhaseAt(900)
	if phase != PhaseNight {
		t.Fatalf("expected night after sunset, got %s", phase)
	}
	if remain != 300 {
		t.Fatalf("expected 300 until next sunrise, got %v", remain)
	}

	phase, _ = clock.PhaseAt(1250)
	if phase != PhaseDay {
		t.Fatalf("expected cycle back to day on sol 2, got %s", phase)
	}
	if got := clock.Sol(1250); got != 2 {
		t.Fatalf("expected sol 2, got %d", got)
	}
}

func TestNewClockFallsBackToDefaults(t *testing.T) {
	clock := NewClock(ClockConfig{SunriseAt: 900, SunsetAt: 100})
	phase, _ := clock.PhaseAt(500)
	if phase != PhaseDay {
		t.Fatalf("expected default daylight window to cover 500, got %s", phase)
	}
	if got := clock.MillisolOfSol(-10); got != 0 {
		t.Fatalf("expected negative time clamped to 0, got %v", got)
	}
}

func TestClockStartsPartWayThroughSol(t *testing.T) {
	clock := NewClock(ClockConfig{StartMillisol: 300, SunriseAt: 250, SunsetAt: 750})
	phase, remain := clock.PhaseAt(0)
	if phase != PhaseDay {
		t.Fatalf("expected day at start, got %s", phase)
	}
	if remain != 450 {
		t.Fatalf("expected 450 millisols until sunset, got %v", remain)
	}
	if got := clock.Sol(650); got != 1 {
		t.Fatalf("expected sol 1 before the sol rolls over, got %d", got)
	}
	if got := clock.Sol(700); got != 2 {
		t.Fatalf("expected sol 2 after 700 millisols, got %d", got)
	}

	if got := NewClock(ClockConfig{StartMillisol: 1200}).MillisolOfSol(0); got != 0 {
		t.Fatalf("expected out-of-range start to fall back to 0, got %v", got)
	}
}
