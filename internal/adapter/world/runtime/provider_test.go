package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"colonysim/internal/domain/world"
)

func TestProvider_DaylightFollowsClock(t *testing.T) {
	p := NewProvider(Config{Clock: world.NewClock(world.ClockConfig{SunriseAt: 200, SunsetAt: 800})})

	assert.False(t, p.ConditionsAt(100).Daylight, "night before sunrise")
	assert.True(t, p.ConditionsAt(500).Daylight, "daylight at midsol")
	assert.False(t, p.ConditionsAt(1850).Daylight, "night after sunset on sol 2")
}

func TestProvider_DaylightHonoursStartOfSol(t *testing.T) {
	p := NewProvider(Config{Clock: world.NewClock(world.ClockConfig{StartMillisol: 300, SunriseAt: 250, SunsetAt: 750})})

	assert.True(t, p.ConditionsAt(0).Daylight, "colony starts at millisol 300 of the sol")
	assert.False(t, p.ConditionsAt(460).Daylight, "sun sets 450 millisols in")
}

func TestProvider_DustStormWindows(t *testing.T) {
	p := NewProvider(Config{Storms: []Storm{
		{Start: 1400, End: 1500},
		{Start: 300, End: 400},
		{Start: 900, End: 900},
	}})

	cases := map[float64]bool{
		299:  false,
		300:  true,
		399:  true,
		400:  false,
		900:  false,
		1450: true,
		1500: false,
	}
	for now, want := range cases {
		assert.Equal(t, want, p.ConditionsAt(now).DustStorm, "storm at %v", now)
	}
}

func TestNewProvider_DefaultsClock(t *testing.T) {
	p := NewProvider(Config{})

	assert.False(t, p.ConditionsAt(100).Daylight)
	assert.True(t, p.ConditionsAt(500).Daylight)
}
