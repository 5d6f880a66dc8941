package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExperienceGain(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		aptitude int
		teaching float64
		want     float64
	}{
		{name: "neutral aptitude", base: 10, aptitude: 50, teaching: 1, want: 10},
		{name: "gifted", base: 10, aptitude: 80, teaching: 1, want: 13},
		{name: "slow learner", base: 10, aptitude: 20, teaching: 1, want: 7},
		{name: "taught", base: 10, aptitude: 50, teaching: TeachingModifier(40, 60), want: 20},
		{name: "missing teaching defaults to one", base: 4, aptitude: 50, want: 4},
		{name: "no base", base: 0, aptitude: 90, teaching: 2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExperienceGain(tt.base, tt.aptitude, tt.teaching), 1e-9)
		})
	}
}

func TestTeachingModifier(t *testing.T) {
	assert.InDelta(t, 1.0, TeachingModifier(0, 0), 1e-9)
	assert.InDelta(t, 1.75, TeachingModifier(50, 25), 1e-9)
}
