package accident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntity struct {
	wear      float64
	accidents int
	location  string
	worker    string
}

func (e *fakeEntity) AccidentModifier() float64 { return e.wear }

func (e *fakeEntity) Accident(location, workerID string) {
	e.accidents++
	e.location = location
	e.worker = workerID
}

func TestScaleForSkill(t *testing.T) {
	tests := []struct {
		skill int
		want  float64
	}{
		{skill: -2, want: 4},
		{skill: 0, want: 4},
		{skill: 1, want: 3},
		{skill: 3, want: 1},
		{skill: 4, want: 0.5},
		{skill: 5, want: 1.0 / 3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ScaleForSkill(1, tt.skill), 1e-9, "skill %d", tt.skill)
	}
}

func TestProbabilityDecreasesWithSkill(t *testing.T) {
	low := Probability(BaseChance, 10, 1, 1.2)
	high := Probability(BaseChance, 10, 5, 1.2)
	assert.Greater(t, low, high)
	assert.Zero(t, Probability(BaseChance, 0, 1, 1))
	assert.Equal(t, 1.0, Probability(50, 100, 0, 2))
}

func TestMaybeTriggerRateScalesWithSkill(t *testing.T) {
	const draws = 20000
	count := func(skill int) int {
		m := New(42)
		e := &fakeEntity{wear: 1.5}
		for i := 0; i < draws; i++ {
			m.MaybeTrigger(e, 1, 1, skill, "site", "c-1")
		}
		return e.accidents
	}

	novice := count(1)
	expert := count(5)
	require.Positive(t, novice)
	assert.Greater(t, novice, expert)
}

func TestMaybeTriggerDelegatesToEntity(t *testing.T) {
	m := New(7)
	e := &fakeEntity{wear: 1}
	fired := m.MaybeTrigger(e, 100, 100, 0, "dune ridge", "c-9")
	require.True(t, fired)
	assert.Equal(t, 1, e.accidents)
	assert.Equal(t, "dune ridge", e.location)
	assert.Equal(t, "c-9", e.worker)

	var nilModel *Model
	assert.False(t, nilModel.MaybeTrigger(e, 100, 100, 0, "", ""))
	assert.False(t, m.MaybeTrigger(nil, 100, 100, 0, "", ""))
}
