package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/colonist"
	"colonysim/internal/domain/equipment"
	"colonysim/internal/domain/world"
)

func TestCollectSamplesFillsBagAndDeposits(t *testing.T) {
	c := testColonist("ada")
	lock := testAirlock()
	var deposited float64
	s, err := NewCollectSamples(c, CollectSamplesConfig{
		Airlock:     lock,
		Environment: clearSkies{},
		Site:        world.Position{X: 34},
		BagCapacity: 1,
		Rate:        0.1,
		Deposit:     func(kg float64) { deposited += kg },
	})
	require.NoError(t, err)

	drive(t, s, 5, 200)

	assert.True(t, s.EnteredAirlock())
	assert.InDelta(t, 1.0, s.Collected(), 1e-9)
	assert.InDelta(t, 1.0, deposited, 1e-9)
	assert.InDelta(t, 10.0, s.SiteTime(), 1e-9)
	assert.Equal(t, 1.0, c.Suit().OxygenFraction(), "suit refilled on stow")
	assert.Positive(t, c.Experience(activity.SkillAreology))
	assert.Equal(t, CollectSamplesName, c.LastEnded())
	_, held := lock.Operator()
	assert.False(t, held)
}

func TestCollectSamplesServicesSuitOnReturn(t *testing.T) {
	suit := equipment.NewSuit("ada-suit", equipment.SuitConfig{})
	c := colonist.New(colonist.Config{ID: "ada", Name: "ada", Suit: suit})
	s, err := NewCollectSamples(c, CollectSamplesConfig{
		Airlock:     testAirlock(),
		Environment: clearSkies{},
		Site:        world.Position{X: 34},
		BagCapacity: 50,
	})
	require.NoError(t, err)

	for i := 0; i < 50 && s.SiteTime() == 0; i++ {
		_, err := s.Advance(5)
		require.NoError(t, err)
	}
	require.Positive(t, s.SiteTime())
	suit.Accident("ridge", "ada")

	drive(t, s, 5, 200)

	assert.True(t, s.EnteredAirlock())
	assert.Less(t, s.Collected(), 50.0, "malfunction cut the EVA short")
	assert.False(t, suit.HasMalfunction())
	assert.Equal(t, 90.0, suit.Condition(), "wear is not repaired")
	assert.Equal(t, 1.0, suit.OxygenFraction())
}

func TestCollectSamplesStopsAtSiteDuration(t *testing.T) {
	c := testColonist("bo")
	s, err := NewCollectSamples(c, CollectSamplesConfig{
		Airlock:      testAirlock(),
		Environment:  clearSkies{},
		Site:         world.Position{X: 10},
		BagCapacity:  50,
		Rate:         0.1,
		SiteDuration: 4,
	})
	require.NoError(t, err)

	drive(t, s, 3, 200)

	assert.InDelta(t, 0.4, s.Collected(), 1e-9)
	assert.InDelta(t, 4.0, s.SiteTime(), 1e-9)
}

func TestCollectSamplesWithoutBagEndsImmediately(t *testing.T) {
	s, err := NewCollectSamples(testColonist("cy"), CollectSamplesConfig{Airlock: testAirlock(), BagCapacity: -1})
	require.NoError(t, err)
	assert.True(t, s.Done())
}

func TestRelaxDrainsStressForItsDuration(t *testing.T) {
	c := testColonist("dee")
	c.AddStress(50)
	r, err := NewRelax(c, RelaxConfig{Duration: 20})
	require.NoError(t, err)

	remaining, err := r.Advance(30)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, remaining, 1e-9)
	assert.True(t, r.Done())
	assert.InDelta(t, 44.0, c.Stress(), 1e-9)
}

func TestStudyNeedsAResearchSpot(t *testing.T) {
	lab := NewLab("lab", 1)
	require.True(t, lab.Reserve("someone-else"))

	s, err := NewStudy(testColonist("eve"), StudyConfig{Lab: lab})
	require.NoError(t, err)
	assert.True(t, s.Done())
	assert.Equal(t, []string{"someone-else"}, lab.Users())

	noLab, err := NewStudy(testColonist("fay"), StudyConfig{})
	require.NoError(t, err)
	assert.True(t, noLab.Done())
}

func TestStudyWithTeacherLearnsFaster(t *testing.T) {
	lab := NewLab("lab", 2)
	teacher := testColonist("prof")
	alone := testColonist("gus")
	taught := testColonist("hal")

	s1, err := NewStudy(alone, StudyConfig{Lab: lab, Duration: 40})
	require.NoError(t, err)
	s2, err := NewStudy(taught, StudyConfig{Lab: lab, Duration: 40, Teacher: teacher})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"gus", "hal"}, lab.Users())

	drive(t, s1, 10, 10)
	drive(t, s2, 10, 10)

	assert.InDelta(t, 40.0, s1.Progress(), 1e-9)
	assert.Greater(t, taught.Experience(activity.SkillResearch), alone.Experience(activity.SkillResearch))
	assert.Empty(t, lab.Users())
}

func TestStudyEndsWhenColonistCollapses(t *testing.T) {
	lab := NewLab("lab", 1)
	c := testColonist("ivy")
	s, err := NewStudy(c, StudyConfig{Lab: lab})
	require.NoError(t, err)

	_, err = s.Advance(5)
	require.NoError(t, err)
	c.SetPerformance(0)

	remaining, err := s.Advance(5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, remaining)
	assert.True(t, s.Done())
	assert.Empty(t, lab.Users())
}
