package tasks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"colonysim/internal/adapter/airlock/chamber"
	"colonysim/internal/domain/activity"
	"colonysim/internal/domain/colonist"
	"colonysim/internal/domain/equipment"
	"colonysim/internal/domain/eva"
	"colonysim/internal/domain/world"
)

type clearSkies struct{}

func (clearSkies) EVAConditions() eva.Conditions { return eva.Conditions{Daylight: true} }

func testAirlock() *chamber.Airlock {
	return chamber.New(chamber.Config{
		Name:      "west lock",
		CycleTime: 6,
		Exterior:  world.Position{X: 4},
	})
}

func testColonist(id string) *colonist.Colonist {
	return colonist.New(colonist.Config{
		ID:   id,
		Name: id,
		Suit: equipment.NewSuit(id+"-suit", equipment.SuitConfig{}),
	})
}

func drive(t *testing.T, a activity.Activity, quantum float64, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks && !a.Done(); i++ {
		_, err := a.Advance(quantum)
		require.NoError(t, err)
	}
	require.True(t, a.Done(), "activity %s still running after %d ticks", a.Name(), maxTicks)
}
