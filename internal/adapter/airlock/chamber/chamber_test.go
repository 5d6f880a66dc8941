package chamber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colonysim/internal/domain/eva"
)

func TestNewAirlockIsPressurizedWithInnerDoorOpen(t *testing.T) {
	a := New(Config{})
	assert.Equal(t, eva.Pressurized, a.State())
	assert.False(t, a.InnerDoorLocked())
	assert.True(t, a.OuterDoorLocked())
	_, held := a.Operator()
	assert.False(t, held)
	assert.Equal(t, "airlock", a.Name())
}

func TestOnlyOperatorAdvancesCycle(t *testing.T) {
	a := New(Config{CycleTime: 6})
	require.True(t, a.Activate("alice"))
	assert.Equal(t, eva.Depressurizing, a.State())
	assert.True(t, a.InnerDoorLocked())
	assert.True(t, a.OuterDoorLocked())

	assert.False(t, a.Activate("bob"), "second colonist cannot take over")
	assert.False(t, a.AdvanceCycle("bob", 3))
	assert.Equal(t, 6.0, a.RemainingCycleTime())

	require.True(t, a.AdvanceCycle("alice", 4))
	assert.Equal(t, 2.0, a.RemainingCycleTime())
	require.True(t, a.AdvanceCycle("alice", 4))
	assert.Equal(t, eva.Depressurized, a.State())
	assert.Zero(t, a.RemainingCycleTime())
	assert.True(t, a.InnerDoorLocked())
	assert.False(t, a.OuterDoorLocked())

	op, held := a.Operator()
	assert.True(t, held)
	assert.Equal(t, "alice", op)
	assert.False(t, a.AdvanceCycle("alice", 1), "no cycle running")
}

func TestOrphanedCycleCanBeAdopted(t *testing.T) {
	a := New(Config{CycleTime: 5})
	require.True(t, a.Activate("alice"))
	a.ClearOperator()

	require.True(t, a.Activate("bob"))
	op, _ := a.Operator()
	assert.Equal(t, "bob", op)
	assert.Equal(t, eva.Depressurizing, a.State(), "adopting does not restart the cycle")
}

func TestStepOutByOperatorReleasesIt(t *testing.T) {
	a := New(Config{CycleTime: 1})
	require.True(t, a.StepIn("alice", eva.InnerDoor))
	assert.False(t, a.StepIn("alice", eva.InnerDoor))
	assert.False(t, a.StepIn("bob", eva.OuterDoor), "outer door locked")

	require.True(t, a.Activate("alice"))
	require.True(t, a.AdvanceCycle("alice", 1))
	assert.False(t, a.StepOut("alice", eva.InnerDoor))
	require.True(t, a.StepOut("alice", eva.OuterDoor))

	_, held := a.Operator()
	assert.False(t, held)
	assert.False(t, a.OccupiedBy("alice"))
}

func TestQueuesAndCapacity(t *testing.T) {
	a := New(Config{Capacity: 1})
	a.EnqueueAtInnerDoor("alice")
	a.EnqueueAtInnerDoor("alice")
	a.EnqueueAtInnerDoor("bob")
	a.EnqueueAtOuterDoor("carol")

	require.True(t, a.StepIn("alice", eva.InnerDoor))
	assert.False(t, a.StepIn("bob", eva.InnerDoor), "chamber full")

	v := a.Snapshot()
	assert.Equal(t, []string{"alice"}, v.Occupants)
	assert.Equal(t, []string{"bob"}, v.AwaitingInnerDoor)
	assert.Equal(t, []string{"carol"}, v.AwaitingOuterDoor)
	assert.Equal(t, eva.Pressurized, v.State)
}

func TestEvictEmptiesChamberMidCycle(t *testing.T) {
	a := New(Config{Capacity: 1, CycleTime: 4})
	require.True(t, a.StepIn("alice", eva.InnerDoor))
	a.EnqueueAtInnerDoor("bob")
	require.True(t, a.Activate("alice"))
	require.True(t, a.AdvanceCycle("alice", 1))

	assert.True(t, a.Evict("alice"))
	assert.False(t, a.Evict("alice"), "already out")
	assert.False(t, a.Evict("bob"), "queued, not inside")

	v := a.Snapshot()
	assert.Empty(t, v.Occupants)
	assert.Empty(t, v.AwaitingInnerDoor)
	assert.Empty(t, v.Operator)
	assert.Equal(t, eva.Depressurizing, v.State, "the cycle is left for the next operator")
	assert.False(t, a.StepIn("bob", eva.InnerDoor), "doors stay locked mid-cycle")
}
