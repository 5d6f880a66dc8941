package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionMoveToward(t *testing.T) {
	origin := Position{}
	target := Position{X: 3, Y: 4}

	assert.InDelta(t, 5.0, origin.DistanceTo(target), 1e-9)

	mid := origin.MoveToward(target, 2.5)
	assert.InDelta(t, 1.5, mid.X, 1e-9)
	assert.InDelta(t, 2.0, mid.Y, 1e-9)

	assert.Equal(t, target, origin.MoveToward(target, 10))
	assert.Equal(t, origin, origin.MoveToward(target, 0))
}

func TestPositionClose(t *testing.T) {
	p := Position{X: 1, Y: 1}
	assert.True(t, p.Close(Position{X: 1.005, Y: 1}))
	assert.False(t, p.Close(Position{X: 1.5, Y: 1}))
	assert.Equal(t, "(1.00, 1.00)", p.String())
}
