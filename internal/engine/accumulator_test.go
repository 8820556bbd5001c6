package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulatorEmptyFlush(t *testing.T) {
	var acc Accumulator
	_, ok := acc.Flush(0.5, 0, 0)
	assert.False(t, ok)
}

func TestAccumulatorMeansBorrowOtherSide(t *testing.T) {
	var acc Accumulator
	acc.AddB(50, 0.2)
	acc.AddB(54, 0.4)

	noteA, velocityA, noteB, velocityB := acc.Means()
	assert.Equal(t, float32(52), noteA)
	assert.InDelta(t, 0.3, velocityA, 1e-6)
	assert.Equal(t, noteA, noteB)
	assert.Equal(t, velocityA, velocityB)
}

func TestAccumulatorFlushResetsBothSides(t *testing.T) {
	var acc Accumulator
	acc.AddA(60, 1)
	acc.AddB(70, 1)

	ev, ok := acc.Flush(0.5, 12, 3)
	assert.True(t, ok)
	assert.Equal(t, uint8(65), ev.Note)
	assert.Equal(t, uint32(12), ev.Timing)
	assert.Equal(t, uint8(3), ev.Channel)
	assert.True(t, acc.Empty())
	assert.Equal(t, Accumulator{}, acc)
}

func TestAccumulatorRoundsHalfAwayFromZero(t *testing.T) {
	var acc Accumulator
	acc.AddA(60, 1)
	acc.AddB(61, 1)

	ev, ok := acc.Flush(0.5, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, uint8(61), ev.Note)
}
