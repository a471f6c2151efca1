package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorBreakIfPast(t *testing.T) {
	breaks := 0
	c := NewCursor(50, 750, 740, func() { breaks++ })

	c.Advance(10)
	assert.False(t, c.BreakIfPast(), "750 is still on the page")

	c.Advance(1)
	assert.True(t, c.BreakIfPast())
	assert.Equal(t, 1, breaks)
	assert.Equal(t, 2, c.Pages())
	assert.Equal(t, float64(50), c.Y())
}

func TestCursorReserve(t *testing.T) {
	breaks := 0
	c := NewCursor(40, 800, 600, func() { breaks++ })

	assert.False(t, c.Reserve(200))
	assert.True(t, c.Reserve(201))
	assert.Equal(t, 1, breaks)
	assert.Equal(t, float64(40), c.Y())

	// A block taller than a page is drawn at the top instead of breaking forever.
	assert.False(t, c.Reserve(5000))
	assert.Equal(t, 1, breaks)
}

func TestGroupHeightGrowsWithItems(t *testing.T) {
	l := DefaultGroupLayout
	assert.Equal(t, l.ItemLineHeight*3, l.GroupHeight(4)-l.GroupHeight(1))
}
