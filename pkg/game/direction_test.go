package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	for _, d := range Directions() {
		got, ok := ParseDirection(d.Emoji())
		assert.True(t, ok, d.String())
		assert.Equal(t, d, got)
	}

	got, ok := ParseDirection("⬆")
	assert.True(t, ok, "bare arrow without variation selector")
	assert.Equal(t, Up, got)

	_, ok = ParseDirection("\U0001F34B")
	assert.False(t, ok)
}

func TestDirection_Offset(t *testing.T) {
	assert.Equal(t, -20, Up.Offset(20))
	assert.Equal(t, 20, Down.Offset(20))
	assert.Equal(t, -1, Left.Offset(20))
	assert.Equal(t, 1, Right.Offset(20))
}

func TestDirections_order(t *testing.T) {
	assert.Equal(t, []Direction{Left, Down, Up, Right}, Directions())
}
