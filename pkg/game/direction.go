package game

import "strings"

// Direction is the heading applied on the next move.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// variationSelector is appended to the arrow emoji by most chat clients.
const variationSelector = "\ufe0f"

var directionOrder = []Direction{Left, Down, Up, Right}

// Directions returns the directions in the order their controls are attached.
func Directions() []Direction {
	out := make([]Direction, len(directionOrder))
	copy(out, directionOrder)
	return out
}

func (d Direction) Valid() bool {
	return d <= Right
}

// Offset returns the change in cell index for one step in direction d.
func (d Direction) Offset(width int) int {
	switch d {
	case Up:
		return -width
	case Down:
		return width
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// Emoji returns the reaction symbol that controls direction d.
func (d Direction) Emoji() string {
	switch d {
	case Up:
		return "⬆" + variationSelector
	case Down:
		return "⬇" + variationSelector
	case Left:
		return "⬅" + variationSelector
	case Right:
		return "➡" + variationSelector
	default:
		return ""
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a reaction symbol to a direction. Symbols with and
// without the trailing variation selector are both accepted.
func ParseDirection(symbol string) (Direction, bool) {
	bare := strings.TrimSuffix(symbol, variationSelector)
	for _, d := range directionOrder {
		if bare == strings.TrimSuffix(d.Emoji(), variationSelector) {
			return d, true
		}
	}
	return 0, false
}
