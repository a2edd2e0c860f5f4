package game

import (
	"fmt"

	"github.com/cbodonnell/chatsnake/pkg/game/constants"
)

// Cell addresses a board position as row*width+col.
type Cell int

// BoundsPolicy decides what happens when a move would leave the board.
type BoundsPolicy uint8

const (
	// BoundsWrap re-enters on the opposite edge of the same row or column.
	BoundsWrap BoundsPolicy = iota
	// BoundsReject refuses the move and leaves the state untouched.
	BoundsReject
)

func (p BoundsPolicy) String() string {
	switch p {
	case BoundsWrap:
		return "wrap"
	case BoundsReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseBoundsPolicy parses "wrap" or "reject".
func ParseBoundsPolicy(s string) (BoundsPolicy, error) {
	switch s {
	case "wrap":
		return BoundsWrap, nil
	case "reject":
		return BoundsReject, nil
	default:
		return BoundsWrap, fmt.Errorf("unknown bounds policy: %s", s)
	}
}

// Board holds the fixed dimensions of a game.
type Board struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewBoard validates the dimensions. A maxCells of zero, or one above
// constants.HardMaxCells, uses the hard cap.
func NewBoard(width, height, maxCells int) (Board, error) {
	if maxCells <= 0 || maxCells > constants.HardMaxCells {
		maxCells = constants.HardMaxCells
	}
	if width < 1 || height < 1 {
		return Board{}, fmt.Errorf("%w: %dx%d, both must be positive", ErrInvalidDimensions, width, height)
	}
	if width > maxCells/height {
		return Board{}, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidDimensions, width, height, maxCells)
	}
	return Board{Width: width, Height: height}, nil
}

// Cells returns the number of cells on the board.
func (b Board) Cells() int {
	return b.Width * b.Height
}

func (b Board) Contains(c Cell) bool {
	return c >= 0 && int(c) < b.Cells()
}

func (b Board) CellAt(row, col int) Cell {
	return Cell(row*b.Width + col)
}

func (b Board) Row(c Cell) int {
	return int(c) / b.Width
}

func (b Board) Col(c Cell) int {
	return int(c) % b.Width
}

// Step returns the cell one step from c in direction d. The second result
// is false when the step leaves the board under BoundsReject.
func (b Board) Step(c Cell, d Direction, policy BoundsPolicy) (Cell, bool) {
	row, col := b.Row(c), b.Col(c)
	switch d {
	case Up:
		row--
	case Down:
		row++
	case Left:
		col--
	case Right:
		col++
	default:
		return c, false
	}

	inside := row >= 0 && row < b.Height && col >= 0 && col < b.Width
	if inside {
		return c + Cell(d.Offset(b.Width)), true
	}
	if policy == BoundsReject {
		return c, false
	}
	row = (row + b.Height) % b.Height
	col = (col + b.Width) % b.Width
	return b.CellAt(row, col), true
}
