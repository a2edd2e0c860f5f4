package game

import "errors"

var (
	// ErrInvalidDimensions is returned when a board size is not two positive
	// integers or exceeds the configured cell cap.
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	// ErrInvalidDirection is returned for a direction outside Up/Down/Left/Right.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrOutOfBounds is returned by Move under BoundsReject when the head would leave the board.
	ErrOutOfBounds = errors.New("move leaves the board")
	// ErrGameOver is returned by Move once the snake has run into itself.
	ErrGameOver = errors.New("game is over")
	// ErrInvalidLayout is returned when a restored layout breaks a state invariant.
	ErrInvalidLayout = errors.New("invalid game layout")
)
