package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CommandPrefix starts a new game when it is the first word of a message.
const CommandPrefix = "snake"

// ErrInvalidCommand is returned when the command arguments are not integers.
var ErrInvalidCommand = errors.New("invalid command")

// Usage is posted back to the channel when a command cannot be parsed.
const Usage = "Usage: `snake [width height]` with two positive whole numbers, for example `snake 12 8`."

// Command is a parsed request to start a game. Zero dimensions mean the
// controller defaults.
type Command struct {
	Width  int
	Height int
}

// ParseCommand reports whether text is a game command and parses its
// optional size. Only exactly two arguments are read as a size; any other
// argument count falls back to the default size.
func ParseCommand(text string) (Command, bool, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || fields[0] != CommandPrefix {
		return Command{}, false, nil
	}

	args := fields[1:]
	if len(args) != 2 {
		return Command{}, true, nil
	}

	width, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, true, fmt.Errorf("%w: width %q is not a number", ErrInvalidCommand, args[0])
	}
	height, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, true, fmt.Errorf("%w: height %q is not a number", ErrInvalidCommand, args[1])
	}
	if width < 1 || height < 1 {
		return Command{}, true, fmt.Errorf("%w: %dx%d, both must be positive", ErrInvalidCommand, width, height)
	}

	return Command{Width: width, Height: height}, true, nil
}
