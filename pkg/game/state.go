package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/cbodonnell/chatsnake/pkg/game/constants"
	"golang.org/x/exp/rand"
)

// MoveOutcome describes what a single accepted move did.
type MoveOutcome uint8

const (
	// MoveMoved means the head advanced and the tail followed.
	MoveMoved MoveOutcome = iota
	// MoveAte means the head landed on food and the snake grew by one.
	MoveAte
	// MoveCollided means the head ran into the body and the game is over.
	MoveCollided
)

func (o MoveOutcome) String() string {
	switch o {
	case MoveMoved:
		return "moved"
	case MoveAte:
		return "ate"
	case MoveCollided:
		return "collided"
	default:
		return "unknown"
	}
}

// GameState is the authoritative model of one snake game.
// It is not safe for concurrent use; callers serialize access.
type GameState struct {
	board   Board
	policy  BoundsPolicy
	snake   []Cell // front is the tail, back is the head
	food    map[Cell]struct{}
	heading Direction
	over    bool
	moves   int
	rng     *rand.Rand
}

// NewGameStateOptions contains options for creating a new GameState.
type NewGameStateOptions struct {
	// Width and Height default to the constants package defaults when zero.
	Width  int
	Height int
	// MaxCells caps Width*Height. Zero uses constants.HardMaxCells.
	MaxCells int
	Policy   BoundsPolicy
	// Rand is used for snake and food placement. A time-seeded source is used when nil.
	Rand *rand.Rand
}

// NewGameState creates a board with a length 1 snake on a random cell and
// one food cell elsewhere.
func NewGameState(opts NewGameStateOptions) (*GameState, error) {
	width, height := opts.Width, opts.Height
	if width == 0 && height == 0 {
		width, height = constants.DefaultBoardWidth, constants.DefaultBoardHeight
	}
	board, err := NewBoard(width, height, opts.MaxCells)
	if err != nil {
		return nil, err
	}

	g := &GameState{
		board:   board,
		policy:  opts.Policy,
		snake:   make([]Cell, 0, constants.InitialSnakeLength),
		food:    make(map[Cell]struct{}, constants.InitialFoodCount),
		heading: Up,
		rng:     opts.Rand,
	}

	g.snake = append(g.snake, Cell(g.random().Intn(board.Cells())))
	if board.Cells() == 1 {
		// a single cell board has nowhere else to put the food
		g.food[g.snake[0]] = struct{}{}
	} else {
		g.spawnFood()
	}

	return g, nil
}

// NewGameStateWithLayout restores a game from an explicit layout. The snake
// is given tail first, head last.
func NewGameStateWithLayout(board Board, snake []Cell, food []Cell, heading Direction, policy BoundsPolicy, rng *rand.Rand) (*GameState, error) {
	if board.Width < 1 || board.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, board.Width, board.Height)
	}
	if len(snake) == 0 {
		return nil, fmt.Errorf("%w: empty snake", ErrInvalidLayout)
	}
	if !heading.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, heading)
	}

	occupied := make(map[Cell]struct{}, len(snake))
	for _, c := range snake {
		if !board.Contains(c) {
			return nil, fmt.Errorf("%w: snake cell %d outside the board", ErrInvalidLayout, c)
		}
		if _, dup := occupied[c]; dup {
			return nil, fmt.Errorf("%w: snake cell %d repeated", ErrInvalidLayout, c)
		}
		occupied[c] = struct{}{}
	}

	foodSet := make(map[Cell]struct{}, len(food))
	for _, c := range food {
		if !board.Contains(c) {
			return nil, fmt.Errorf("%w: food cell %d outside the board", ErrInvalidLayout, c)
		}
		if _, onSnake := occupied[c]; onSnake && board.Cells() > 1 {
			return nil, fmt.Errorf("%w: food cell %d under the snake", ErrInvalidLayout, c)
		}
		foodSet[c] = struct{}{}
	}

	body := make([]Cell, len(snake))
	copy(body, snake)
	return &GameState{
		board:   board,
		policy:  policy,
		snake:   body,
		food:    foodSet,
		heading: heading,
		rng:     rng,
	}, nil
}

// Move turns the snake to dir and advances it one cell.
func (g *GameState) Move(dir Direction) (MoveOutcome, error) {
	if g.over {
		return MoveCollided, ErrGameOver
	}
	if !dir.Valid() {
		return MoveMoved, fmt.Errorf("%w: %d", ErrInvalidDirection, dir)
	}

	// a rejected move still turns the snake
	g.heading = dir
	next, ok := g.board.Step(g.Head(), dir, g.policy)
	if !ok {
		return MoveMoved, fmt.Errorf("%w: %s from cell %d", ErrOutOfBounds, dir, g.Head())
	}
	g.moves++

	_, eating := g.food[next]
	if i := g.indexOf(next); i >= 0 && (eating || i != 0) {
		// the tail cell is only vacated when the snake does not grow
		g.over = true
		return MoveCollided, nil
	}

	if !eating {
		g.snake = append(g.snake[1:], next)
		return MoveMoved, nil
	}

	delete(g.food, next)
	g.snake = append(g.snake, next)
	g.spawnFood()
	return MoveAte, nil
}

// spawnFood places one food cell on a free cell. It reports false when the
// snake and existing food leave no free cell.
func (g *GameState) spawnFood() bool {
	cells := g.board.Cells()
	taken := make(map[Cell]struct{}, len(g.snake)+len(g.food))
	for _, c := range g.snake {
		taken[c] = struct{}{}
	}
	for c := range g.food {
		taken[c] = struct{}{}
	}
	if len(taken) >= cells {
		return false
	}

	rng := g.random()
	for attempt := 0; attempt < constants.FoodSpawnAttemptsPerCell*cells; attempt++ {
		c := Cell(rng.Intn(cells))
		if _, ok := taken[c]; !ok {
			g.food[c] = struct{}{}
			return true
		}
	}

	for c := Cell(0); int(c) < cells; c++ {
		if _, ok := taken[c]; !ok {
			g.food[c] = struct{}{}
			return true
		}
	}
	return false
}

func (g *GameState) random() *rand.Rand {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return g.rng
}

func (g *GameState) indexOf(c Cell) int {
	for i, s := range g.snake {
		if s == c {
			return i
		}
	}
	return -1
}

func (g *GameState) Board() Board {
	return g.board
}

func (g *GameState) Policy() BoundsPolicy {
	return g.policy
}

func (g *GameState) Heading() Direction {
	return g.heading
}

// Head returns the most recently added snake cell.
func (g *GameState) Head() Cell {
	return g.snake[len(g.snake)-1]
}

func (g *GameState) Len() int {
	return len(g.snake)
}

// Over reports whether the snake has run into itself.
func (g *GameState) Over() bool {
	return g.over
}

// Moves returns the number of accepted moves.
func (g *GameState) Moves() int {
	return g.moves
}

// Snake returns a copy of the body, tail first and head last.
func (g *GameState) Snake() []Cell {
	out := make([]Cell, len(g.snake))
	copy(out, g.snake)
	return out
}

// Food returns the food cells in ascending order.
func (g *GameState) Food() []Cell {
	out := make([]Cell, 0, len(g.food))
	for c := range g.food {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (g *GameState) HasFood(c Cell) bool {
	_, ok := g.food[c]
	return ok
}

// DepthOf returns how far c is from the head (0 is the head), or -1 when
// c is not part of the snake.
func (g *GameState) DepthOf(c Cell) int {
	if i := g.indexOf(c); i >= 0 {
		return len(g.snake) - i - 1
	}
	return -1
}

// Copy returns a deep copy that does not share the random source.
func (g *GameState) Copy() *GameState {
	food := make(map[Cell]struct{}, len(g.food))
	for c := range g.food {
		food[c] = struct{}{}
	}
	return &GameState{
		board:   g.board,
		policy:  g.policy,
		snake:   g.Snake(),
		food:    food,
		heading: g.heading,
		over:    g.over,
		moves:   g.moves,
	}
}
