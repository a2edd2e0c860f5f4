package constants

const (
	// DefaultBoardWidth is the board width used when a command gives no size
	DefaultBoardWidth int = 20
	// DefaultBoardHeight is the board height used when a command gives no size
	DefaultBoardHeight int = 10
	// DefaultMaxCells caps width*height for a single board
	DefaultMaxCells int = 1024
	// HardMaxCells caps width*height regardless of configuration. Larger
	// boards take dozens of messages to draw and stall the event worker.
	HardMaxCells int = 4096

	// InitialSnakeLength is the length of a freshly spawned snake
	InitialSnakeLength int = 1
	// InitialFoodCount is the number of food cells placed on a new board
	InitialFoodCount int = 1

	// FoodSpawnAttemptsPerCell bounds rejection sampling before falling back
	// to a linear scan for a free cell
	FoodSpawnAttemptsPerCell int = 2
)
