package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SpinTickInterval is how often spinning cells re-roll their displayed symbol
	SpinTickInterval = 80 * time.Millisecond

	// SpinDuration is the total length of a cell spin before commit
	SpinDuration = 700 * time.Millisecond

	// BombHoldDuration is the overlay hold between bomb trigger and grid wipe
	BombHoldDuration = 1200 * time.Millisecond
)

// Board and Session Constants
const (
	// GridCols is the board edge length
	GridCols = 3

	// GridSize is the number of board cells
	GridSize = GridCols * GridCols

	// SelectionMax is the largest number of simultaneously selected cells
	SelectionMax = 3

	// DrawsMax is the per-session draw budget
	DrawsMax = 25

	// EventLogSize is the number of retained event log entries
	EventLogSize = 12
)

// Event Queue Constants
const (
	// EventQueueSize is the ring buffer capacity, must be a power of two
	EventQueueSize = 256

	// EventBufferMask converts a monotonic index into a ring slot
	EventBufferMask = EventQueueSize - 1
)
