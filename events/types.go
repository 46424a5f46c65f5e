// Package events defines the input events the game core accepts and the
// queue that carries them from the terminal poller to the game loop.
package events

import "time"

// EventType represents the type of game input event
type EventType int

const (
	// EventNewGame rebuilds the deck and deals a fresh board
	// Trigger: InputHandler ('n')
	// Consumer: game.Machine | Payload: nil
	EventNewGame EventType = iota

	// EventDraw takes the top card of the draw pile as the pending card
	// Trigger: InputHandler ('d')
	// Consumer: game.Machine | Payload: nil
	EventDraw

	// EventDiscardDrawn moves the pending card to the discard pile
	// Trigger: InputHandler ('x')
	// Consumer: game.Machine | Payload: nil
	EventDiscardDrawn

	// EventCellTap places the pending card or toggles selection on a cell
	// Trigger: InputHandler ('1'..'9')
	// Consumer: game.Machine | Payload: *CellTapPayload
	EventCellTap

	// EventClearSelection empties the current selection
	// Trigger: InputHandler ('c')
	// Consumer: game.Machine | Payload: nil
	EventClearSelection

	// EventScoreSelection cashes in the selected line
	// Trigger: InputHandler (Enter)
	// Consumer: game.Machine | Payload: nil
	EventScoreSelection

	// EventSoundToggle flips audio cues on or off
	// Trigger: InputHandler ('m')
	// Consumer: main loop | Payload: nil
	EventSoundToggle

	// EventQuit exits the program
	// Trigger: InputHandler (q, Esc, Ctrl+C)
	// Consumer: main loop | Payload: nil
	EventQuit
)

// GameEvent represents a single input event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
