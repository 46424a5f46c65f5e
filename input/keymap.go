// Package input translates terminal key events into game input events.
// It holds no state and makes no game decisions; guards live in the
// state machine.
package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"slotaire/events"
)

// Translate maps a key event to a game event. ok is false for keys with
// no binding; resize and mouse events are handled by the caller.
func Translate(ev *tcell.EventKey) (events.GameEvent, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return event(events.EventQuit, nil), true
	case tcell.KeyEnter:
		return event(events.EventScoreSelection, nil), true
	case tcell.KeyRune:
		return translateRune(ev.Rune())
	}
	return events.GameEvent{}, false
}

func translateRune(r rune) (events.GameEvent, bool) {
	switch r {
	case 'q', 'Q':
		return event(events.EventQuit, nil), true
	case 'n', 'N':
		return event(events.EventNewGame, nil), true
	case 'd', 'D':
		return event(events.EventDraw, nil), true
	case 'x', 'X':
		return event(events.EventDiscardDrawn, nil), true
	case 'c', 'C':
		return event(events.EventClearSelection, nil), true
	case 'm', 'M':
		return event(events.EventSoundToggle, nil), true
	}
	if r >= '1' && r <= '9' {
		return event(events.EventCellTap, &events.CellTapPayload{Index: int(r - '1')}), true
	}
	return events.GameEvent{}, false
}

func event(t events.EventType, payload any) events.GameEvent {
	return events.GameEvent{Type: t, Payload: payload, Timestamp: time.Now()}
}
