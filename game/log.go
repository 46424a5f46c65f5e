package game

import "slotaire/constants"

// eventLog is the bounded, append-only log shown to the player. Purely
// observational: nothing reads it back into game logic.
type eventLog struct {
	entries []string
}

func (l *eventLog) add(entry string) {
	l.entries = append(l.entries, entry)
	if len(l.entries) > constants.EventLogSize {
		l.entries = l.entries[len(l.entries)-constants.EventLogSize:]
	}
}

func (l *eventLog) reset() {
	l.entries = l.entries[:0]
}

// snapshot returns a copy, oldest first.
func (l *eventLog) snapshot() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
