package game

import (
	"slotaire/constants"
	"slotaire/deck"
)

// CellView is one board cell as the renderer should show it. During a spin
// the authoritative card is masked by a transient SpinSymbol.
type CellView struct {
	Card       *deck.Card
	Selected   bool
	Spinning   bool
	SpinSymbol deck.Symbol
}

// Snapshot is the complete read-only view the rendering collaborator
// consumes. It shares no memory with the machine.
type Snapshot struct {
	Cells     [constants.GridSize]CellView
	Pending   *deck.Card
	Selection []int

	Score     int
	DrawsUsed int
	DrawsMax  int

	DrawPile    int
	DiscardPile int

	Phase       Phase
	Spinning    bool
	BombOverlay bool
	GameOver    bool

	Log []string
}

// Snapshot captures the current state for rendering.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Score:       m.score,
		DrawsUsed:   m.drawsUsed,
		DrawsMax:    constants.DrawsMax,
		DrawPile:    m.piles.DrawLen(),
		DiscardPile: m.piles.DiscardLen(),
		Phase:       m.phase,
		Spinning:    m.phase == PhaseSpinning,
		BombOverlay: m.phase == PhaseBombPending,
		GameOver:    m.phase == PhaseGameOver,
		Selection:   append([]int(nil), m.selection...),
		Log:         m.log.snapshot(),
	}

	if m.pending != nil {
		card := *m.pending
		snap.Pending = &card
	}

	selected := make(map[int]bool, len(m.selection))
	for _, i := range m.selection {
		selected[i] = true
	}

	for i, c := range m.grid {
		view := CellView{Selected: selected[i]}
		if c != nil {
			card := *c
			view.Card = &card
		}
		if sym, ok := m.sched.SpinOverride(i); ok {
			view.Spinning = true
			view.SpinSymbol = sym
		}
		snap.Cells[i] = view
	}
	return snap
}
