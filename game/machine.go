// Package game owns the authoritative session state: board, piles, pending
// card, selection, score, draw budget and phase. All mutation happens
// inside a single goroutine (the game loop); timed transitions are deferred
// to an engine.Scheduler that calls back into the machine on commit.
package game

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"slotaire/constants"
	"slotaire/deck"
	"slotaire/engine"
	"slotaire/events"
	"slotaire/lines"
)

// Machine is the game state machine. Invalid inputs are guarded no-ops,
// never errors: a guard failure changes nothing and stays silent, matching
// the disabled-control contract of the UI.
type Machine struct {
	sched engine.Scheduler
	piles *deck.Piles

	grid      [constants.GridSize]*deck.Card
	pending   *deck.Card
	selection []int
	score     int
	drawsUsed int
	phase     Phase
	log       eventLog

	overLogged bool // game-over is announced once per session
}

// NewMachine creates a machine in PhaseInit. rng drives every shuffle of
// the session; the scheduler owns all timing.
func NewMachine(rng *rand.Rand, sched engine.Scheduler) *Machine {
	return &Machine{
		sched: sched,
		piles: deck.NewPiles(rng),
		phase: PhaseInit,
	}
}

// Apply dispatches one input event. Unknown or inapplicable events fall
// through silently.
func (m *Machine) Apply(ev events.GameEvent) {
	switch ev.Type {
	case events.EventNewGame:
		m.NewGame()
	case events.EventDraw:
		m.Draw()
	case events.EventDiscardDrawn:
		m.DiscardDrawn()
	case events.EventCellTap:
		if p, ok := ev.Payload.(*events.CellTapPayload); ok {
			m.TapCell(p.Index)
		}
	case events.EventClearSelection:
		m.ClearSelection()
	case events.EventScoreSelection:
		m.ScoreSelection()
	}
}

// Tick fires due scheduler commits as of now. Called once per frame by
// the game loop.
func (m *Machine) Tick(now time.Time) {
	m.sched.Update(now)
}

// NewGame discards the whole session and starts fresh: full multiset
// rebuilt and shuffled, 9 cells dealt and animated. Allowed in any phase;
// pending timers are cancelled so no stale commit touches the new session.
func (m *Machine) NewGame() {
	m.sched.CancelAll()

	m.piles.Reset(deck.New())
	for i := range m.grid {
		m.grid[i] = nil
	}
	m.pending = nil
	m.selection = m.selection[:0]
	m.score = 0
	m.drawsUsed = 0
	m.overLogged = false
	m.log.reset()
	m.log.add(fmt.Sprintf("New game: %d draws on the meter", constants.DrawsMax))

	m.dealInto(allCells())
}

// Draw moves the top card into the pending slot. Guarded by: idle phase
// (no pending card, not spinning, no bomb hold) and remaining draw budget.
// A drawn bomb is never exposed: it goes straight to discard and triggers
// the wipe. The draw counter moves only when a card was actually obtained.
func (m *Machine) Draw() {
	if m.phase != PhaseIdle {
		return
	}
	card, ok := m.piles.TakeTop()
	if !ok {
		m.log.add("Deck exhausted: nothing to draw")
		return
	}
	m.drawsUsed++

	if card.Symbol == deck.Bomb {
		m.piles.Discard(card)
		m.log.add("Drew a bomb!")
		m.triggerBombSequence()
		return
	}

	m.pending = &card
	m.selection = m.selection[:0]
	m.phase = PhaseAwaitingPlacement
	m.log.add(fmt.Sprintf("Drew %s (%d draws left)", card.Symbol, constants.DrawsMax-m.drawsUsed))
}

// DiscardDrawn moves the pending card to the discard pile.
func (m *Machine) DiscardDrawn() {
	if m.phase != PhaseAwaitingPlacement || m.pending == nil {
		return
	}
	card := *m.pending
	m.pending = nil
	m.piles.Discard(card)
	m.selection = m.selection[:0]
	m.log.add(fmt.Sprintf("Discarded %s", card.Symbol))
	m.settle()
}

// TapCell places the pending card when one is waiting, otherwise toggles
// selection. Placement replaces the slot unconditionally; the displaced
// occupant goes to discard. Placement is a direct action, never animated.
func (m *Machine) TapCell(i int) {
	if i < 0 || i >= constants.GridSize {
		return
	}
	switch m.phase {
	case PhaseAwaitingPlacement:
		m.place(i)
	case PhaseIdle, PhaseGameOver:
		m.toggleSelect(i)
	}
}

func (m *Machine) place(i int) {
	card := *m.pending
	m.pending = nil
	if displaced := m.grid[i]; displaced != nil {
		m.piles.Discard(*displaced)
	}
	m.grid[i] = &card
	m.selection = m.selection[:0]
	m.log.add(fmt.Sprintf("Placed %s on cell %d", card.Symbol, i+1))

	if card.Symbol == deck.Bomb {
		m.triggerBombSequence()
		return
	}
	m.settle()
}

func (m *Machine) toggleSelect(i int) {
	if m.grid[i] == nil {
		return
	}
	for n, sel := range m.selection {
		if sel == i {
			m.selection = append(m.selection[:n], m.selection[n+1:]...)
			return
		}
	}
	if len(m.selection) < constants.SelectionMax {
		m.selection = append(m.selection, i)
	}
}

// ClearSelection empties the selection.
func (m *Machine) ClearSelection() {
	if m.phase != PhaseIdle && m.phase != PhaseGameOver {
		return
	}
	m.selection = m.selection[:0]
}

// ScoreSelection cashes in the selected line: three cards to discard,
// payout onto the score, vacated cells refilled and animated. Guarded by a
// valid line whose cards evaluate to a scoring result.
func (m *Machine) ScoreSelection() {
	if m.phase != PhaseIdle && m.phase != PhaseGameOver {
		return
	}
	if len(m.selection) != constants.SelectionMax || !lines.IsLine(m.selection) {
		return
	}

	cells := append([]int(nil), m.selection...)
	sort.Ints(cells)

	var picked [3]deck.Card
	for n, i := range cells {
		if m.grid[i] == nil {
			return
		}
		picked[n] = *m.grid[i]
	}

	result := lines.Evaluate(picked)
	if !result.OK {
		return
	}

	for _, i := range cells {
		m.piles.Discard(*m.grid[i])
		m.grid[i] = nil
	}
	m.score += result.Points
	m.selection = m.selection[:0]
	m.log.add(fmt.Sprintf("%s! +%d points", result.Label, result.Points))

	m.dealInto(cells)
}

// dealInto fills the given empty cells from the piles and spins them.
// Cards are authoritative immediately; the spin masks them visually until
// commit, when the bomb check runs.
func (m *Machine) dealInto(cells []int) {
	dealt := m.piles.DealN(len(cells))
	filled := make([]int, 0, len(dealt))
	for n := range dealt {
		card := dealt[n]
		m.grid[cells[n]] = &card
		filled = append(filled, cells[n])
	}

	if len(filled) == 0 {
		m.settle()
		return
	}
	m.phase = PhaseSpinning
	m.sched.StartSpin(filled, m.commitSpin)
}

// commitSpin finalizes an animated deal: the spin has elapsed, the cells
// show their authoritative cards, and any bomb among them fires the wipe.
func (m *Machine) commitSpin() {
	if m.gridHasBomb() {
		m.triggerBombSequence()
		return
	}
	m.settle()
}

// triggerBombSequence schedules the wipe-and-redeal cascade. Re-entrant
// triggers are no-ops: at most one sequence is active, and a second
// trigger never moves the pending wipe.
func (m *Machine) triggerBombSequence() {
	if m.phase == PhaseBombPending {
		return
	}
	m.selection = m.selection[:0]
	if m.pending != nil {
		m.piles.Discard(*m.pending)
		m.pending = nil
	}
	m.phase = PhaseBombPending
	m.log.add("Bomb! The board is about to blow")
	m.sched.StartBombHold(m.commitBombWipe)
}

// commitBombWipe clears the board to discard and redeals 9 animated cells.
// A bomb in the redeal re-enters triggerBombSequence from the next commit.
func (m *Machine) commitBombWipe() {
	for i, c := range m.grid {
		if c != nil {
			m.piles.Discard(*c)
			m.grid[i] = nil
		}
	}
	m.log.add("Board wiped: dealing fresh cards")
	m.dealInto(allCells())
}

// settle resolves the resting phase after any committed action.
func (m *Machine) settle() {
	switch {
	case m.pending != nil:
		m.phase = PhaseAwaitingPlacement
	case m.drawsUsed >= constants.DrawsMax:
		if !m.overLogged {
			m.overLogged = true
			m.log.add(fmt.Sprintf("Out of draws: game over at %d points", m.score))
		}
		m.phase = PhaseGameOver
	default:
		m.phase = PhaseIdle
	}
}

func (m *Machine) gridHasBomb() bool {
	for _, c := range m.grid {
		if c != nil && c.Symbol == deck.Bomb {
			return true
		}
	}
	return false
}

func allCells() []int {
	cells := make([]int, constants.GridSize)
	for i := range cells {
		cells[i] = i
	}
	return cells
}
