package game

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"slotaire/constants"
	"slotaire/deck"
	"slotaire/engine"
	"slotaire/events"
)

func newInstantMachine(seed int64) *Machine {
	return NewMachine(rand.New(rand.NewSource(seed)), engine.NewInstantScheduler())
}

func newTimedMachine(seed int64) (*Machine, *engine.MockTimeProvider) {
	clock := engine.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := engine.NewTimedScheduler(clock, rand.New(rand.NewSource(seed)))
	return NewMachine(rand.New(rand.NewSource(seed+1)), sched), clock
}

// settleTimed ticks the clock until all animations and holds resolve
func settleTimed(t *testing.T, m *Machine, clock *engine.MockTimeProvider) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		snap := m.Snapshot()
		if snap.Phase != PhaseSpinning && snap.Phase != PhaseBombPending {
			return
		}
		clock.Advance(50 * time.Millisecond)
		m.Tick(clock.Now())
	}
	t.Fatal("Machine never settled")
}

// checkConservation asserts the 80-card invariant on a snapshot
func checkConservation(t *testing.T, snap Snapshot) {
	t.Helper()
	total := snap.DrawPile + snap.DiscardPile
	for _, cell := range snap.Cells {
		if cell.Card != nil {
			total++
		}
	}
	if snap.Pending != nil {
		total++
	}
	if total != deck.Size {
		t.Fatalf("Conservation broken: %d cards accounted for, want %d", total, deck.Size)
	}
}

// rigRow overwrites the faces of cells 0,1,2 on a settled board.
// Card identities stay untouched so count conservation still holds
func rigRow(m *Machine, a, b, c deck.Symbol) {
	m.grid[0].Symbol = a
	m.grid[1].Symbol = b
	m.grid[2].Symbol = c
}

// logContains counts log entries containing substr
func logContains(snap Snapshot, substr string) int {
	n := 0
	for _, entry := range snap.Log {
		if strings.Contains(entry, substr) {
			n++
		}
	}
	return n
}

// TestNewGameDealsSettledBoard verifies the initial deal: 9 cards, zeroed
// counters, no resident bomb once the cascade settles
func TestNewGameDealsSettledBoard(t *testing.T) {
	m := newInstantMachine(11)
	m.NewGame()

	snap := m.Snapshot()
	if snap.Phase != PhaseIdle {
		t.Fatalf("Phase = %s, want Idle", snap.Phase)
	}
	for i, cell := range snap.Cells {
		if cell.Card == nil {
			t.Fatalf("Cell %d empty after deal", i)
		}
		if cell.Card.Symbol == deck.Bomb {
			t.Errorf("Bomb resident on cell %d after settle", i)
		}
	}
	if snap.Score != 0 || snap.DrawsUsed != 0 || len(snap.Selection) != 0 {
		t.Errorf("Counters not reset: score=%d draws=%d selection=%v", snap.Score, snap.DrawsUsed, snap.Selection)
	}
	if snap.Pending != nil {
		t.Error("Pending card set after new game")
	}
	checkConservation(t, snap)
}

// TestDrawProducesPendingOrCascade verifies the draw transition and that
// the counter moves exactly once per obtained card
func TestDrawProducesPendingOrCascade(t *testing.T) {
	m := newInstantMachine(12)
	m.NewGame()
	m.Draw()

	snap := m.Snapshot()
	if snap.DrawsUsed != 1 {
		t.Fatalf("DrawsUsed = %d, want 1", snap.DrawsUsed)
	}
	// Either the card is pending, or it was a bomb and the cascade has
	// already settled back to Idle under the instant scheduler
	switch snap.Phase {
	case PhaseAwaitingPlacement:
		if snap.Pending == nil {
			t.Fatal("AwaitingPlacement with no pending card")
		}
		if snap.Pending.Symbol == deck.Bomb {
			t.Error("Bomb exposed as pending card")
		}
	case PhaseIdle:
		if snap.Pending != nil {
			t.Fatal("Idle with pending card")
		}
		if logContains(snap, "Drew a bomb") == 0 {
			t.Error("Idle after draw without a bomb cascade")
		}
	default:
		t.Fatalf("Unexpected phase %s after draw", snap.Phase)
	}
	checkConservation(t, snap)
}

// TestDrawGuards verifies draw is rejected while a card is pending
func TestDrawGuards(t *testing.T) {
	m := newInstantMachine(13)
	m.NewGame()

	// Reach a pending card; bombs just cascade and we try again
	for i := 0; i < 10 && m.Snapshot().Pending == nil; i++ {
		m.Draw()
	}
	snap := m.Snapshot()
	if snap.Pending == nil {
		t.Fatal("Never reached a pending card in 10 draws")
	}
	used := snap.DrawsUsed

	m.Draw()
	if got := m.Snapshot().DrawsUsed; got != used {
		t.Errorf("Draw while pending consumed budget: %d -> %d", used, got)
	}
}

// TestDiscardDrawnReturnsToIdle verifies pending disposition via discard
func TestDiscardDrawnReturnsToIdle(t *testing.T) {
	m := newInstantMachine(14)
	m.NewGame()
	for i := 0; i < 10 && m.Snapshot().Pending == nil; i++ {
		m.Draw()
	}
	if m.Snapshot().Pending == nil {
		t.Fatal("Never reached a pending card")
	}

	m.DiscardDrawn()
	snap := m.Snapshot()
	if snap.Phase != PhaseIdle || snap.Pending != nil {
		t.Errorf("Phase = %s, pending = %v after discard", snap.Phase, snap.Pending)
	}
	checkConservation(t, snap)
}

// TestPlaceReplacesOccupant verifies unconditional placement with the
// displaced card moving to discard
func TestPlaceReplacesOccupant(t *testing.T) {
	m := newInstantMachine(15)
	m.NewGame()
	for i := 0; i < 10 && m.Snapshot().Pending == nil; i++ {
		m.Draw()
	}
	snap := m.Snapshot()
	if snap.Pending == nil {
		t.Fatal("Never reached a pending card")
	}
	pendingID := snap.Pending.ID
	displacedID := snap.Cells[4].Card.ID
	discardBefore := snap.DiscardPile

	m.TapCell(4)
	snap = m.Snapshot()
	if snap.Cells[4].Card == nil || snap.Cells[4].Card.ID != pendingID {
		t.Error("Pending card did not land on cell 4")
	}
	if snap.DiscardPile != discardBefore+1 {
		t.Errorf("Discard pile = %d, want %d", snap.DiscardPile, discardBefore+1)
	}
	if snap.Cells[4].Card.ID == displacedID {
		t.Error("Displaced card still on the board")
	}
	if snap.Phase != PhaseIdle {
		t.Errorf("Phase = %s after placement", snap.Phase)
	}
	checkConservation(t, snap)
}

// TestPlacedBombTriggersWipe verifies a bomb placement wipes the board and
// leaves no bomb resident after settle
func TestPlacedBombTriggersWipe(t *testing.T) {
	m := newInstantMachine(16)
	m.NewGame()
	for i := 0; i < 10 && m.Snapshot().Pending == nil; i++ {
		m.Draw()
	}
	if m.pending == nil {
		t.Fatal("Never reached a pending card")
	}
	m.pending.Symbol = deck.Bomb

	m.TapCell(0)
	snap := m.Snapshot()
	if snap.Phase != PhaseIdle {
		t.Fatalf("Phase = %s after instant wipe, want Idle", snap.Phase)
	}
	for i, cell := range snap.Cells {
		if cell.Card == nil {
			t.Errorf("Cell %d empty after redeal", i)
		} else if cell.Card.Symbol == deck.Bomb {
			t.Errorf("Bomb resident on cell %d after wipe", i)
		}
	}
	if logContains(snap, "Board wiped") == 0 {
		t.Error("Wipe not logged")
	}
	checkConservation(t, snap)
}

// TestSelectionToggleAndCap verifies toggle semantics and the 3-cell cap
func TestSelectionToggleAndCap(t *testing.T) {
	m := newInstantMachine(17)
	m.NewGame()

	m.TapCell(0)
	m.TapCell(1)
	m.TapCell(2)
	m.TapCell(5) // over the cap: no-op
	if sel := m.Snapshot().Selection; len(sel) != 3 {
		t.Fatalf("Selection = %v, want 3 cells", sel)
	}

	m.TapCell(1) // toggle off
	sel := m.Snapshot().Selection
	if len(sel) != 2 {
		t.Fatalf("Selection = %v after toggle-off", sel)
	}
	for _, i := range sel {
		if i == 1 {
			t.Error("Toggled-off cell still selected")
		}
	}

	m.ClearSelection()
	if sel := m.Snapshot().Selection; len(sel) != 0 {
		t.Errorf("Selection = %v after clear", sel)
	}
}

// TestScoreWinningRow verifies the cash-in flow end to end: payout, cells
// refilled, selection cleared, conservation preserved
func TestScoreWinningRow(t *testing.T) {
	m := newInstantMachine(18)
	m.NewGame()
	rigRow(m, deck.Diamond, deck.Diamond, deck.Crown)

	m.TapCell(0)
	m.TapCell(1)
	m.TapCell(2)
	m.ScoreSelection()

	snap := m.Snapshot()
	if snap.Score != 500 {
		t.Fatalf("Score = %d, want 500", snap.Score)
	}
	if logContains(snap, "3 Diamonds! +500") == 0 {
		t.Error("Scoring not logged with label and payout")
	}
	if len(snap.Selection) != 0 {
		t.Errorf("Selection = %v after scoring", snap.Selection)
	}
	for i := 0; i < 3; i++ {
		if snap.Cells[i].Card == nil {
			t.Errorf("Cell %d not refilled", i)
		}
	}
	checkConservation(t, snap)
}

// TestScoreGuards verifies invalid selections are silent no-ops
func TestScoreGuards(t *testing.T) {
	m := newInstantMachine(19)
	m.NewGame()
	rigRow(m, deck.Diamond, deck.Present, deck.Crown)

	// Not a line
	m.TapCell(0)
	m.TapCell(1)
	m.TapCell(3)
	m.ScoreSelection()
	if snap := m.Snapshot(); snap.Score != 0 || len(snap.Selection) != 3 {
		t.Errorf("Non-line selection scored: %+v", snap.Selection)
	}
	m.ClearSelection()

	// A line, but no uniform target once crowns are resolved
	m.TapCell(0)
	m.TapCell(1)
	m.TapCell(2)
	m.ScoreSelection()
	if snap := m.Snapshot(); snap.Score != 0 {
		t.Errorf("Mixed line scored %d points", snap.Score)
	}

	// Too few cells
	m.ClearSelection()
	m.TapCell(0)
	m.ScoreSelection()
	if snap := m.Snapshot(); snap.Score != 0 {
		t.Error("Short selection scored")
	}
}

// TestDrawCapEndsSession verifies the 25-draw budget, the terminal phase,
// and that scoring remains available after game over
func TestDrawCapEndsSession(t *testing.T) {
	m := newInstantMachine(20)
	m.NewGame()

	for i := 0; i < 200 && m.Snapshot().DrawsUsed < constants.DrawsMax; i++ {
		m.Draw()
		if m.Snapshot().Pending != nil {
			m.DiscardDrawn()
		}
	}

	snap := m.Snapshot()
	if snap.DrawsUsed != constants.DrawsMax {
		t.Fatalf("DrawsUsed = %d, want %d", snap.DrawsUsed, constants.DrawsMax)
	}
	if snap.Phase != PhaseGameOver || !snap.GameOver {
		t.Fatalf("Phase = %s after budget spent, want GameOver", snap.Phase)
	}

	m.Draw()
	if got := m.Snapshot().DrawsUsed; got != constants.DrawsMax {
		t.Errorf("Draw after game over consumed budget: %d", got)
	}

	// Scoring a rigged row is still allowed
	rigRow(m, deck.Seven, deck.Crown, deck.Seven)
	m.TapCell(0)
	m.TapCell(1)
	m.TapCell(2)
	m.ScoreSelection()
	snap = m.Snapshot()
	if snap.Score != 300 {
		t.Errorf("Score after game over = %d, want 300", snap.Score)
	}
	if snap.Phase != PhaseGameOver {
		t.Errorf("Phase = %s after scoring in game over", snap.Phase)
	}
	checkConservation(t, snap)
}

// TestBombSequenceReentrancy verifies a second trigger during the overlay
// hold neither restarts the timer nor schedules a second wipe
func TestBombSequenceReentrancy(t *testing.T) {
	m, clock := newTimedMachine(21)
	m.NewGame()
	settleTimed(t, m, clock)

	m.triggerBombSequence()
	if m.Snapshot().Phase != PhaseBombPending {
		t.Fatal("Bomb sequence did not enter BombPending")
	}

	clock.Advance(constants.BombHoldDuration / 2)
	m.Tick(clock.Now())
	m.triggerBombSequence() // re-entrant: no-op

	// All interaction is disabled during the hold
	m.Draw()
	m.TapCell(0)
	m.ScoreSelection()
	snap := m.Snapshot()
	if snap.DrawsUsed != 0 || len(snap.Selection) != 0 {
		t.Error("Input leaked through BombPending guard")
	}

	// The wipe lands at the original deadline
	clock.Advance(constants.BombHoldDuration/2 + time.Millisecond)
	m.Tick(clock.Now())
	if m.Snapshot().Phase != PhaseSpinning {
		t.Fatal("Wipe did not fire at the original deadline")
	}

	settleTimed(t, m, clock)
	snap = m.Snapshot()
	for i, cell := range snap.Cells {
		if cell.Card == nil {
			t.Errorf("Cell %d empty after wipe and redeal", i)
		} else if cell.Card.Symbol == deck.Bomb {
			t.Errorf("Bomb resident on cell %d after settle", i)
		}
	}
	checkConservation(t, snap)
}

// TestSpinningGatesInput verifies the interaction-disabling contract while
// cells animate, and that spin overrides mask authoritative cards
func TestSpinningGatesInput(t *testing.T) {
	m, clock := newTimedMachine(22)
	m.NewGame()

	snap := m.Snapshot()
	if !snap.Spinning || snap.Phase != PhaseSpinning {
		t.Fatal("New deal not spinning under timed scheduler")
	}
	for i, cell := range snap.Cells {
		if !cell.Spinning {
			t.Errorf("Cell %d not marked spinning during deal", i)
		}
		if cell.Card == nil {
			t.Errorf("Cell %d has no authoritative card behind the spin", i)
		}
	}

	m.Draw()
	m.TapCell(0)
	snap = m.Snapshot()
	if snap.DrawsUsed != 0 || len(snap.Selection) != 0 || snap.Pending != nil {
		t.Error("Input leaked through Spinning guard")
	}

	settleTimed(t, m, clock)
	snap = m.Snapshot()
	for i, cell := range snap.Cells {
		if cell.Spinning {
			t.Errorf("Cell %d still spinning after settle", i)
		}
	}
	checkConservation(t, snap)
}

// TestNewGameCancelsPendingTimers verifies a reset during the overlay hold
// leaves no late callback to wipe the fresh board
func TestNewGameCancelsPendingTimers(t *testing.T) {
	m, clock := newTimedMachine(23)
	m.NewGame()
	settleTimed(t, m, clock)

	m.triggerBombSequence()
	clock.Advance(constants.BombHoldDuration / 2)
	m.Tick(clock.Now())

	m.NewGame()
	settleTimed(t, m, clock)
	before := m.Snapshot()

	// The superseded hold's deadline passes; nothing may fire
	clock.Advance(10 * constants.BombHoldDuration)
	m.Tick(clock.Now())
	after := m.Snapshot()

	if after.Phase != before.Phase {
		t.Errorf("Late callback changed phase: %s -> %s", before.Phase, after.Phase)
	}
	if n := logContains(after, "Board wiped"); n != logContains(before, "Board wiped") {
		t.Error("Late wipe fired against the new session")
	}
	checkConservation(t, after)
}

// TestApplyDispatch verifies event routing into the machine
func TestApplyDispatch(t *testing.T) {
	m := newInstantMachine(24)
	m.Apply(events.GameEvent{Type: events.EventNewGame})

	m.Apply(events.GameEvent{Type: events.EventCellTap, Payload: &events.CellTapPayload{Index: 4}})
	if sel := m.Snapshot().Selection; len(sel) != 1 || sel[0] != 4 {
		t.Errorf("Selection = %v after tap event", sel)
	}

	m.Apply(events.GameEvent{Type: events.EventClearSelection})
	if sel := m.Snapshot().Selection; len(sel) != 0 {
		t.Errorf("Selection = %v after clear event", sel)
	}

	m.Apply(events.GameEvent{Type: events.EventDraw})
	if m.Snapshot().DrawsUsed != 1 {
		t.Error("Draw event not dispatched")
	}
}

// TestEventLogBounded verifies the log retains only the newest entries
func TestEventLogBounded(t *testing.T) {
	m := newInstantMachine(25)
	m.NewGame()

	for i := 0; i < 2*constants.EventLogSize; i++ {
		m.TapCell(0)
		m.ClearSelection()
		m.log.add("filler")
	}
	snap := m.Snapshot()
	if len(snap.Log) != constants.EventLogSize {
		t.Errorf("Log holds %d entries, want %d", len(snap.Log), constants.EventLogSize)
	}
}

// TestDrawOnExhaustedDeckKeepsBudget verifies the chosen counter policy:
// a draw that obtains no card consumes no budget
func TestDrawOnExhaustedDeckKeepsBudget(t *testing.T) {
	m := newInstantMachine(27)
	m.NewGame()

	// Drain both piles; unreachable in real play, but the machine defends
	for {
		if _, ok := m.piles.TakeTop(); !ok {
			break
		}
	}

	m.Draw()
	snap := m.Snapshot()
	if snap.DrawsUsed != 0 {
		t.Errorf("Failed draw consumed budget: %d", snap.DrawsUsed)
	}
	if snap.Phase != PhaseIdle || snap.Pending != nil {
		t.Errorf("Failed draw changed state: phase=%s pending=%v", snap.Phase, snap.Pending)
	}
	if logContains(snap, "Deck exhausted") != 1 {
		t.Error("Exhaustion not logged")
	}
}

// TestConservationUnderRandomPlay drives the machine with random inputs
// and asserts the 80-card invariant after every step
func TestConservationUnderRandomPlay(t *testing.T) {
	m := newInstantMachine(26)
	driver := rand.New(rand.NewSource(99))
	m.NewGame()

	for step := 0; step < 500; step++ {
		switch driver.Intn(8) {
		case 0:
			m.Draw()
		case 1:
			m.DiscardDrawn()
		case 2, 3, 4:
			m.TapCell(driver.Intn(constants.GridSize))
		case 5:
			m.ClearSelection()
		case 6:
			m.ScoreSelection()
		case 7:
			if driver.Intn(10) == 0 {
				m.NewGame()
			}
		}
		checkConservation(t, m.Snapshot())
	}
}
