package engine

import (
	"math/rand"
	"time"

	"slotaire/constants"
	"slotaire/deck"
)

// Scheduler sequences the timed visual transitions the state machine
// defers: cell spins and the bomb overlay hold. It receives only cell
// indices and commit callbacks, never game state. Commits fire from
// Update, on the game loop, so the machine never sees a late callback
// after CancelAll.
type Scheduler interface {
	// StartSpin animates the given cells and invokes commit when the spin
	// elapses. A spin started while another is running cancels the prior
	// one entirely; at most one spin is active.
	StartSpin(cells []int, commit func())

	// StartBombHold schedules commit after the bomb overlay hold. Returns
	// false without touching the pending deadline if a hold is already
	// scheduled.
	StartBombHold(commit func()) bool

	// Update fires due commits and re-rolls spin display symbols.
	Update(now time.Time)

	// SpinOverride returns the transient display symbol for a spinning
	// cell. ok is false when the cell is not spinning.
	SpinOverride(cell int) (deck.Symbol, bool)

	SpinActive() bool
	BombHoldActive() bool

	// CancelAll drops all pending spins and holds without committing.
	CancelAll()
}

type spinRun struct {
	cells     []int
	overrides map[int]deck.Symbol
	nextRoll  time.Time
	deadline  time.Time
	commit    func()
}

type bombRun struct {
	deadline time.Time
	commit   func()
}

// TimedScheduler is the production Scheduler. Deadlines are polled from
// the frame loop via Update against an injected TimeProvider, so there are
// no free-running timer goroutines to leak or to fire against a superseded
// game. Not safe for concurrent use; the game loop is the sole caller.
type TimedScheduler struct {
	clock TimeProvider
	rng   *rand.Rand
	spin  *spinRun
	bomb  *bombRun
}

// NewTimedScheduler creates a scheduler on the given clock. rng drives the
// non-authoritative spin display symbols only.
func NewTimedScheduler(clock TimeProvider, rng *rand.Rand) *TimedScheduler {
	return &TimedScheduler{clock: clock, rng: rng}
}

func (s *TimedScheduler) StartSpin(cells []int, commit func()) {
	now := s.clock.Now()
	run := &spinRun{
		cells:     append([]int(nil), cells...),
		overrides: make(map[int]deck.Symbol, len(cells)),
		nextRoll:  now.Add(constants.SpinTickInterval),
		deadline:  now.Add(constants.SpinDuration),
		commit:    commit,
	}
	s.rollOverrides(run)
	s.spin = run
}

func (s *TimedScheduler) StartBombHold(commit func()) bool {
	if s.bomb != nil {
		return false
	}
	s.bomb = &bombRun{
		deadline: s.clock.Now().Add(constants.BombHoldDuration),
		commit:   commit,
	}
	return true
}

func (s *TimedScheduler) Update(now time.Time) {
	if spin := s.spin; spin != nil {
		for !now.Before(spin.nextRoll) && now.Before(spin.deadline) {
			s.rollOverrides(spin)
			spin.nextRoll = spin.nextRoll.Add(constants.SpinTickInterval)
		}
		if !now.Before(spin.deadline) {
			// Clear before committing: the commit may start the next spin
			s.spin = nil
			spin.commit()
		}
	}

	if bomb := s.bomb; bomb != nil && !now.Before(bomb.deadline) {
		s.bomb = nil
		bomb.commit()
	}
}

func (s *TimedScheduler) SpinOverride(cell int) (deck.Symbol, bool) {
	if s.spin == nil {
		return 0, false
	}
	sym, ok := s.spin.overrides[cell]
	return sym, ok
}

func (s *TimedScheduler) SpinActive() bool {
	return s.spin != nil
}

func (s *TimedScheduler) BombHoldActive() bool {
	return s.bomb != nil
}

func (s *TimedScheduler) CancelAll() {
	s.spin = nil
	s.bomb = nil
}

// rollOverrides re-randomizes display symbols. Bomb is excluded: the spin
// face never teases a symbol the committed card could hide behind.
func (s *TimedScheduler) rollOverrides(run *spinRun) {
	for _, cell := range run.cells {
		run.overrides[cell] = deck.Symbol(s.rng.Intn(int(deck.Bomb)))
	}
}

// InstantScheduler commits synchronously inside StartSpin/StartBombHold.
// It keeps game logic testable without advancing time: a full animated
// sequence, cascades included, settles within a single call.
type InstantScheduler struct{}

func NewInstantScheduler() *InstantScheduler {
	return &InstantScheduler{}
}

func (*InstantScheduler) StartSpin(cells []int, commit func()) { commit() }

func (*InstantScheduler) StartBombHold(commit func()) bool {
	commit()
	return true
}

func (*InstantScheduler) Update(time.Time) {}

func (*InstantScheduler) SpinOverride(int) (deck.Symbol, bool) { return 0, false }

func (*InstantScheduler) SpinActive() bool { return false }

func (*InstantScheduler) BombHoldActive() bool { return false }

func (*InstantScheduler) CancelAll() {}
