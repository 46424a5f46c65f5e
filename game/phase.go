package game

// Phase is the machine's current lifecycle stage. Interaction is gated on
// it: Spinning and BombPending reject every input except a new game.
type Phase uint8

const (
	// PhaseInit is the pre-first-deal state
	PhaseInit Phase = iota

	// PhaseSpinning holds while dealt cells animate toward their commit
	PhaseSpinning

	// PhaseIdle accepts draw, selection and scoring
	PhaseIdle

	// PhaseAwaitingPlacement holds while a drawn card waits for placement
	// or discard
	PhaseAwaitingPlacement

	// PhaseBombPending holds between the bomb overlay and the grid wipe
	PhaseBombPending

	// PhaseGameOver means the draw budget is spent; scoring and new game
	// remain available
	PhaseGameOver
)

var phaseNames = [...]string{
	PhaseInit:              "Init",
	PhaseSpinning:          "Spinning",
	PhaseIdle:              "Idle",
	PhaseAwaitingPlacement: "AwaitingPlacement",
	PhaseBombPending:       "BombPending",
	PhaseGameOver:          "GameOver",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}
