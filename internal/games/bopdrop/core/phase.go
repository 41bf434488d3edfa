package core

// Phase is the game's top-level state.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhaseReady    Phase = "ready"     // Preview shown, waiting for a drop
	PhaseDropping Phase = "dropping"  // A piece was released, field not settled yet
	PhaseGameOver Phase = "game_over" // Terminal until restart
)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseMenu, PhaseReady, PhaseDropping, PhaseGameOver:
		return true
	default:
		return false
	}
}

// Playing reports whether pieces can still be dropped or are in flight.
func (p Phase) Playing() bool {
	return p == PhaseReady || p == PhaseDropping
}

func (p Phase) String() string {
	return string(p)
}
