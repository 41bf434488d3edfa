package core

import "github.com/vovakirdan/bopdrop/internal/physics"

// Session is the state of one game, created by Start and dropped by Restart.
type Session struct {
	ledger  *Ledger
	queue   *Queue
	phase   Phase
	bops    int
	drops   int
	maxRank int
	preview physics.ID // 0 when no preview is on the field
}

func newSession(ledger *Ledger, queue *Queue) *Session {
	return &Session{
		ledger: ledger,
		queue:  queue,
		phase:  PhaseMenu,
	}
}

func (s *Session) noteRank(rank int) {
	s.maxRank = max(s.maxRank, rank)
}

// Phase returns the session's phase.
func (s *Session) Phase() Phase { return s.phase }

// Ledger returns the session's scoring ledger.
func (s *Session) Ledger() *Ledger { return s.ledger }

// Bops returns how many terminal-rank pieces were made.
func (s *Session) Bops() int { return s.bops }

// Drops returns how many pieces the player released.
func (s *Session) Drops() int { return s.drops }

// MaxRank returns the largest rank seen on the field.
func (s *Session) MaxRank() int { return s.maxRank }
