package bopdrop

import "math"

// Snapshot is a comparable view of the game used by determinism tests.
// Positions are rounded to hundredths of a world unit.
type Snapshot struct {
	Tick    uint64
	Phase   string
	Score   int
	Bops    int
	Drops   int
	Current int
	Next    int
	Pointer int

	// Each piece is 4 ints: Rank, X, Y, Static
	PieceCount int
	PieceData  []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.machine == nil {
		return Snapshot{}
	}
	m := g.machine
	pieces := m.Pieces()
	data := make([]int, 0, len(pieces)*4)
	for _, p := range pieces {
		static := 0
		if p.Static {
			static = 1
		}
		data = append(data, p.Rank, hundredths(p.Pos.X), hundredths(p.Pos.Y), static)
	}

	return Snapshot{
		Tick:       g.tick,
		Phase:      m.Phase().String(),
		Score:      m.Score(),
		Bops:       m.Bops(),
		Drops:      m.Drops(),
		Current:    m.Current(),
		Next:       m.Next(),
		Pointer:    hundredths(m.Pointer()),
		PieceCount: len(pieces),
		PieceData:  data,
	}
}

func hundredths(v float64) int {
	return int(math.Round(v * 100))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, r := range snap.Phase {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	for _, v := range []int{snap.Score, snap.Bops, snap.Drops, snap.Current, snap.Next, snap.Pointer, snap.PieceCount} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PieceData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
