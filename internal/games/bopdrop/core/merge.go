package core

import platformcore "github.com/vovakirdan/bopdrop/internal/core"

// Contact is what the resolver needs to know about one side of a contact.
type Contact struct {
	Known  bool // Rank came from the piece table
	Rank   int
	Pos    platformcore.Vec
	Radius float64
	Static bool
}

// Bottom returns the y of the lowest point; y grows downward.
func (c Contact) Bottom() float64 {
	return c.Pos.Y + c.Radius
}

// VerdictKind is the outcome of resolving a contact.
type VerdictKind int

const (
	VerdictIgnore VerdictKind = iota // Let physics handle it as a plain collision
	VerdictLose                      // A piece touched something above the lose line
	VerdictMaxed                     // Same terminal rank, nothing to merge into
	VerdictMerge                     // Replace both with one piece of NewRank
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictIgnore:
		return "ignore"
	case VerdictLose:
		return "lose"
	case VerdictMaxed:
		return "maxed"
	case VerdictMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// Verdict is the resolver's decision for one contact.
type Verdict struct {
	Kind    VerdictKind
	Rank    int              // Merging rank (Merge, Maxed)
	NewRank int              // Merge only
	Pos     platformcore.Vec // Merge only, midpoint of the inputs
	Bop     bool             // NewRank is terminal
}

// Resolve decides what a contact between a and b means. It has no side
// effects. loseLine is a y coordinate; a bottom edge with a smaller y is
// above the line.
func Resolve(a, b Contact, cat *Catalog, loseLine float64) Verdict {
	if a.Static || b.Static {
		return Verdict{Kind: VerdictIgnore}
	}
	if a.Bottom() < loseLine || b.Bottom() < loseLine {
		return Verdict{Kind: VerdictLose}
	}
	if !a.Known || !b.Known || a.Rank != b.Rank || !cat.Valid(a.Rank) {
		return Verdict{Kind: VerdictIgnore}
	}
	if cat.IsTerminal(a.Rank) {
		return Verdict{Kind: VerdictMaxed, Rank: a.Rank}
	}

	next := a.Rank + 1
	return Verdict{
		Kind:    VerdictMerge,
		Rank:    a.Rank,
		NewRank: next,
		Pos:     platformcore.Midpoint(a.Pos, b.Pos),
		Bop:     cat.IsTerminal(next),
	}
}
