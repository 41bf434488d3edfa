// Package core contains the Bop Drop rules: the rank catalog, scoring,
// the drop queue, merge resolution, settling detection and the state machine
// that ties them to a physics world. It has no terminal or UI dependencies.
package core

import (
	"errors"
	"fmt"

	platformcore "github.com/vovakirdan/bopdrop/internal/core"
)

// DefaultDroppable is the number of smallest ranks the player can drop.
const DefaultDroppable = 5

var (
	ErrEmptyCatalog      = errors.New("rank catalog is empty")
	ErrRanksNotMonotonic = errors.New("rank radius and points must not decrease")
	ErrInvalidRank       = errors.New("invalid rank")
)

// Rank is one tier of the merge progression.
type Rank struct {
	Index  int
	Name   string
	Radius float64
	Points int
	Color  platformcore.Color // Terminal color
	Hex    string             // Display color, e.g. "#FF6B6B"
	Glyph  rune               // Label drawn in the piece center
}

// Catalog is the immutable, ordered list of ranks.
type Catalog struct {
	ranks     []Rank
	droppable int
}

// NewCatalog validates ranks and builds a catalog. Rank indices are assigned
// from slice order. droppable is clamped to [1, len(ranks)].
func NewCatalog(ranks []Rank, droppable int) (*Catalog, error) {
	if len(ranks) == 0 {
		return nil, ErrEmptyCatalog
	}

	out := make([]Rank, len(ranks))
	for i, r := range ranks {
		if r.Radius <= 0 {
			return nil, fmt.Errorf("%w: rank %d has radius %.1f", ErrInvalidRank, i, r.Radius)
		}
		if i > 0 {
			prev := ranks[i-1]
			if r.Radius < prev.Radius || r.Points < prev.Points {
				return nil, fmt.Errorf("%w: rank %d (radius %.1f, points %d) after rank %d (radius %.1f, points %d)",
					ErrRanksNotMonotonic, i, r.Radius, r.Points, i-1, prev.Radius, prev.Points)
			}
		}
		r.Index = i
		if r.Name == "" {
			r.Name = fmt.Sprintf("ball-%d", i)
		}
		if r.Glyph == 0 {
			r.Glyph = defaultGlyph(i)
		}
		out[i] = r
	}

	return &Catalog{
		ranks:     out,
		droppable: platformcore.Clamp(droppable, 1, len(out)),
	}, nil
}

func defaultGlyph(i int) rune {
	const glyphs = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(glyphs) {
		return rune(glyphs[i])
	}
	return '*'
}

// DefaultRanks returns the stock thirteen-rank table.
func DefaultRanks() []Rank {
	return []Rank{
		{Radius: 25, Points: 1, Hex: "#FF6B6B", Color: platformcore.ColorRed},
		{Radius: 35, Points: 3, Hex: "#FFA500", Color: platformcore.ColorOrange},
		{Radius: 46, Points: 6, Hex: "#FFD700", Color: platformcore.ColorGold},
		{Radius: 56, Points: 10, Hex: "#90EE90", Color: platformcore.ColorGreen},
		{Radius: 67, Points: 15, Hex: "#00CED1", Color: platformcore.ColorCyan},
		{Radius: 77, Points: 21, Hex: "#4169E1", Color: platformcore.ColorBlue},
		{Radius: 88, Points: 28, Hex: "#9370DB", Color: platformcore.ColorMagenta},
		{Radius: 89, Points: 36, Hex: "#FF69B4", Color: platformcore.ColorPink},
		{Radius: 108, Points: 45, Hex: "#FF1493", Color: platformcore.ColorBrightMagenta},
		{Radius: 119, Points: 55, Hex: "#00FF7F", Color: platformcore.ColorBrightGreen},
		{Radius: 129, Points: 66, Hex: "#FFD700", Color: platformcore.ColorGold},
		{Radius: 140, Points: 80, Hex: "#FF4500", Color: platformcore.ColorOrange},
		{Radius: 150, Points: 100, Hex: "#FF0000", Color: platformcore.ColorBrightRed},
	}
}

// DefaultCatalog returns the stock catalog with DefaultDroppable droppable ranks.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultRanks(), DefaultDroppable)
	if err != nil {
		panic(err) // stock table is known to be valid
	}
	return c
}

// Count returns the number of ranks (N).
func (c *Catalog) Count() int {
	return len(c.ranks)
}

// Droppable returns how many of the smallest ranks can be dropped (K).
func (c *Catalog) Droppable() int {
	return c.droppable
}

// Valid reports whether r is a rank index.
func (c *Catalog) Valid(r int) bool {
	return r >= 0 && r < len(c.ranks)
}

// IsDroppable reports whether r is one of the K smallest ranks.
func (c *Catalog) IsDroppable(r int) bool {
	return r >= 0 && r < c.droppable
}

// IsTerminal reports whether r is the top rank, which cannot merge further.
func (c *Catalog) IsTerminal(r int) bool {
	return r == len(c.ranks)-1
}

// Rank returns the attributes of rank r.
func (c *Catalog) Rank(r int) (Rank, bool) {
	if !c.Valid(r) {
		return Rank{}, false
	}
	return c.ranks[r], true
}

// Ranks returns a copy of all ranks in order.
func (c *Catalog) Ranks() []Rank {
	out := make([]Rank, len(c.ranks))
	copy(out, c.ranks)
	return out
}

// Points returns the score value of rank r, or 0 for an invalid rank.
func (c *Catalog) Points(r int) int {
	if !c.Valid(r) {
		return 0
	}
	return c.ranks[r].Points
}

// Radius returns the radius of rank r, or 0 for an invalid rank.
func (c *Catalog) Radius(r int) float64 {
	if !c.Valid(r) {
		return 0
	}
	return c.ranks[r].Radius
}
