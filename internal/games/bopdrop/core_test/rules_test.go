package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformcore "github.com/vovakirdan/bopdrop/internal/core"
	"github.com/vovakirdan/bopdrop/internal/games/bopdrop/core"
)

func TestDefaultCatalog(t *testing.T) {
	cat := core.DefaultCatalog()

	assert.Equal(t, 13, cat.Count())
	assert.Equal(t, 5, cat.Droppable())
	assert.True(t, cat.IsTerminal(12))
	assert.False(t, cat.IsTerminal(11))

	for r := range 5 {
		assert.True(t, cat.IsDroppable(r), "rank %d should be droppable", r)
	}
	assert.False(t, cat.IsDroppable(5))
	assert.False(t, cat.IsDroppable(-1))

	r, ok := cat.Rank(0)
	require.True(t, ok)
	assert.Equal(t, 25.0, r.Radius)
	assert.Equal(t, 1, r.Points)
	assert.Equal(t, "ball-0", r.Name)
	assert.Equal(t, '0', r.Glyph)

	top, _ := cat.Rank(12)
	assert.Equal(t, 150.0, top.Radius)
	assert.Equal(t, 100, top.Points)
	assert.Equal(t, 'C', top.Glyph)

	_, ok = cat.Rank(13)
	assert.False(t, ok)
	assert.Zero(t, cat.Points(-1))
	assert.Zero(t, cat.Radius(99))
}

func TestCatalogRanksAreMonotonic(t *testing.T) {
	ranks := core.DefaultCatalog().Ranks()
	for i := 1; i < len(ranks); i++ {
		assert.GreaterOrEqual(t, ranks[i].Radius, ranks[i-1].Radius)
		assert.GreaterOrEqual(t, ranks[i].Points, ranks[i-1].Points)
		assert.Equal(t, i, ranks[i].Index)
	}
}

func TestNewCatalogErrors(t *testing.T) {
	_, err := core.NewCatalog(nil, 5)
	assert.ErrorIs(t, err, core.ErrEmptyCatalog)

	_, err = core.NewCatalog([]core.Rank{{Radius: 10, Points: 2}, {Radius: 5, Points: 3}}, 1)
	assert.ErrorIs(t, err, core.ErrRanksNotMonotonic)

	_, err = core.NewCatalog([]core.Rank{{Radius: 10, Points: 2}, {Radius: 20, Points: 1}}, 1)
	assert.ErrorIs(t, err, core.ErrRanksNotMonotonic)

	_, err = core.NewCatalog([]core.Rank{{Radius: 0, Points: 1}}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidRank)
}

func TestNewCatalogClampsDroppable(t *testing.T) {
	ranks := []core.Rank{{Radius: 1, Points: 1}, {Radius: 2, Points: 2}, {Radius: 3, Points: 3}}

	tests := []struct {
		droppable int
		expected  int
	}{
		{0, 1},
		{-4, 1},
		{2, 2},
		{99, 3},
	}
	for _, tt := range tests {
		cat, err := core.NewCatalog(ranks, tt.droppable)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, cat.Droppable(), "droppable %d", tt.droppable)
	}
}

func TestLedgerMergeLaw(t *testing.T) {
	cat := core.DefaultCatalog()
	for r := 0; r < cat.Count()-1; r++ {
		l := core.NewLedger(cat)
		before := l.Count(r)
		total := l.RecordMerge(r)

		assert.Equal(t, before+1, l.Count(r))
		assert.Equal(t, cat.Points(r), total)
		assert.Equal(t, 1, l.Merges())
	}
}

func TestLedgerOutOfRangeIsNoOp(t *testing.T) {
	cat := core.DefaultCatalog()
	l := core.NewLedger(cat)
	l.RecordMerge(2)

	for _, r := range []int{-1, cat.Count(), 1000} {
		assert.Equal(t, 6, l.RecordMerge(r))
	}
	assert.Equal(t, 6, l.Total())
	assert.Equal(t, 1, l.Merges())
	assert.Equal(t, 0, l.Count(-1))
}

func TestLedgerTotalMatchesRecompute(t *testing.T) {
	cat := core.DefaultCatalog()
	l := core.NewLedger(cat)
	rng := rand.New(rand.NewSource(7))

	for range 500 {
		l.RecordMerge(rng.Intn(cat.Count()+2) - 1)
		require.Equal(t, l.Recompute(), l.Total())
	}

	sum := 0
	for r, n := range l.Counts() {
		sum += n * cat.Points(r)
	}
	assert.Equal(t, sum, l.Total())

	l.Reset()
	assert.Zero(t, l.Total())
	assert.Zero(t, l.Recompute())
	assert.Zero(t, l.Merges())
}

func TestLedgerCountsIsCopy(t *testing.T) {
	l := core.NewLedger(core.DefaultCatalog())
	l.RecordMerge(0)

	counts := l.Counts()
	counts[0] = 99
	assert.Equal(t, 1, l.Count(0))
}

func TestQueueDrawRange(t *testing.T) {
	q := core.NewQueue(5, rand.NewSource(42))
	for range 2000 {
		r := q.Draw()
		require.GreaterOrEqual(t, r, 0)
		require.Less(t, r, 5)
	}
}

func TestQueueDeterministic(t *testing.T) {
	a := core.NewQueue(5, rand.NewSource(1234))
	b := core.NewQueue(5, rand.NewSource(1234))

	assert.Equal(t, a.Current(), b.Current())
	assert.Equal(t, a.Preview(), b.Preview())
	for range 100 {
		assert.Equal(t, a.Advance(), b.Advance())
		assert.Equal(t, a.Current(), b.Current())
	}
}

func TestQueueAdvance(t *testing.T) {
	q := core.NewQueue(5, rand.NewSource(99))
	for range 50 {
		preview := q.Preview()
		next := q.Advance()
		assert.Equal(t, preview, q.Current())
		assert.Equal(t, next, q.Preview())
	}
}

func TestQueueSingleDroppable(t *testing.T) {
	q := core.NewQueue(0, rand.NewSource(3))
	for range 20 {
		assert.Zero(t, q.Advance())
	}
}

func TestPhaseValid(t *testing.T) {
	for _, p := range []core.Phase{core.PhaseMenu, core.PhaseReady, core.PhaseDropping, core.PhaseGameOver} {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, core.Phase("paused").Valid())
	assert.False(t, core.Phase("").Valid())
	assert.True(t, core.PhaseDropping.Playing())
	assert.False(t, core.PhaseGameOver.Playing())
}

func TestResolve(t *testing.T) {
	cat := core.DefaultCatalog()
	const loseLine = 84.0
	at := func(rank int, x, y float64) core.Contact {
		return core.Contact{Known: true, Rank: rank, Pos: platformcore.V(x, y), Radius: cat.Radius(rank)}
	}

	tests := []struct {
		name string
		a, b core.Contact
		kind core.VerdictKind
	}{
		{"same rank merges", at(0, 100, 500), at(0, 150, 500), core.VerdictMerge},
		{"different ranks", at(0, 100, 500), at(1, 150, 500), core.VerdictIgnore},
		{"unknown rank", at(0, 100, 500), core.Contact{Pos: platformcore.V(150, 500), Radius: 25}, core.VerdictIgnore},
		{"static side", at(0, 100, 500), func() core.Contact { c := at(0, 150, 500); c.Static = true; return c }(), core.VerdictIgnore},
		{"above lose line", at(0, 100, 30), at(1, 150, 500), core.VerdictLose},
		{"lose beats merge", at(0, 100, 500), at(0, 150, 50), core.VerdictLose},
		{"bottom on the line", at(0, 100, loseLine-25), at(0, 150, 500), core.VerdictMerge},
		{"terminal rank", at(12, 300, 700), at(12, 500, 700), core.VerdictMaxed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := core.Resolve(tt.a, tt.b, cat, loseLine)
			assert.Equal(t, tt.kind, v.Kind, "got %s", v.Kind)
		})
	}
}

func TestResolveStaticCheckedBeforeLose(t *testing.T) {
	cat := core.DefaultCatalog()
	preview := core.Contact{Known: true, Rank: 0, Pos: platformcore.V(384, 60), Radius: 25, Static: true}
	falling := core.Contact{Known: true, Rank: 0, Pos: platformcore.V(384, 40), Radius: 25}

	v := core.Resolve(preview, falling, cat, 84)
	assert.Equal(t, core.VerdictIgnore, v.Kind)
}

func TestResolveMergeResult(t *testing.T) {
	cat := core.DefaultCatalog()
	a := core.Contact{Known: true, Rank: 3, Pos: platformcore.V(100, 400), Radius: 56}
	b := core.Contact{Known: true, Rank: 3, Pos: platformcore.V(200, 500), Radius: 56}

	v := core.Resolve(a, b, cat, 84)
	assert.Equal(t, core.VerdictMerge, v.Kind)
	assert.Equal(t, 3, v.Rank)
	assert.Equal(t, 4, v.NewRank)
	assert.Equal(t, platformcore.V(150, 450), v.Pos)
	assert.False(t, v.Bop)

	a.Rank, b.Rank = 11, 11
	v = core.Resolve(a, b, cat, 84)
	assert.Equal(t, 12, v.NewRank)
	assert.True(t, v.Bop)
}
