package core

// Ledger counts merges per rank and derives the score from them.
// The cached total always equals the sum of count[r] * points[r].
type Ledger struct {
	cat    *Catalog
	counts []int
	total  int
	merges int
}

// NewLedger creates a zeroed ledger for the catalog.
func NewLedger(cat *Catalog) *Ledger {
	return &Ledger{
		cat:    cat,
		counts: make([]int, cat.Count()),
	}
}

// RecordMerge records that two pieces of rank merged and returns the new
// total. An out-of-range rank changes nothing.
func (l *Ledger) RecordMerge(rank int) int {
	if !l.cat.Valid(rank) {
		return l.total
	}
	l.counts[rank]++
	l.merges++
	l.total += l.cat.Points(rank)
	return l.total
}

// Total returns the current score.
func (l *Ledger) Total() int {
	return l.total
}

// Recompute derives the score from the counts without using the cache.
func (l *Ledger) Recompute() int {
	sum := 0
	for r, n := range l.counts {
		sum += n * l.cat.Points(r)
	}
	return sum
}

// Count returns how many merges happened at rank.
func (l *Ledger) Count(rank int) int {
	if !l.cat.Valid(rank) {
		return 0
	}
	return l.counts[rank]
}

// Counts returns a copy of the per-rank merge counts.
func (l *Ledger) Counts() []int {
	out := make([]int, len(l.counts))
	copy(out, l.counts)
	return out
}

// Merges returns the total number of recorded merges.
func (l *Ledger) Merges() int {
	return l.merges
}

// Reset zeroes all counts.
func (l *Ledger) Reset() {
	clear(l.counts)
	l.total = 0
	l.merges = 0
}
