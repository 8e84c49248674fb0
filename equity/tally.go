package equity

import (
	"github.com/lox/holdem-equity/internal/statistics"
	"github.com/lox/holdem-equity/poker"
)

// tally accumulates raw weighted outcome counts for one chunk of work.
// Nothing is divided until the chunks have been reduced.
type tally struct {
	weight   float64
	branches int64
	wins     []float64
	ties     []float64
	shares   []float64
	moments  []statistics.Moments
}

func newTally(participants int) tally {
	return tally{
		wins:    make([]float64, participants),
		ties:    make([]float64, participants),
		shares:  make([]float64, participants),
		moments: make([]statistics.Moments, participants),
	}
}

// record scores one branch. Tied winners split the branch evenly.
func (t *tally) record(ranks []poker.HandRank, weight float64) {
	best := ranks[0]
	winners := 1
	for _, r := range ranks[1:] {
		switch {
		case r < best:
			best, winners = r, 1
		case r == best:
			winners++
		}
	}

	share := 1 / float64(winners)
	for i, r := range ranks {
		x := 0.0
		if r == best {
			x = share
			if winners == 1 {
				t.wins[i] += weight
			} else {
				t.ties[i] += weight
			}
			t.shares[i] += weight * share
		}
		t.moments[i].AddWeighted(x, weight)
	}
	t.weight += weight
	t.branches++
}

// merge adds other into t.
func (t *tally) merge(other *tally) {
	t.weight += other.weight
	t.branches += other.branches
	for i := range t.wins {
		t.wins[i] += other.wins[i]
		t.ties[i] += other.ties[i]
		t.shares[i] += other.shares[i]
		t.moments[i].Merge(other.moments[i])
	}
}

// reduce sums chunk tallies in chunk order.
func reduce(tallies []tally, participants int) tally {
	total := newTally(participants)
	for i := range tallies {
		total.merge(&tallies[i])
	}
	return total
}
