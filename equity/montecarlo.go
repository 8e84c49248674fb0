package equity

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/lox/holdem-equity/internal/randutil"
	"github.com/lox/holdem-equity/poker"
)

const (
	// maxDrawAttempts bounds the rejected hand draws allowed for a single trial.
	maxDrawAttempts = 100_000

	// acceptanceProbes is the number of trial draws made before a simulation
	// starts to measure how often a drawn assignment is free of shared cards.
	acceptanceProbes = 10_000
	// minAccepted is the number of accepted probe draws needed to keep
	// rejection sampling. Fewer means an acceptance rate below 1/1000, and
	// the simulation samples from the enumerated assignments instead.
	minAccepted = 10

	// acceptanceStream is the seed stream of the probe draws. Chunk streams
	// never reach it.
	acceptanceStream = math.MaxUint64
)

// simulationRun samples hand assignments and boards.
type simulationRun struct {
	snap    *snapshot
	players int
	// cumulative weights per participant for weighted draws
	cumulative [][]float64

	// table is set when overlapping ranges make rejection sampling too
	// sparse. Trials then draw whole rows of it by cumulative weight.
	table      *assignmentTable
	tableTotal []float64
}

// newSimulationRun prepares the sampler. Whether trials are drawn by
// rejection or from enumerated assignments is decided here, from draws
// seeded by seed, so every chunk and worker count uses the same sampler and
// a request that cannot be sampled fails before any trial runs.
func newSimulationRun(s *snapshot, seed uint64) (*simulationRun, error) {
	sim := &simulationRun{
		snap:       s,
		players:    s.participants(),
		cumulative: make([][]float64, s.participants()),
	}
	for i, hands := range s.hands {
		cum := make([]float64, len(hands))
		total := 0.0
		for j, c := range hands {
			total += c.weight
			cum[j] = total
		}
		sim.cumulative[i] = cum
	}

	if sim.acceptsDraws(randutil.New(randutil.Derive(seed, acceptanceStream))) {
		return sim, nil
	}

	table, err := enumerateAssignments(s, maxAssignments)
	if err != nil {
		return nil, err
	}
	sim.useTable(table)
	return sim, nil
}

// useTable switches trials to drawing rows of an enumerated table.
func (sim *simulationRun) useTable(table *assignmentTable) {
	sim.table = table
	sim.tableTotal = make([]float64, table.len())
	total := 0.0
	for a, w := range table.weights {
		total += w
		sim.tableTotal[a] = total
	}
}

// acceptsDraws reports whether at least minAccepted of acceptanceProbes
// independent draws produce an assignment without shared cards.
func (sim *simulationRun) acceptsDraws(rng *rand.Rand) bool {
	hands := make([]poker.CardSet, sim.players)
	accepted := 0
	for range acceptanceProbes {
		if _, ok := sim.tryAssignment(rng, hands); ok {
			accepted++
			if accepted == minAccepted {
				return true
			}
		}
	}
	return false
}

// drawHand picks one hand of participant i in proportion to its weight.
func (sim *simulationRun) drawHand(i int, rng *rand.Rand) poker.CardSet {
	hands := sim.snap.hands[i]
	if len(hands) == 1 {
		return hands[0].cards
	}
	cum := sim.cumulative[i]
	x := rng.Float64() * cum[len(cum)-1]
	j := sort.Search(len(cum), func(k int) bool { return cum[k] > x })
	return hands[min(j, len(hands)-1)].cards
}

// tryAssignment draws one hand per participant and reports whether they are
// free of shared cards.
func (sim *simulationRun) tryAssignment(rng *rand.Rand, hands []poker.CardSet) (poker.CardSet, bool) {
	var used poker.CardSet
	for i := range hands {
		h := sim.drawHand(i, rng)
		if h.Overlaps(used) {
			return 0, false
		}
		hands[i] = h
		used |= h
	}
	return used, true
}

// drawAssignment draws one hand per participant. Assignments with shared
// cards are rejected and redrawn as a whole, so accepted assignments follow
// the same weighting as exact enumeration. Sampling a row of the enumerated
// table by its product weight gives that same distribution directly.
func (sim *simulationRun) drawAssignment(rng *rand.Rand, hands []poker.CardSet) (poker.CardSet, error) {
	if sim.table != nil {
		cum := sim.tableTotal
		x := rng.Float64() * cum[len(cum)-1]
		a := sort.Search(len(cum), func(k int) bool { return cum[k] > x })
		return sim.table.fill(min(a, len(cum)-1), hands), nil
	}

	for range maxDrawAttempts {
		if used, ok := sim.tryAssignment(rng, hands); ok {
			return used, nil
		}
	}
	return 0, &ConfigError{
		Field:  "participants",
		Reason: fmt.Sprintf("no non-overlapping hands for %d participants after %d draws", sim.players, maxDrawAttempts),
	}
}

func (sim *simulationRun) runChunk(c chunk, t *tally) error {
	rng := randutil.New(c.seed)
	deck := poker.NewDeckFrom(poker.FullDeck.Minus(sim.snap.known), rng)
	hands := make([]poker.CardSet, sim.players)
	ranks := make([]poker.HandRank, sim.players)

	for trial := c.start; trial < c.end; trial++ {
		used, err := sim.drawAssignment(rng, hands)
		if err != nil {
			return err
		}

		deck.Reset()
		dealt, ok := deck.DealExcluding(sim.snap.missing, used)
		if !ok {
			return &ConfigError{Field: "board", Reason: "not enough cards left to complete the board"}
		}
		board := sim.snap.board | dealt

		for i, h := range hands {
			ranks[i] = poker.EvaluateUnchecked(board | h)
		}
		t.record(ranks, 1)
	}
	return nil
}
