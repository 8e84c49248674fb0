package equity

import (
	"github.com/lox/holdem-equity/poker"
)

// exactRun enumerates every disjoint hand assignment and every board
// completion for it.
type exactRun struct {
	snap    *snapshot
	players int
	table   *assignmentTable
	sizes   []int64
}

// newExactRun lists the assignments up front. Requests with more than
// maxAssignments of them fail here, before any board is dealt.
func newExactRun(s *snapshot) (*exactRun, error) {
	table, err := enumerateAssignments(s, maxAssignments)
	if err != nil {
		return nil, err
	}
	return &exactRun{
		snap:    s,
		players: s.participants(),
		table:   table,
		sizes:   exactItemSizes(s.deckSize, s.missing),
	}, nil
}

func (x *exactRun) assignments() int {
	return x.table.len()
}

func (x *exactRun) plan() []chunk {
	return planExact(x.assignments(), x.sizes)
}

func (x *exactRun) runChunk(c chunk, t *tally) error {
	var (
		ranks   = make([]poker.HandRank, x.players)
		hands   = make([]poker.CardSet, x.players)
		current = -1
		weight  float64
		deck    []poker.Card
	)

	score := func(board poker.CardSet) {
		for i, h := range hands {
			ranks[i] = poker.EvaluateUnchecked(board | h)
		}
		t.record(ranks, weight)
	}

	per := len(x.sizes)
	for item := c.start; item < c.end; item++ {
		a, f := item/per, item%per
		if a != current {
			current = a
			used := x.table.fill(a, hands)
			weight = x.table.weights[a]
			deck = poker.FullDeck.Minus(x.snap.known | used).Cards()
		}

		if x.snap.missing == 0 {
			score(x.snap.board)
			continue
		}
		forEachBoard(deck[f+1:], x.snap.missing-1, x.snap.board|poker.CardSet(deck[f]), score)
	}
	return nil
}

// forEachBoard calls fn with acc plus every k-card subset of cards.
func forEachBoard(cards []poker.Card, k int, acc poker.CardSet, fn func(poker.CardSet)) {
	if k == 0 {
		fn(acc)
		return
	}
	for i := 0; i <= len(cards)-k; i++ {
		forEachBoard(cards[i+1:], k-1, acc|poker.CardSet(cards[i]), fn)
	}
}
