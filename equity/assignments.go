package equity

import (
	"fmt"

	"github.com/lox/holdem-equity/poker"
)

// maxAssignments bounds the disjoint hand assignments held in memory at
// once, by exact enumeration or by a simulation that samples from them.
const maxAssignments = 1 << 22

// assignmentTable holds every disjoint hand assignment of a snapshot. Row a
// holds one combo index per participant, and weights[a] is the product of
// the chosen combo weights.
type assignmentTable struct {
	snap    *snapshot
	players int
	combos  []uint16
	weights []float64
}

// enumerateAssignments lists the disjoint assignments in participant and
// combo order. It fails with a ConfigError once more than limit exist.
func enumerateAssignments(s *snapshot, limit int) (*assignmentTable, error) {
	t := &assignmentTable{
		snap:    s,
		players: s.participants(),
	}
	current := make([]uint16, t.players)

	var walk func(i int, used poker.CardSet, weight float64) bool
	walk = func(i int, used poker.CardSet, weight float64) bool {
		if i == t.players {
			if len(t.weights) == limit {
				return false
			}
			t.combos = append(t.combos, current...)
			t.weights = append(t.weights, weight)
			return true
		}
		for j, c := range s.hands[i] {
			if c.cards.Overlaps(used) {
				continue
			}
			current[i] = uint16(j)
			if !walk(i+1, used|c.cards, weight*c.weight) {
				return false
			}
		}
		return true
	}

	if !walk(0, 0, 1) {
		return nil, &ConfigError{
			Field:  "participants",
			Reason: fmt.Sprintf("more than %d non-overlapping hand assignments; narrow the ranges", limit),
		}
	}
	return t, nil
}

func (t *assignmentTable) len() int {
	return len(t.weights)
}

// fill writes the hands of assignment a into hands and returns their union.
func (t *assignmentTable) fill(a int, hands []poker.CardSet) poker.CardSet {
	var used poker.CardSet
	row := t.combos[a*t.players : (a+1)*t.players]
	for i, j := range row {
		hands[i] = t.snap.hands[i][j].cards
		used |= hands[i]
	}
	return used
}
