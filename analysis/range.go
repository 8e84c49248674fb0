package analysis

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/lox/holdem-equity/poker"
)

// Range represents a collection of starting hands with associated weights
// in (0, 1]. A hand that is not in the range has weight 0.
type Range struct {
	combos map[poker.HoleCards]float64
}

// NewRange creates a new empty range.
func NewRange() *Range {
	return &Range{
		combos: make(map[poker.HoleCards]float64),
	}
}

// NewRangeFromCombos creates a range of the given hands, each at weight 1.
func NewRangeFromCombos(hands ...poker.HoleCards) *Range {
	r := NewRange()
	for _, h := range hands {
		r.Add(h, 1)
	}
	return r
}

// ParseRange parses range notation and expands it, dropping every hand that
// uses one of the dead cards.
// Examples: "AA,KK", "AKs,AKo", "TT+", "A5s-A2s", "KTs+", "22-66", "AQo:0.5"
func ParseRange(text string, dead poker.CardSet) (*Range, error) {
	tokens, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Expand(tokens, dead), nil
}

// MustParseRange parses a range and panics on error (for tests).
func MustParseRange(text string) *Range {
	r, err := ParseRange(text, 0)
	if err != nil {
		panic(err)
	}
	return r
}

// Expand turns tokens into a range. When several tokens produce the same
// hand the largest weight wins. Hands touching a dead card are dropped.
func Expand(tokens []Token, dead poker.CardSet) *Range {
	r := NewRange()
	for _, tok := range tokens {
		classList, combos := classes(tok.Pattern)
		for _, c := range classList {
			combos = append(combos, c.combos()...)
		}
		for _, h := range combos {
			if h.Set().Overlaps(dead) {
				continue
			}
			r.Add(h, tok.Weight)
		}
	}
	return r
}

// Add inserts a hand, keeping the larger weight if it is already present.
// Weights outside (0, 1] are clamped.
func (r *Range) Add(h poker.HoleCards, weight float64) {
	if weight <= 0 {
		return
	}
	weight = min(weight, 1)
	if weight > r.combos[h] {
		r.combos[h] = weight
	}
}

// Size returns the number of hand combinations in the range.
func (r *Range) Size() int {
	return len(r.combos)
}

// IsEmpty reports whether the range holds no hands.
func (r *Range) IsEmpty() bool {
	return len(r.combos) == 0
}

// Weight returns the weight of a hand, or 0 if it is not in the range.
func (r *Range) Weight(h poker.HoleCards) float64 {
	return r.combos[h]
}

// Contains reports whether the hand is in the range.
func (r *Range) Contains(h poker.HoleCards) bool {
	_, ok := r.combos[h]
	return ok
}

// Combos returns all hands in canonical (ascending mask) order.
func (r *Range) Combos() []poker.HoleCards {
	hands := lo.Keys(r.combos)
	slices.Sort(hands)
	return hands
}

// TotalWeight returns the sum of all weights.
func (r *Range) TotalWeight() float64 {
	return lo.SumBy(r.Combos(), func(h poker.HoleCards) float64 {
		return r.combos[h]
	})
}

// Without returns a copy of the range with every hand using a dead card
// removed. The receiver is unchanged.
func (r *Range) Without(dead poker.CardSet) *Range {
	out := NewRange()
	for h, w := range r.combos {
		if !h.Set().Overlaps(dead) {
			out.combos[h] = w
		}
	}
	return out
}

// Breakdown counts the pair, suited and offsuit hands of the range.
type Breakdown struct {
	Pairs   int
	Suited  int
	Offsuit int
}

// Breakdown returns the shape counts of the range.
func (r *Range) Breakdown() Breakdown {
	var b Breakdown
	for h := range r.combos {
		switch {
		case h.IsPair():
			b.Pairs++
		case h.IsSuited():
			b.Suited++
		default:
			b.Offsuit++
		}
	}
	return b
}

// Classes returns the distinct hand classes present, strongest high card
// first, pairs before suited before offsuit for equal ranks.
func (r *Range) Classes() []poker.HandClass {
	seen := lo.Uniq(lo.Map(r.Combos(), func(h poker.HoleCards, _ int) poker.HandClass {
		return h.Class()
	}))
	slices.SortFunc(seen, compareClasses)
	return seen
}

func compareClasses(a, b poker.HandClass) int {
	switch {
	case a.High != b.High:
		return int(b.High) - int(a.High)
	case a.Low != b.Low:
		return int(b.Low) - int(a.Low)
	case a.Suited != b.Suited:
		if a.Suited {
			return -1
		}
		return 1
	}
	return 0
}

// Equal reports whether both ranges hold the same hands at the same weights.
func (r *Range) Equal(other *Range) bool {
	if len(r.combos) != len(other.combos) {
		return false
	}
	for h, w := range r.combos {
		if ow, ok := other.combos[h]; !ok || ow != w {
			return false
		}
	}
	return true
}

// String renders the range in notation that ParseRange reads back to an
// equal range. Complete classes at a single weight print as the class,
// anything else prints combo by combo.
func (r *Range) String() string {
	byClass := lo.GroupBy(r.Combos(), func(h poker.HoleCards) poker.HandClass {
		return h.Class()
	})

	var terms []string
	for _, class := range r.Classes() {
		hands := byClass[class]
		weight := r.combos[hands[0]]
		uniform := lo.EveryBy(hands, func(h poker.HoleCards) bool {
			return r.combos[h] == weight
		})
		if uniform && len(hands) == class.Combos() {
			terms = append(terms, withWeight(class.String(), weight))
			continue
		}
		for _, h := range hands {
			terms = append(terms, withWeight(h.String(), r.combos[h]))
		}
	}
	return strings.Join(terms, ",")
}

func withWeight(term string, weight float64) string {
	if weight == 1 {
		return term
	}
	return term + ":" + strconv.FormatFloat(weight, 'g', -1, 64)
}
