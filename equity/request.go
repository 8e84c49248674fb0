package equity

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-equity/analysis"
	"github.com/lox/holdem-equity/poker"
)

// Mode selects how a request is computed.
type Mode uint8

const (
	// Auto enumerates when the number of completions is below the
	// configured threshold and simulates otherwise.
	Auto Mode = iota
	// Exact enumerates every completion.
	Exact
	// MonteCarlo samples a fixed number of trials.
	MonteCarlo
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Exact:
		return "exact"
	case MonteCarlo:
		return "montecarlo"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode parses "auto", "exact" or "montecarlo".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "exact":
		return Exact, nil
	case "montecarlo", "monte-carlo", "mc":
		return MonteCarlo, nil
	}
	return Auto, &ConfigError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s)}
}

// Request describes one equity computation. Participants are index-aligned
// with Result.Outcomes.
//
// Trials and Workers follow the usual zero-value convention: zero means
// "unset" and takes the engine Config value, which Config.Validate already
// requires to be positive. A zero budget therefore never reaches the
// engine; negative values are rejected with a ConfigError. A nil Seed takes
// Config.Seed, or fresh entropy when that is nil too.
type Request struct {
	Participants []*analysis.Range
	Board        poker.CardSet
	Dead         poker.CardSet
	Mode         Mode

	Trials  int
	Seed    *uint64
	Workers int
}

// combo is one weighted starting hand of a participant.
type combo struct {
	cards  poker.CardSet
	weight float64
}

// snapshot is the validated, immutable view of a request shared by all
// workers.
type snapshot struct {
	hands    [][]combo
	board    poker.CardSet
	known    poker.CardSet // board and dead cards
	missing  int           // board cards still to come
	deckSize int           // cards left once board, dead and all hole cards are out
}

func (s *snapshot) participants() int {
	return len(s.hands)
}

// multiCombo reports whether any participant holds more than one hand.
func (s *snapshot) multiCombo() bool {
	for _, h := range s.hands {
		if len(h) > 1 {
			return true
		}
	}
	return false
}

// completions is the number of branches an exhaustive enumeration would
// visit, counting overlapping assignments.
func (s *snapshot) completions() float64 {
	total := float64(binomial(s.deckSize, s.missing))
	for _, h := range s.hands {
		total *= float64(len(h))
	}
	return total
}

// newSnapshot validates a request and prunes every range against the board
// and dead cards.
func newSnapshot(req Request) (*snapshot, error) {
	if len(req.Participants) < 2 {
		return nil, &ConfigError{Field: "participants", Reason: fmt.Sprintf("need at least two participants, got %d", len(req.Participants))}
	}

	switch n := req.Board.Count(); n {
	case 0, 3, 4, 5:
	default:
		return nil, &ConfigError{Field: "board", Reason: fmt.Sprintf("board must have 0, 3, 4 or 5 cards, got %d", n)}
	}
	if req.Board&^poker.FullDeck != 0 || req.Dead&^poker.FullDeck != 0 {
		return nil, &ConfigError{Field: "cards", Reason: "card set contains invalid cards"}
	}
	if overlap := req.Board.Intersect(req.Dead); !overlap.IsEmpty() {
		return nil, &CardConflictError{Cards: overlap, Reason: "board cards are also dead"}
	}

	known := req.Board.Union(req.Dead)
	s := &snapshot{
		hands:   make([][]combo, len(req.Participants)),
		board:   req.Board,
		known:   known,
		missing: 5 - req.Board.Count(),
	}

	for i, r := range req.Participants {
		if r == nil || r.IsEmpty() {
			return nil, &ConfigError{Field: "participants", Reason: fmt.Sprintf("participant %d has an empty range", i)}
		}
		for _, h := range r.Combos() {
			if h.Set().Overlaps(known) {
				continue
			}
			s.hands[i] = append(s.hands[i], combo{cards: h.Set(), weight: r.Weight(h)})
		}
		if len(s.hands[i]) == 0 {
			conflict := known
			if r.Size() == 1 {
				conflict = r.Combos()[0].Set().Intersect(known)
			}
			return nil, &CardConflictError{Cards: conflict, Reason: fmt.Sprintf("every hand of participant %d uses a board or dead card", i)}
		}
	}

	// Fixed hands must not share cards with each other.
	var fixed poker.CardSet
	for i, h := range s.hands {
		if len(h) != 1 {
			continue
		}
		if overlap := fixed.Intersect(h[0].cards); !overlap.IsEmpty() {
			return nil, &CardConflictError{Cards: overlap, Reason: fmt.Sprintf("participant %d shares cards with another participant", i)}
		}
		fixed = fixed.Union(h[0].cards)
	}

	s.deckSize = 52 - known.Count() - 2*len(s.hands)
	if s.deckSize < s.missing {
		return nil, &ConfigError{Field: "participants", Reason: fmt.Sprintf("%d participants with %d known cards need more than 52 cards", len(s.hands), known.Count())}
	}

	if !s.hasAssignment(0, 0) {
		return nil, &CardConflictError{Reason: "no combination of participant hands is free of shared cards"}
	}
	return s, nil
}

// hasAssignment reports whether participants from i on can each be given a
// hand disjoint from used and from each other.
func (s *snapshot) hasAssignment(i int, used poker.CardSet) bool {
	if i == len(s.hands) {
		return true
	}
	for _, c := range s.hands[i] {
		if c.cards.Overlaps(used) {
			continue
		}
		if s.hasAssignment(i+1, used|c.cards) {
			return true
		}
	}
	return false
}

// binomial returns n choose k, or 0 when k is out of range.
func binomial(n, k int) int64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}
	return result
}
