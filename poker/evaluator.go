package poker

import (
	"math/bits"
)

// HandRank represents the strength of a poker hand. Lower values are
// stronger: 0 is a royal flush and 7461 is seven-high. Every one of the
// 7,462 distinct five-card hand values has its own rank, so two hands tie
// exactly when their ranks are equal.
type HandRank uint16

// HandCategory enumerates the categories of poker hands ordered from weakest
// to strongest. RoyalFlush is tracked separately from StraightFlush; its
// HandRank is the strongest straight flush.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c HandCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

const (
	baseStraightFlush = 0
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount
)

const (
	// DistinctHandRanks is the number of distinct hand values.
	DistinctHandRanks = baseHighCard + highCardCount

	// BestHandRank is a royal flush.
	BestHandRank HandRank = 0

	// WorstHandRank is 7-5-4-3-2 of mixed suits.
	WorstHandRank HandRank = DistinctHandRanks - 1
)

// handTypeBoundaries mark the exclusive upper bound of each category,
// strongest first.
var handTypeBoundaries = [...]HandRank{
	baseFourOfAKind,
	baseFullHouse,
	baseFlush,
	baseStraight,
	baseThreeOfAKind,
	baseTwoPair,
	baseOnePair,
	baseHighCard,
}

// Category returns the category of the hand (pair, flush, etc.).
func (hr HandRank) Category() HandCategory {
	switch {
	case hr == BestHandRank:
		return RoyalFlush
	case hr < handTypeBoundaries[0]:
		return StraightFlush
	case hr < handTypeBoundaries[1]:
		return FourOfAKind
	case hr < handTypeBoundaries[2]:
		return FullHouse
	case hr < handTypeBoundaries[3]:
		return Flush
	case hr < handTypeBoundaries[4]:
		return Straight
	case hr < handTypeBoundaries[5]:
		return ThreeOfAKind
	case hr < handTypeBoundaries[6]:
		return TwoPair
	case hr < handTypeBoundaries[7]:
		return Pair
	default:
		return HighCard
	}
}

// Strength returns an ascending strength score, 0 for the weakest hand and
// DistinctHandRanks-1 for a royal flush.
func (hr HandRank) Strength() int {
	return int(WorstHandRank) - int(hr)
}

// Compare returns 1 if hr beats other, -1 if other beats hr and 0 on a tie.
func (hr HandRank) Compare(other HandRank) int {
	switch {
	case hr < other:
		return 1
	case hr > other:
		return -1
	}
	return 0
}

// Beats reports whether hr is strictly stronger than other.
func (hr HandRank) Beats(other HandRank) bool {
	return hr < other
}

// String returns the category name of the hand.
func (hr HandRank) String() string {
	return hr.Category().String()
}

// Evaluate ranks the best five-card hand contained in a set of 5 to 7 cards.
func Evaluate(cs CardSet) (HandRank, error) {
	n := cs.Count()
	if n < 5 || n > 7 || cs&^FullDeck != 0 {
		return 0, &InvalidHandError{Cards: n}
	}
	return evaluate(cs), nil
}

// EvaluateCards ranks the best five-card hand among the given cards.
// Repeated cards count once.
func EvaluateCards(cards ...Card) (HandRank, error) {
	return Evaluate(NewCardSet(cards...))
}

// MustEvaluate evaluates a set and panics on error (for tests).
func MustEvaluate(cs CardSet) HandRank {
	hr, err := Evaluate(cs)
	if err != nil {
		panic(err)
	}
	return hr
}

// EvaluateUnchecked ranks a set already known to hold 5 to 7 valid cards.
// The equity engine validates its inputs up front and calls this in its
// inner loops.
func EvaluateUnchecked(cs CardSet) HandRank {
	return evaluate(cs)
}

func evaluate(cs CardSet) HandRank {
	s0, s1, s2, s3 := cs.SuitMask(Clubs), cs.SuitMask(Diamonds), cs.SuitMask(Hearts), cs.SuitMask(Spades)
	rankMask := s0 | s1 | s2 | s3

	// With at most seven cards a flush excludes quads and full houses, so
	// the first suit holding five cards decides the hand.
	for _, suitMask := range [4]uint16{s0, s1, s2, s3} {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high, ok := straightHigh(suitMask); ok {
			return HandRank(baseStraightFlush + straightFlushCount - 1 - straightIndex(high))
		}
		return HandRank(baseFlush + flushCount - 1 - fiveCardIndex(topRanks(suitMask, 5)))
	}

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quadsMask != 0 {
		quad := highestRank(quadsMask)
		kicker := highestRank(rankMask &^ rankBit(quad))
		idx := uint16(quad)*12 + uint16(ordinalExcluding(kicker, rankBit(quad)))
		return HandRank(baseFourOfAKind + fourOfAKindCount - 1 - idx)
	}

	if tripsMask != 0 {
		trip := highestRank(tripsMask)
		if pairCandidates := (pairsMask | tripsMask) &^ rankBit(trip); pairCandidates != 0 {
			pair := highestRank(pairCandidates)
			idx := uint16(trip)*12 + uint16(ordinalExcluding(pair, rankBit(trip)))
			return HandRank(baseFullHouse + fullHouseCount - 1 - idx)
		}
	}

	if high, ok := straightHigh(rankMask); ok {
		return HandRank(baseStraight + straightCount - 1 - straightIndex(high))
	}

	if tripsMask != 0 {
		trip := highestRank(tripsMask)
		kickers := topRanks(rankMask&^rankBit(trip), 2)
		idx := uint16(trip)*66 + colexIndex[compressRank(kickers, trip)]
		return HandRank(baseThreeOfAKind + threeOfAKindCount - 1 - idx)
	}

	if pairsMask != 0 {
		highPair := highestRank(pairsMask)
		rest := pairsMask &^ rankBit(highPair)
		if rest != 0 {
			lowPair := highestRank(rest)
			both := rankBit(highPair) | rankBit(lowPair)
			kicker := highestRank(rankMask &^ both)
			idx := colexIndex[both]*11 + uint16(ordinalExcluding(kicker, both))
			return HandRank(baseTwoPair + twoPairCount - 1 - idx)
		}
		kickers := topRanks(rankMask&^rankBit(highPair), 3)
		idx := uint16(highPair)*220 + colexIndex[compressRank(kickers, highPair)]
		return HandRank(baseOnePair + onePairCount - 1 - idx)
	}

	return HandRank(baseHighCard + highCardCount - 1 - fiveCardIndex(topRanks(rankMask, 5)))
}

func rankBit(rank uint8) uint16 {
	return 1 << rank
}

// highestRank returns the highest rank present in a non-empty mask.
func highestRank(mask uint16) uint8 {
	return uint8(bits.Len16(mask) - 1)
}

// topRanks keeps the n highest ranks of mask.
func topRanks(mask uint16, n int) uint16 {
	var out uint16
	for range n {
		if mask == 0 {
			break
		}
		top := rankBit(highestRank(mask))
		out |= top
		mask &^= top
	}
	return out
}

// ordinalExcluding returns the position of rank among the ranks that are
// not in excluded.
func ordinalExcluding(rank uint8, excluded uint16) uint8 {
	below := excluded & (rankBit(rank) - 1)
	return rank - uint8(bits.OnesCount16(below))
}

// compressRank removes bit `rank` from mask, shifting higher bits down.
func compressRank(mask uint16, rank uint8) uint16 {
	low := mask & (rankBit(rank) - 1)
	high := (mask >> (rank + 1)) << rank
	return low | high
}

// straightHigh returns the high-card rank of the best straight in mask.
func straightHigh(mask uint16) (uint8, bool) {
	const wheelMask = 0x100F // A-2-3-4-5

	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return highestRank(seq) + 4, true
	}
	if mask&wheelMask == wheelMask {
		return Five, true
	}
	return 0, false
}

// straightIndex numbers straights from the wheel (0) to ace high (9).
func straightIndex(high uint8) uint16 {
	return uint16(high - Five)
}

// fiveCardIndex numbers a non-straight five-rank mask among all such masks,
// weakest first.
func fiveCardIndex(mask uint16) uint16 {
	idx := colexIndex[mask]
	var skipped uint16
	for _, s := range straightColex {
		if s >= idx {
			break
		}
		skipped++
	}
	return idx - skipped
}

// colexIndex gives each mask its position among the masks with the same
// number of bits in ascending numeric order. For rank masks of equal size a
// larger mask is always the stronger kicker set, so the index orders kicker
// sets by strength.
var colexIndex = func() [1 << 13]uint16 {
	var table [1 << 13]uint16
	var next [14]uint16
	for mask := range 1 << 13 {
		n := bits.OnesCount16(uint16(mask))
		table[mask] = next[n]
		next[n]++
	}
	return table
}()

// straightColex holds the colex indices of the ten straight masks, sorted.
var straightColex = func() [10]uint16 {
	var out [10]uint16
	out[0] = colexIndex[0x100F]
	for low := range 9 {
		out[low+1] = colexIndex[uint16(0x1F)<<low]
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}()
