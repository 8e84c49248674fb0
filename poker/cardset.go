package poker

import (
	"iter"
	"math/bits"
	"strings"
)

// CardSet is a set of cards stored as a 52-bit mask. The zero value is the
// empty set. Two sets are equal exactly when their bit patterns are equal.
type CardSet uint64

// FullDeck contains all 52 cards.
const FullDeck CardSet = 1<<52 - 1

// NewCardSet creates a set from the given cards.
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs |= CardSet(c)
	}
	return cs
}

// ParseCardSet parses card notation into a set. Duplicate cards are
// reported as a parse error.
func ParseCardSet(s string) (CardSet, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return 0, err
	}
	var cs CardSet
	for _, c := range cards {
		if cs.Has(c) {
			return 0, &ParseError{Token: s, Reason: "duplicate card " + c.String()}
		}
		cs.Add(c)
	}
	return cs, nil
}

// MustParseCardSet parses a set and panics on error (for tests).
func MustParseCardSet(s string) CardSet {
	cs, err := ParseCardSet(s)
	if err != nil {
		panic(err)
	}
	return cs
}

// Add adds a card to the set.
func (cs *CardSet) Add(c Card) {
	*cs |= CardSet(c)
}

// Remove removes a card from the set.
func (cs *CardSet) Remove(c Card) {
	*cs &^= CardSet(c)
}

// Has reports whether the card is in the set.
func (cs CardSet) Has(c Card) bool {
	return cs&CardSet(c) != 0
}

// Count returns the number of cards in the set.
func (cs CardSet) Count() int {
	return bits.OnesCount64(uint64(cs))
}

// IsEmpty reports whether the set has no cards.
func (cs CardSet) IsEmpty() bool {
	return cs == 0
}

// Union returns the cards in either set.
func (cs CardSet) Union(other CardSet) CardSet {
	return cs | other
}

// Intersect returns the cards in both sets.
func (cs CardSet) Intersect(other CardSet) CardSet {
	return cs & other
}

// Minus returns the cards in cs that are not in other.
func (cs CardSet) Minus(other CardSet) CardSet {
	return cs &^ other
}

// Overlaps reports whether the sets share at least one card.
func (cs CardSet) Overlaps(other CardSet) bool {
	return cs&other != 0
}

// SuitMask returns the 13-bit rank mask of the cards of one suit.
func (cs CardSet) SuitMask(suit uint8) uint16 {
	return uint16(uint64(cs)>>(uint(suit)*13)) & 0x1FFF
}

// All iterates the cards in canonical order (ascending bit index).
func (cs CardSet) All() iter.Seq[Card] {
	return func(yield func(Card) bool) {
		rest := uint64(cs)
		for rest != 0 {
			low := rest & -rest
			if !yield(Card(low)) {
				return
			}
			rest &^= low
		}
	}
}

// Cards returns the cards in canonical order.
func (cs CardSet) Cards() []Card {
	cards := make([]Card, 0, cs.Count())
	for c := range cs.All() {
		cards = append(cards, c)
	}
	return cards
}

// String returns the cards in canonical order separated by spaces.
func (cs CardSet) String() string {
	var sb strings.Builder
	for c := range cs.All() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
