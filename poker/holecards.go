package poker

import "fmt"

// HoleCards is a two-card starting hand. It is stored as the two-bit card
// mask, so the same two cards always produce the same value regardless of
// the order they were supplied in.
type HoleCards uint64

// NewHoleCards combines two distinct cards into a starting hand.
func NewHoleCards(a, b Card) (HoleCards, error) {
	if !a.Valid() || !b.Valid() {
		return 0, fmt.Errorf("invalid hole cards %s %s", a, b)
	}
	if a == b {
		return 0, &ParseError{Token: a.String() + b.String(), Reason: "hole cards must be two distinct cards"}
	}
	return HoleCards(a | b), nil
}

// ParseHoleCards parses a starting hand such as "AhKd" or "Ah Kd".
func ParseHoleCards(s string) (HoleCards, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return 0, err
	}
	if len(cards) != 2 {
		return 0, &ParseError{Token: s, Reason: fmt.Sprintf("hole cards need exactly 2 cards, got %d", len(cards))}
	}
	return NewHoleCards(cards[0], cards[1])
}

// MustParseHoleCards parses hole cards and panics on error (for tests).
func MustParseHoleCards(s string) HoleCards {
	h, err := ParseHoleCards(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Set returns the two cards as a CardSet.
func (h HoleCards) Set() CardSet {
	return CardSet(h)
}

func (h HoleCards) split() (Card, Card) {
	a := Card(uint64(h) & -uint64(h))
	b := Card(uint64(h) &^ uint64(a))
	if compareCards(a, b) < 0 {
		return b, a
	}
	return a, b
}

// High returns the higher card (by rank, then suit).
func (h HoleCards) High() Card {
	hi, _ := h.split()
	return hi
}

// Low returns the lower card (by rank, then suit).
func (h HoleCards) Low() Card {
	_, lo := h.split()
	return lo
}

// Cards returns the two cards, higher card first.
func (h HoleCards) Cards() [2]Card {
	hi, lo := h.split()
	return [2]Card{hi, lo}
}

// IsPair reports whether both cards share a rank.
func (h HoleCards) IsPair() bool {
	hi, lo := h.split()
	return hi.Rank() == lo.Rank()
}

// IsSuited reports whether both cards share a suit.
func (h HoleCards) IsSuited() bool {
	hi, lo := h.split()
	return hi.Suit() == lo.Suit()
}

// String returns the hand with the higher card first, e.g. "AhKd".
func (h HoleCards) String() string {
	hi, lo := h.split()
	return hi.String() + lo.String()
}
