// Package poker provides the card, card set and hand evaluation primitives
// used by the equity engine. Cards are single bits of a 52-bit mask so that
// sets of cards can be combined and tested with plain bit operations.
package poker

import (
	"math/bits"
	"strings"
)

// Card is a single playing card encoded as one bit at position suit*13 + rank.
type Card uint64

// Suits
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

// Ranks, deuce through ace.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from a rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

// CardFromIndex returns the card stored at bit index 0-51.
func CardFromIndex(idx int) Card {
	return Card(1) << uint(idx)
}

// Index returns the bit index of the card (0-51).
func (c Card) Index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the rank of the card, 0 (deuce) through 12 (ace).
func (c Card) Rank() uint8 {
	return uint8(c.Index() % 13)
}

// Suit returns the suit of the card (0-3).
func (c Card) Suit() uint8 {
	return uint8(c.Index() / 13)
}

// Value returns the pip value of the card, 2 through 14.
func (c Card) Value() int {
	return int(c.Rank()) + 2
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && c&(c-1) == 0 && uint64(c) <= 1<<51
}

// String returns the two character notation of the card, e.g. "As".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// compareCards orders cards by rank, then suit.
func compareCards(a, b Card) int {
	if a.Rank() != b.Rank() {
		if a.Rank() < b.Rank() {
			return -1
		}
		return 1
	}
	switch {
	case a.Suit() < b.Suit():
		return -1
	case a.Suit() > b.Suit():
		return 1
	}
	return 0
}

// ParseRank converts a rank character into a rank (0-12).
func ParseRank(c byte) (uint8, bool) {
	idx := strings.IndexByte(rankChars, upper(c))
	if idx < 0 {
		return 0, false
	}
	return uint8(idx), true
}

// RankChar returns the notation character for a rank (0-12).
func RankChar(rank uint8) byte {
	if rank > Ace {
		return '?'
	}
	return rankChars[rank]
}

// ParseSuit converts a suit character into a suit (0-3).
func ParseSuit(c byte) (uint8, bool) {
	idx := strings.IndexByte(suitChars, lower(c))
	if idx < 0 {
		return 0, false
	}
	return uint8(idx), true
}

// ParseCard parses a card token such as "As", "td" or "2C".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, &ParseError{Token: s, Reason: "card must be exactly two characters"}
	}
	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, &ParseError{Token: s, Reason: "unknown rank '" + s[:1] + "'"}
	}
	suit, ok := ParseSuit(s[1])
	if !ok {
		return 0, &ParseError{Token: s, Reason: "unknown suit '" + s[1:] + "'"}
	}
	return NewCard(rank, suit), nil
}

// MustParseCard parses a card and panics on error (for tests and constants).
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a list of cards. Tokens may be concatenated ("AsKd"),
// separated by whitespace or commas ("As Kd", "As,Kd"), or any mix.
func ParseCards(s string) ([]Card, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ',':
			return -1
		}
		return r
	}, s)
	if len(compact)%2 != 0 {
		return nil, &ParseError{Token: s, Reason: "incomplete card"}
	}

	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		card, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
