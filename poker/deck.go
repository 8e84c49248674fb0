package poker

import (
	"math/rand/v2"
)

// Deck deals cards without replacement from a fixed pool of cards. Dealing
// is a partial Fisher-Yates shuffle, so resetting the deck is O(1) and each
// deal costs only as many swaps as cards dealt.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a deck of all 52 cards with an explicit RNG.
func NewDeck(rng *rand.Rand) *Deck {
	return NewDeckFrom(FullDeck, rng)
}

// NewDeckFrom creates a deck holding only the cards in pool.
func NewDeckFrom(pool CardSet, rng *rand.Rand) *Deck {
	return &Deck{
		cards: pool.Cards(),
		rng:   rng,
	}
}

// Reset returns every card to the deck.
func (d *Deck) Reset() {
	d.next = 0
}

// CardsRemaining returns the number of cards left in the deck.
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// DealOne deals a single uniformly chosen card, or 0 when the deck is empty.
func (d *Deck) DealOne() Card {
	if d.next >= len(d.cards) {
		return 0
	}
	j := d.next + d.rng.IntN(len(d.cards)-d.next)
	d.cards[d.next], d.cards[j] = d.cards[j], d.cards[d.next]
	card := d.cards[d.next]
	d.next++
	return card
}

// Deal deals n cards, or nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	out := make([]Card, 0, n)
	for range n {
		out = append(out, d.DealOne())
	}
	return out
}

// DealExcluding deals n cards into a set, skipping any card in exclude.
// Skipped cards are discarded, which keeps the result a uniform sample of
// the deck minus exclude. It returns false if the deck runs out first.
func (d *Deck) DealExcluding(n int, exclude CardSet) (CardSet, bool) {
	var dealt CardSet
	for dealt.Count() < n {
		card := d.DealOne()
		if card == 0 {
			return dealt, false
		}
		if exclude.Has(card) {
			continue
		}
		dealt.Add(card)
	}
	return dealt, true
}
