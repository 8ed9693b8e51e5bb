package poker

import (
	"math/rand"
)

// Deck is a standard 52-card deck dealt from the front. A deck is owned
// by exactly one hand: it is created shuffled, cards are removed as
// dealt, and it is discarded when the hand ends.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck. The RNG is required so randomness is
// injected by the caller rather than drawn from a global source.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: deck requires an rng")
	}

	d := &Deck{rng: rng}
	i := 0
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	d.Shuffle()
	return d
}

// NewStackedDeck creates an unshuffled deck that deals the given cards
// first, with the rest of the 52 following in index order. For
// deterministic tests and fixtures; a stacked deck cannot be shuffled.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{}
	used := NewHand(cards...)
	if used.CountCards() != len(cards) {
		panic("poker: duplicate cards in stacked deck")
	}

	i := copy(d.cards[:], cards)
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			c := NewCard(rank, suit)
			if !used.Contains(c) {
				d.cards[i] = c
				i++
			}
		}
	}
	return d
}

// Shuffle reshuffles the full deck using Fisher-Yates.
func (d *Deck) Shuffle() {
	if d.rng == nil {
		panic("poker: stacked deck cannot be shuffled")
	}
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next n cards, or nil if fewer remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne removes and returns the next card, or 0 if the deck is empty.
func (d *Deck) DealOne() Card {
	if d.next >= len(d.cards) {
		return 0
	}
	card := d.cards[d.next]
	d.next++
	return card
}

// CardsRemaining returns the number of undealt cards.
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
