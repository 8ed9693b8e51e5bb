package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Rank indices, deuce low through ace high.
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

// Suit indices.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

var (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Card is a single playing card represented as a one-bit mask within a
// 52-bit hand. Bit position is suit*13 + rank, so cards OR together into
// a Hand and a suit's ranks can be extracted as a contiguous 13-bit run.
type Card uint64

// NewCard creates a card from a rank (0-12, deuce through ace) and a
// suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

// Rank returns the card's rank index (0-12).
func (c Card) Rank() uint8 {
	return uint8(bits.TrailingZeros64(uint64(c)) % 13)
}

// Suit returns the card's suit index (0-3).
func (c Card) Suit() uint8 {
	return uint8(bits.TrailingZeros64(uint64(c)) / 13)
}

// RankValue returns the card's poker value, 2 for a deuce through 14 for
// an ace.
func (c Card) RankValue() int {
	return int(c.Rank()) + 2
}

// String formats the card in standard notation, e.g. "As" or "2c".
func (c Card) String() string {
	if bits.OnesCount64(uint64(c)) != 1 || bits.TrailingZeros64(uint64(c)) >= 52 {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// ParseCard parses standard two-character notation ("Kd", "Tc").
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q: must be two characters", s)
	}
	rank := strings.IndexByte(rankChars, toUpperByte(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid card %q: unknown rank %q", s, s[0])
	}
	suit := strings.IndexByte(suitChars, toLowerByte(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid card %q: unknown suit %q", s, s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// MustParseCards parses concatenated card notation ("AsKsQs") and panics
// on malformed input. Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		panic(fmt.Sprintf("invalid card string %q", s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

// Hand is a set of cards as a 52-bit mask.
type Hand uint64

// NewHand combines cards into a hand.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// Add returns the hand with the card included.
func (h Hand) Add(c Card) Hand {
	return h | Hand(c)
}

// Contains reports whether the card is in the hand.
func (h Hand) Contains(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((uint64(h) >> (uint(suit) * 13)) & 0x1FFF)
}

// Cards unpacks the hand into individual cards, lowest bit first.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	m := uint64(h)
	for m != 0 {
		low := m & -m
		cards = append(cards, Card(low))
		m &^= low
	}
	return cards
}

// String formats the hand as concatenated card notation.
func (h Hand) String() string {
	var sb strings.Builder
	for _, c := range h.Cards() {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func toLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
