package poker

import (
	"fmt"
	"math/bits"
	"sort"
)

// HandRank is the strength of a 5-card poker hand as a dense ordinal in
// [1, 7462]. Higher values are stronger, equal values are exact ties.
// The range partitions into contiguous category sub-ranges sized by the
// number of distinct hands in each category.
type HandRank uint16

// HandCategory enumerates hand categories from weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Distinct hand counts per category. They sum to 7462.
const (
	highCardCount      = 1277 // C(13,5) minus the 10 straights
	onePairCount       = 2860 // 13 * C(12,3)
	twoPairCount       = 858  // C(13,2) * 11
	threeOfAKindCount  = 858  // 13 * C(12,2)
	straightCount      = 10
	flushCount         = 1277
	fullHouseCount     = 156 // 13 * 12
	fourOfAKindCount   = 156 // 13 * 12
	straightFlushCount = 10
)

// Category bases. A hand's rank is its base plus its ascending
// in-category detail index plus one, so the weakest high card is 1 and
// the royal flush is 7462.
const (
	baseHighCard      = 0
	baseOnePair       = baseHighCard + highCardCount
	baseTwoPair       = baseOnePair + onePairCount
	baseThreeOfAKind  = baseTwoPair + twoPairCount
	baseStraight      = baseThreeOfAKind + threeOfAKindCount
	baseFlush         = baseStraight + straightCount
	baseFullHouse     = baseFlush + flushCount
	baseFourOfAKind   = baseFullHouse + fullHouseCount
	baseStraightFlush = baseFourOfAKind + fourOfAKindCount

	// MaxHandRank is the strongest possible rank (royal flush).
	MaxHandRank = HandRank(baseStraightFlush + straightFlushCount)
)

// One-pair sub-ranks need a compression step: the weighted encoding of
// (pair, kicker1, kicker2, kicker3) over card values 2..14 is strength
// ordered but sparse, so it is re-indexed through a sorted table of the
// 2860 reachable encodings. The multipliers keep each digit's span
// below the next weight, which makes the encoding injective; the tests
// verify this by exhaustive enumeration rather than trusting the
// arithmetic.
const (
	pairMultiplier         = 1690
	firstKickerMultiplier  = 130
	secondKickerMultiplier = 10
	thirdKickerMultiplier  = 1

	// maxOnePairEncoded is the encoding of aces up with K-Q-J kickers.
	maxOnePairEncoded = 14*pairMultiplier + 13*firstKickerMultiplier + 12*secondKickerMultiplier + 11*thirdKickerMultiplier
)

// boundaries mark the exclusive upper rank bound per category in
// ascending strength order.
var categoryBoundaries = [...]HandRank{
	HandRank(baseOnePair),
	HandRank(baseTwoPair),
	HandRank(baseThreeOfAKind),
	HandRank(baseStraight),
	HandRank(baseFlush),
	HandRank(baseFullHouse),
	HandRank(baseFourOfAKind),
	HandRank(baseStraightFlush),
	MaxHandRank,
}

// Category returns the hand category the rank falls in.
func (hr HandRank) Category() HandCategory {
	for i, bound := range categoryBoundaries {
		if hr <= bound {
			return HandCategory(i)
		}
	}
	return StraightFlush
}

// String returns a human-readable description of the rank's category.
func (hr HandRank) String() string {
	return hr.Category().String()
}

func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Evaluate5 ranks exactly five distinct cards. Malformed input is a
// caller bug and panics.
func Evaluate5(cards []Card) HandRank {
	if len(cards) != 5 {
		panic(fmt.Sprintf("poker: Evaluate5 requires 5 cards, got %d", len(cards)))
	}
	h := NewHand(cards...)
	if h.CountCards() != 5 {
		panic(fmt.Sprintf("poker: duplicate cards in %v", cards))
	}
	return rank5(h)
}

// Evaluate7 ranks the best five-card hand from exactly seven distinct
// cards, taking the maximum over all 21 five-card subsets. Malformed
// input panics.
func Evaluate7(cards []Card) HandRank {
	if len(cards) != 7 {
		panic(fmt.Sprintf("poker: Evaluate7 requires 7 cards, got %d", len(cards)))
	}
	if NewHand(cards...).CountCards() != 7 {
		panic(fmt.Sprintf("poker: duplicate cards in %v", cards))
	}

	best := HandRank(0)
	var five [5]Card
	for _, subset := range fiveOfSeven {
		for i, idx := range subset {
			five[i] = cards[idx]
		}
		if r := rank5(NewHand(five[:]...)); r > best {
			best = r
		}
	}
	return best
}

// Evaluate7Hand ranks a 7-card hand held as a bitmask.
func Evaluate7Hand(h Hand) HandRank {
	if h.CountCards() != 7 {
		panic(fmt.Sprintf("poker: Evaluate7Hand requires 7 cards, got %d", h.CountCards()))
	}
	return Evaluate7(h.Cards())
}

// CompareHands returns 1 if a beats b, -1 if b beats a, 0 for an exact
// tie (split pot).
func CompareHands(a, b HandRank) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// rank5 is the unchecked closed-form evaluation of a 5-card hand.
func rank5(h Hand) HandRank {
	var rankMask uint16
	var counts [13]uint8
	flush := false
	for suit := uint8(0); suit < 4; suit++ {
		m := h.GetSuitMask(suit)
		if bits.OnesCount16(m) == 5 {
			flush = true
		}
		rankMask |= m
		for m != 0 {
			r := bits.TrailingZeros16(m)
			counts[r]++
			m &^= 1 << r
		}
	}

	if bits.OnesCount16(rankMask) == 5 {
		// No repeated ranks: straight flush, flush, straight or high card.
		high := straightHigh(rankMask)
		switch {
		case flush && high > 0:
			return HandRank(baseStraightFlush+straightDetail(high)) + 1
		case flush:
			return HandRank(baseFlush+fiveRankDetail(rankMask)) + 1
		case high > 0:
			return HandRank(baseStraight+straightDetail(high)) + 1
		default:
			return HandRank(baseHighCard+fiveRankDetail(rankMask)) + 1
		}
	}

	var quad, trip = -1, -1
	var pairs []int
	for r := 12; r >= 0; r-- {
		switch counts[r] {
		case 4:
			quad = r
		case 3:
			trip = r
		case 2:
			pairs = append(pairs, r) // descending
		}
	}

	switch {
	case quad >= 0:
		kicker := highestRank(rankMask &^ (1 << quad))
		detail := quad*12 + ordinalBelow(kicker, 1<<quad)
		return HandRank(baseFourOfAKind+detail) + 1

	case trip >= 0 && len(pairs) == 1:
		detail := trip*12 + ordinalBelow(pairs[0], 1<<trip)
		return HandRank(baseFullHouse+detail) + 1

	case trip >= 0:
		excl := uint16(1) << trip
		k := orderedKickers(rankMask&^excl, 2)
		o1 := ordinalBelow(k[0], excl)
		o2 := ordinalBelow(k[1], excl)
		detail := trip*66 + binom[o1][2] + binom[o2][1]
		return HandRank(baseThreeOfAKind+detail) + 1

	case len(pairs) == 2:
		hi, lo := pairs[0], pairs[1]
		excl := uint16(1)<<hi | uint16(1)<<lo
		kicker := highestRank(rankMask &^ excl)
		pairIdx := binom[hi][2] + binom[lo][1]
		detail := pairIdx*11 + ordinalBelow(kicker, excl)
		return HandRank(baseTwoPair+detail) + 1

	default:
		pair := pairs[0]
		k := orderedKickers(rankMask&^(1<<pair), 3)
		encoded := onePairEncoding(pair, k[0], k[1], k[2])
		detail := sort.SearchInts(onePairEncodings, encoded)
		return HandRank(baseOnePair+detail) + 1
	}
}

// onePairEncoding computes the intermediate strength-ordered encoding of
// a one-pair hand over card values 2..14.
func onePairEncoding(pair, k1, k2, k3 int) int {
	return (pair+2)*pairMultiplier +
		(k1+2)*firstKickerMultiplier +
		(k2+2)*secondKickerMultiplier +
		(k3+2)*thirdKickerMultiplier
}

// straightHigh returns the rank index of the straight's high card (3 for
// the wheel, where the five plays high), or 0 when the mask holds no
// straight.
func straightHigh(mask uint16) uint8 {
	const wheelMask = 0x100F // A-2-3-4-5
	mask &= 0x1FFF

	if mask&wheelMask == wheelMask {
		return 3
	}

	// Bitwise cascade identifies five consecutive ranks in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq == 0 {
		return 0
	}
	low := uint8(bits.Len16(seq) - 1)
	return low + 4
}

// straightDetail maps a straight's high rank index to its ascending
// detail: wheel first, ace-high last.
func straightDetail(high uint8) int {
	if high == 3 {
		return 0
	}
	return int(high) - 3
}

// fiveRankDetail indexes a 5-distinct-rank, no-straight mask among the
// 1277 such combinations in ascending strength order.
func fiveRankDetail(rankMask uint16) int {
	idx := comboIndex5(rankMask)
	adjust := 0
	for _, s := range straightComboIdxs {
		if s < idx {
			adjust++
		} else {
			break
		}
	}
	return idx - adjust
}

// comboIndex5 is the combinatorial-number-system index of a 5-bit rank
// mask among all C(13,5) combinations. Colex order equals comparing the
// sorted ranks highest-first, which is high-card strength order.
func comboIndex5(rankMask uint16) int {
	idx, k := 0, 1
	for m := rankMask; m != 0; k++ {
		r := bits.TrailingZeros16(m)
		idx += binom[r][k]
		m &^= 1 << r
	}
	return idx
}

// highestRank returns the highest rank index present in the mask, or -1
// when empty.
func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// ordinalBelow counts ranks below r once the excluded ranks are removed,
// i.e. r's ordinal within the remaining rank alphabet.
func ordinalBelow(r int, excl uint16) int {
	below := (uint16(1)<<r - 1) &^ excl
	return bits.OnesCount16(below)
}

// orderedKickers returns the top n ranks of the mask in descending order.
func orderedKickers(mask uint16, n int) []int {
	kickers := make([]int, 0, n)
	for len(kickers) < n && mask != 0 {
		top := bits.Len16(mask) - 1
		kickers = append(kickers, top)
		mask &^= 1 << top
	}
	return kickers
}

// binom[n][k] = C(n, k) for the small values the detail indices need.
var binom = func() [14][6]int {
	var c [14][6]int
	for n := 0; n < 14; n++ {
		c[n][0] = 1
		for k := 1; k < 6 && k <= n; k++ {
			c[n][k] = c[n-1][k-1] + c[n-1][k]
		}
	}
	return c
}()

// straightComboIdxs holds the comboIndex5 positions of the ten straight
// rank masks, ascending, so flush and high-card details can skip them.
var straightComboIdxs = func() [10]int {
	var arr [10]int
	arr[0] = comboIndex5(0x100F) // wheel
	i := 1
	for high := 4; high <= 12; high++ {
		var mask uint16
		for r := high - 4; r <= high; r++ {
			mask |= 1 << r
		}
		arr[i] = comboIndex5(mask)
		i++
	}
	sort.Ints(arr[:])
	return arr
}()

// onePairEncodings is the sorted table of all 2860 reachable one-pair
// encodings; a hand's compressed sub-rank is its position in the table.
var onePairEncodings = func() []int {
	encodings := make([]int, 0, onePairCount)
	for pair := 0; pair < 13; pair++ {
		for k1 := 2; k1 < 13; k1++ {
			if k1 == pair {
				continue
			}
			for k2 := 1; k2 < k1; k2++ {
				if k2 == pair {
					continue
				}
				for k3 := 0; k3 < k2; k3++ {
					if k3 == pair {
						continue
					}
					encodings = append(encodings, onePairEncoding(pair, k1, k2, k3))
				}
			}
		}
	}
	sort.Ints(encodings)
	return encodings
}()

// fiveOfSeven enumerates the C(7,5)=21 five-card subsets of seven cards.
var fiveOfSeven = func() [21][5]int {
	var subsets [21][5]int
	i := 0
	for a := 0; a < 3; a++ {
		for b := a + 1; b < 4; b++ {
			for c := b + 1; c < 5; c++ {
				for d := c + 1; d < 6; d++ {
					for e := d + 1; e < 7; e++ {
						subsets[i] = [5]int{a, b, c, d, e}
						i++
					}
				}
			}
		}
	}
	return subsets
}()
