package poker

// HoleCardCategory is a coarse preflop strength bucket.
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
)

// HandLabel formats hole cards as a starting-hand label ("AKs", "72o",
// "QQ"): ranks high-first, with a suitedness marker for non-pairs. This
// is the label format the range display consumes.
func HandLabel(card1, card2 Card) string {
	r1, r2 := card1.Rank(), card2.Rank()
	if r2 > r1 {
		r1, r2 = r2, r1
	}

	if r1 == r2 {
		return string(rankChars[r1]) + string(rankChars[r2])
	}

	marker := "o"
	if card1.Suit() == card2.Suit() {
		marker = "s"
	}
	return string(rankChars[r1]) + string(rankChars[r2]) + marker
}

// CategorizeHoleCards buckets hole cards preflop. Premium is JJ+ and AK,
// Strong is TT and AQ/AJ, Medium is 77-99 and suited broadway, Weak is
// small pairs and suited connectors, everything else is Trash.
func CategorizeHoleCards(card1, card2 Card) HoleCardCategory {
	big, small := card1.RankValue(), card2.RankValue()
	if small > big {
		small, big = big, small
	}
	suited := card1.Suit() == card2.Suit()
	isPair := small == big

	switch {
	case isPair && small >= 11:
		return CategoryPremium
	case big == 14 && small == 13:
		return CategoryPremium
	case isPair && small == 10:
		return CategoryStrong
	case big == 14 && small >= 11:
		return CategoryStrong
	case isPair && small >= 7:
		return CategoryMedium
	case suited && small >= 10:
		return CategoryMedium
	case isPair:
		return CategoryWeak
	case suited && big-small <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}
