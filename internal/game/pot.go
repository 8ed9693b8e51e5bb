package game

import "sort"

// Pot is a pot layer: the main pot or one side pot. Eligible holds the
// seats that can win it.
type Pot struct {
	Amount       int
	Eligible     []int
	MaxPerPlayer int // Contribution cap that created this layer, 0 for the top layer
}

// PotManager tracks the main pot and side pots across a hand.
type PotManager struct {
	pots []Pot
}

// NewPotManager creates a pot manager with an empty main pot.
func NewPotManager(players []*Player) *PotManager {
	return &PotManager{
		pots: []Pot{{Eligible: eligibleSeats(players)}},
	}
}

func eligibleSeats(players []*Player) []int {
	eligible := make([]int, 0, len(players))
	for _, p := range players {
		if !p.Folded {
			eligible = append(eligible, p.Seat)
		}
	}
	return eligible
}

// Total returns the chips across all pots.
func (pm *PotManager) Total() int {
	total := 0
	for _, pot := range pm.pots {
		total += pot.Amount
	}
	return total
}

// CollectBets sweeps the street's bets into the pot.
func (pm *PotManager) CollectBets(players []*Player) {
	for _, p := range players {
		if p.Bet > 0 {
			pm.pots[0].Amount += p.Bet
			p.Bet = 0
		}
	}
}

// Rebuild recomputes pot layers from each seat's total contribution.
// Layers are built iteratively over the sorted distinct all-in levels:
// each level takes every seat's contribution up to that level, eligible
// to the unfolded seats that reached it; the remainder above the top
// level forms the final layer. Folded seats' chips stay in the layers
// they paid into but the seats are never eligible.
func (pm *PotManager) Rebuild(players []*Player) {
	levels := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if p.AllIn && p.TotalBet > 0 && !seen[p.TotalBet] {
			seen[p.TotalBet] = true
			levels = append(levels, p.TotalBet)
		}
	}

	if len(levels) == 0 {
		// No all-ins: a single pot of all contributions.
		total := 0
		for _, p := range players {
			total += p.TotalBet
		}
		pm.pots = []Pot{{Amount: total, Eligible: eligibleSeats(players)}}
		return
	}

	sort.Ints(levels)

	pm.pots = pm.pots[:0]
	prev := 0
	for _, level := range levels {
		pot := Pot{MaxPerPlayer: level}
		for _, p := range players {
			if !p.Folded && p.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
			contribution := min(p.TotalBet, level) - prev
			if contribution > 0 {
				pot.Amount += contribution
			}
		}
		if pot.Amount > 0 {
			pm.pots = append(pm.pots, pot)
		}
		prev = level
	}

	top := Pot{}
	for _, p := range players {
		if p.TotalBet > prev {
			top.Amount += p.TotalBet - prev
			if !p.Folded {
				top.Eligible = append(top.Eligible, p.Seat)
			}
		}
	}
	if top.Amount > 0 {
		pm.pots = append(pm.pots, top)
	}

	pm.mergeDeadLayers(players)
}

// mergeDeadLayers folds any layer with no eligible seats (possible when
// a seat is force-folded after contributing past every all-in level)
// into its neighbour so no chips are stranded.
func (pm *PotManager) mergeDeadLayers(players []*Player) {
	kept := pm.pots[:0]
	carry := 0
	for _, pot := range pm.pots {
		if len(pot.Eligible) == 0 {
			carry += pot.Amount
			continue
		}
		pot.Amount += carry
		carry = 0
		kept = append(kept, pot)
	}
	if carry > 0 {
		if len(kept) > 0 {
			kept[len(kept)-1].Amount += carry
		} else {
			// Nobody left unfolded at all; keep a pot so the chips stay
			// accounted for.
			kept = append(kept, Pot{Amount: carry, Eligible: eligibleSeats(players)})
		}
	}
	pm.pots = kept
}

// Pots returns the current pot layers.
func (pm *PotManager) Pots() []Pot {
	return pm.pots
}

// PotsWithUncollected returns the layers with the street's uncollected
// bets added to the layer still being bet into.
func (pm *PotManager) PotsWithUncollected(players []*Player) []Pot {
	uncollected := 0
	for _, p := range players {
		uncollected += p.Bet
	}
	if uncollected == 0 {
		return pm.pots
	}

	result := make([]Pot, len(pm.pots))
	copy(result, pm.pots)
	result[len(result)-1].Amount += uncollected
	return result
}

// splitPot divides a pot evenly among winners, with any remainder going
// one chip at a time to the winners closest clockwise from the button.
// Returns seat -> amount.
func splitPot(amount int, winners []int, button, numSeats int) map[int]int {
	share := amount / len(winners)
	remainder := amount % len(winners)

	ordered := make([]int, len(winners))
	copy(ordered, winners)
	sort.Slice(ordered, func(i, j int) bool {
		return clockwiseDistance(button, ordered[i], numSeats) < clockwiseDistance(button, ordered[j], numSeats)
	})

	payouts := make(map[int]int, len(ordered))
	for i, seat := range ordered {
		payouts[seat] = share
		if i < remainder {
			payouts[seat]++
		}
	}
	return payouts
}

// clockwiseDistance counts seats from the button to the target, so the
// small blind is distance 1.
func clockwiseDistance(button, seat, numSeats int) int {
	d := (seat - button) % numSeats
	if d <= 0 {
		d += numSeats
	}
	return d
}
