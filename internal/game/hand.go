package game

import (
	"fmt"

	"github.com/cardfelt/holdem/poker"
)

// HandState is the state of a single hand from deal to settlement. All
// mutation goes through ProcessAction; a rejected action leaves the
// state untouched.
type HandState struct {
	Players      []*Player
	Button       int
	Street       Street
	Board        poker.Hand
	PotManager   *PotManager
	ActivePlayer int // Seat to act, -1 when no voluntary action remains
	Deck         *poker.Deck
	Betting      *BettingRound

	smallBlind int
	bigBlind   int
	settled    bool
}

// SmallBlindSeat returns the seat posting the small blind. Heads-up the
// button posts it.
func (h *HandState) SmallBlindSeat() int {
	if len(h.Players) == 2 {
		return h.Button
	}
	return (h.Button + 1) % len(h.Players)
}

// BigBlindSeat returns the seat posting the big blind.
func (h *HandState) BigBlindSeat() int {
	if len(h.Players) == 2 {
		return (h.Button + 1) % len(h.Players)
	}
	return (h.Button + 2) % len(h.Players)
}

func (h *HandState) postBlinds() {
	sb := h.Players[h.SmallBlindSeat()]
	bb := h.Players[h.BigBlindSeat()]

	post := func(p *Player, blind int) {
		wager := min(blind, p.Chips)
		p.Bet = wager
		p.TotalBet = wager
		p.Chips -= wager
		if p.Chips == 0 {
			p.AllIn = true
		}
	}
	post(sb, h.smallBlind)
	post(bb, h.bigBlind)

	h.Betting.CurrentBet = h.bigBlind
}

func (h *HandState) dealHoleCards() {
	for _, p := range h.Players {
		p.HoleCards = poker.NewHand(h.Deck.Deal(2)...)
	}
}

// ValidActions returns the legal action set for the seat currently to
// act, with amount bounds for bet and raise.
func (h *HandState) ValidActions() []ValidAction {
	if h.ActivePlayer < 0 || h.IsComplete() {
		return nil
	}

	p := h.Players[h.ActivePlayer]
	br := h.Betting
	toCall := br.CurrentBet - p.Bet
	allInTotal := p.Bet + p.Chips

	actions := []ValidAction{{Action: Fold}}

	if toCall <= 0 {
		actions = append(actions, ValidAction{Action: Check})
		if br.CurrentBet == 0 {
			if p.Chips >= br.MinRaise {
				actions = append(actions, ValidAction{Action: Bet, MinAmount: br.MinRaise, MaxAmount: allInTotal})
			} else {
				actions = append(actions, ValidAction{Action: AllIn, MinAmount: allInTotal, MaxAmount: allInTotal})
			}
		} else if !br.Acted[h.ActivePlayer] {
			// Big blind option: current bet equals the blind already posted.
			minTo := br.CurrentBet + br.MinRaise
			if allInTotal >= minTo {
				actions = append(actions, ValidAction{Action: Raise, MinAmount: minTo, MaxAmount: allInTotal})
			} else if p.Chips > 0 {
				actions = append(actions, ValidAction{Action: AllIn, MinAmount: allInTotal, MaxAmount: allInTotal})
			}
		}
		return actions
	}

	if toCall >= p.Chips {
		actions = append(actions, ValidAction{Action: AllIn, MinAmount: allInTotal, MaxAmount: allInTotal})
		return actions
	}

	actions = append(actions, ValidAction{Action: Call, MinAmount: br.CurrentBet, MaxAmount: br.CurrentBet})

	// A seat that already acted since the last full raise (a short
	// all-in raised the bet since) may only call or fold.
	if !br.Acted[h.ActivePlayer] {
		minTo := br.CurrentBet + br.MinRaise
		if allInTotal >= minTo {
			actions = append(actions, ValidAction{Action: Raise, MinAmount: minTo, MaxAmount: allInTotal})
		} else {
			actions = append(actions, ValidAction{Action: AllIn, MinAmount: allInTotal, MaxAmount: allInTotal})
		}
	}

	return actions
}

// ProcessAction validates and applies one action for the given seat.
// Validation is fully checked before any mutation, so an error means
// nothing changed. Amount is the seat's total bet this street for Bet
// and Raise and ignored otherwise.
func (h *HandState) ProcessAction(seat int, action Action, amount int) error {
	if h.IsComplete() {
		return ErrHandComplete
	}
	if seat < 0 || seat >= len(h.Players) {
		return ErrNoSuchSeat
	}
	if h.Players[seat].Folded {
		return ErrSeatFolded
	}
	if seat != h.ActivePlayer {
		return ErrNotYourTurn
	}

	p := h.Players[seat]
	br := h.Betting
	toCall := br.CurrentBet - p.Bet
	allInTotal := p.Bet + p.Chips

	switch action {
	case Fold:
		// Always legal for the acting seat.

	case Check:
		if toCall > 0 {
			return fmt.Errorf("%w: %d to call", ErrCannotCheck, toCall)
		}

	case Call:
		if toCall <= 0 {
			return ErrNothingToCall
		}

	case Bet:
		if br.CurrentBet != 0 {
			return ErrBetOutstanding
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if amount > allInTotal {
			return fmt.Errorf("%w: bet %d with stack %d", ErrInsufficient, amount, p.Chips)
		}
		if amount < br.MinRaise && amount < allInTotal {
			return fmt.Errorf("%w: minimum %d", ErrBetTooSmall, br.MinRaise)
		}

	case Raise:
		if br.CurrentBet == 0 {
			return ErrNoBetToRaise
		}
		if br.Acted[seat] {
			return ErrRaiseNotAllowed
		}
		if amount <= br.CurrentBet {
			return ErrInvalidAmount
		}
		if amount > allInTotal {
			return fmt.Errorf("%w: raise to %d with stack %d", ErrInsufficient, amount, p.Chips)
		}
		if amount-br.CurrentBet < br.MinRaise && amount < allInTotal {
			return fmt.Errorf("%w: minimum raise to %d", ErrRaiseTooSmall, br.CurrentBet+br.MinRaise)
		}

	case AllIn:
		if p.Chips <= 0 {
			return ErrSeatAllIn
		}

	default:
		return fmt.Errorf("%w: unknown action %d", ErrInvalidAmount, action)
	}

	// Validation passed: apply.
	if h.Street == Preflop && seat == h.BigBlindSeat() {
		br.BBActed = true
	}

	switch action {
	case Fold:
		p.Folded = true
		br.Acted[seat] = true

	case Check:
		br.Acted[seat] = true

	case Call:
		wager := min(toCall, p.Chips)
		p.Chips -= wager
		p.Bet += wager
		p.TotalBet += wager
		if p.Chips == 0 {
			p.AllIn = true
		}
		br.Acted[seat] = true

	case Bet, Raise:
		h.applyWager(seat, amount)

	case AllIn:
		h.applyWager(seat, allInTotal)
	}

	h.ActivePlayer = h.nextToAct(seat + 1)
	if h.unfoldedCount() <= 1 {
		// Everyone else folded: sweep the street's bets and stop.
		h.PotManager.CollectBets(h.Players)
		h.PotManager.Rebuild(h.Players)
		h.ActivePlayer = -1
		return nil
	}
	if h.ActivePlayer == -1 || br.IsComplete(h.Players, h.Street, h.BigBlindSeat()) {
		h.nextStreet()
	}

	return nil
}

// applyWager moves the seat's total street bet to newBet, reopening the
// action when the increment is a full raise.
func (h *HandState) applyWager(seat, newBet int) {
	p := h.Players[seat]
	br := h.Betting

	wager := newBet - p.Bet
	p.Chips -= wager
	p.Bet = newBet
	p.TotalBet += wager
	if p.Chips == 0 {
		p.AllIn = true
	}

	increment := newBet - br.CurrentBet
	if increment >= br.MinRaise {
		br.reopen(seat, increment, newBet)
	} else {
		// Short all-in: the bet rises but action does not reopen.
		if newBet > br.CurrentBet {
			br.CurrentBet = newBet
		}
		br.Acted[seat] = true
	}
}

// ForceFold folds a seat out of turn. Used when a seat is removed
// mid-hand; the engine never touches the seat's stack or cards.
func (h *HandState) ForceFold(seat int) {
	if seat < 0 || seat >= len(h.Players) || h.IsComplete() {
		return
	}
	p := h.Players[seat]
	if p.Folded {
		return
	}

	p.Folded = true
	h.Betting.Acted[seat] = true
	if h.Street == Preflop && seat == h.BigBlindSeat() {
		h.Betting.BBActed = true
	}
	if h.Betting.LastRaiser == seat {
		h.Betting.LastRaiser = -1
	}

	if h.unfoldedCount() <= 1 {
		h.PotManager.CollectBets(h.Players)
		h.PotManager.Rebuild(h.Players)
		h.ActivePlayer = -1
		return
	}
	if seat == h.ActivePlayer {
		h.ActivePlayer = h.nextToAct(seat + 1)
	}
	if h.ActivePlayer == -1 || h.Betting.IsComplete(h.Players, h.Street, h.BigBlindSeat()) {
		h.nextStreet()
	}
}

func (h *HandState) nextToAct(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if h.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

func (h *HandState) unfoldedCount() int {
	count := 0
	for _, p := range h.Players {
		if !p.Folded {
			count++
		}
	}
	return count
}

// nextStreet sweeps bets into the pot, advances the street, deals the
// community cards and hands action to the first live seat past the
// button. When every remaining seat is all-in it runs the board out to
// showdown.
func (h *HandState) nextStreet() {
	h.PotManager.CollectBets(h.Players)
	h.PotManager.Rebuild(h.Players)
	h.Betting.ResetForStreet()

	switch h.Street {
	case Preflop:
		h.Street = Flop
		h.Board = h.Board | poker.NewHand(h.Deck.Deal(3)...)
	case Flop:
		h.Street = Turn
		h.Board = h.Board.Add(h.Deck.DealOne())
	case Turn:
		h.Street = River
		h.Board = h.Board.Add(h.Deck.DealOne())
	case River:
		h.Street = Showdown
		h.ActivePlayer = -1
		return
	case Showdown:
		return
	}

	h.ActivePlayer = h.nextToAct((h.Button + 1) % len(h.Players))
	if h.ActivePlayer == -1 {
		h.nextStreet()
	}
}

// IsComplete reports whether the hand has reached a terminal state:
// showdown, or all but one seat folded.
func (h *HandState) IsComplete() bool {
	return h.Street == Showdown || h.unfoldedCount() <= 1
}

// PotResult records the settlement of one pot layer.
type PotResult struct {
	Amount   int
	Winners  []int
	Payouts  map[int]int
	Rank     poker.HandRank // Zero when won uncontested
	RankName string
}

// Settle resolves every pot and credits the winners' stacks. For each
// layer the strictly highest 7-card rank among eligible unfolded seats
// wins; exact ties split with odd chips going to the first winner
// clockwise from the button. Settle is idempotent: the pots are paid
// out once.
func (h *HandState) Settle() []PotResult {
	if !h.IsComplete() || h.settled {
		return nil
	}
	h.settled = true
	h.PotManager.CollectBets(h.Players)
	h.PotManager.Rebuild(h.Players)

	ranks := make(map[int]poker.HandRank)
	if h.unfoldedCount() > 1 {
		for _, p := range h.Players {
			if !p.Folded {
				ranks[p.Seat] = poker.Evaluate7Hand(p.HoleCards | h.Board)
			}
		}
	}

	results := make([]PotResult, 0, len(h.PotManager.Pots()))
	for _, pot := range h.PotManager.Pots() {
		if pot.Amount == 0 || len(pot.Eligible) == 0 {
			continue
		}

		result := PotResult{Amount: pot.Amount}
		if len(pot.Eligible) == 1 || len(ranks) == 0 {
			result.Winners = []int{pot.Eligible[0]}
			result.RankName = "uncontested"
		} else {
			best := poker.HandRank(0)
			for _, seat := range pot.Eligible {
				switch poker.CompareHands(ranks[seat], best) {
				case 1:
					best = ranks[seat]
					result.Winners = []int{seat}
				case 0:
					result.Winners = append(result.Winners, seat)
				}
			}
			result.Rank = best
			result.RankName = best.String()
		}

		result.Payouts = splitPot(pot.Amount, result.Winners, h.Button, len(h.Players))
		for seat, amount := range result.Payouts {
			h.Players[seat].Chips += amount
		}
		results = append(results, result)
	}

	return results
}

// TotalChips sums stacks, street bets and pots. It is invariant across
// every action within a hand.
func (h *HandState) TotalChips() int {
	total := h.PotManager.Total()
	for _, p := range h.Players {
		total += p.Chips + p.Bet
	}
	return total
}
