package game

// Street represents the betting round within a hand.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action is a player action. Bet and Raise carry an amount; the rest
// have no payload.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// ParseAction parses an action name as it appears on the wire.
func ParseAction(s string) (Action, bool) {
	for a := Fold; a <= AllIn; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return 0, false
}

// BettingRound holds the per-street betting state.
//
// Acted tracks whether each seat has acted since the last full bet or
// raise. A full raise clears it so action reopens; a short all-in does
// not, which is what prevents players who already faced a full bet from
// re-raising.
type BettingRound struct {
	CurrentBet int   // Highest total bet this street
	MinRaise   int   // Minimum raise increment (last full raise, or the big blind)
	LastRaiser int   // Seat of the last full bet/raise, -1 if none
	BBActed    bool  // Big blind has used its preflop option
	Acted      []bool
	bigBlind   int
}

// NewBettingRound creates betting state for a street.
func NewBettingRound(numSeats, bigBlind int) *BettingRound {
	return &BettingRound{
		MinRaise:   bigBlind,
		LastRaiser: -1,
		Acted:      make([]bool, numSeats),
		bigBlind:   bigBlind,
	}
}

// ResetForStreet clears per-street state for the next community round.
func (br *BettingRound) ResetForStreet() {
	br.CurrentBet = 0
	br.MinRaise = br.bigBlind
	br.LastRaiser = -1
	for i := range br.Acted {
		br.Acted[i] = false
	}
}

// reopen registers a full bet or raise: every other seat gets to act
// again.
func (br *BettingRound) reopen(seat, increment, newBet int) {
	br.MinRaise = increment
	br.CurrentBet = newBet
	br.LastRaiser = seat
	for i := range br.Acted {
		br.Acted[i] = false
	}
	br.Acted[seat] = true
}

// IsComplete reports whether the street's betting has finished: every
// seat that can still act has matched the current bet and acted since
// the last full raise, and the big blind has had its preflop option.
func (br *BettingRound) IsComplete(players []*Player, street Street, bbSeat int) bool {
	active := 0
	for _, p := range players {
		if p.CanAct() {
			active++
		}
	}

	// With at most one seat able to act there is no betting to be had;
	// the street ends as soon as that seat has matched the bet.
	if active <= 1 {
		for _, p := range players {
			if p.CanAct() && p.Bet != br.CurrentBet {
				return false
			}
		}
		return true
	}

	for i, p := range players {
		if p.Folded || p.AllIn {
			continue
		}
		if p.Bet != br.CurrentBet || !br.Acted[i] {
			return false
		}
	}

	if street == Preflop && br.LastRaiser == -1 {
		bb := players[bbSeat]
		if !bb.Folded && !bb.AllIn && !br.BBActed {
			return false
		}
	}

	return true
}
