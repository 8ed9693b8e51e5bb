package game

import (
	"github.com/cardfelt/holdem/poker"
)

// Player is one seat's state during a hand. The stack persists across
// hands; everything else resets when a new hand is dealt.
type Player struct {
	Seat      int
	Name      string
	Chips     int
	HoleCards poker.Hand
	Folded    bool
	AllIn     bool
	Bet       int // Chips wagered this street
	TotalBet  int // Chips wagered this hand
}

// CanAct reports whether the seat can still take voluntary actions.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// InHand reports whether the seat still contests a pot.
func (p *Player) InHand() bool {
	return !p.Folded
}
