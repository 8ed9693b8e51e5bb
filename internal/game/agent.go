package game

import (
	"github.com/cardfelt/holdem/poker"
)

// Decision is an agent's chosen action. Amount is the total street bet
// for Bet and Raise. Reasoning is free text for logs and hand reviews.
type Decision struct {
	Action    Action
	Amount    int
	Reasoning string
}

// ValidAction is one legal action with its amount bounds. Amounts are
// totals for the street: MinAmount is the smallest legal bet/raise-to,
// MaxAmount is all-in.
type ValidAction struct {
	Action    Action
	MinAmount int
	MaxAmount int
}

// SeatView is the public state of one seat, with hole cards populated
// only for the viewing seat until showdown.
type SeatView struct {
	Seat      int          `json:"seat"`
	Name      string       `json:"name"`
	Chips     int          `json:"chips"`
	Bet       int          `json:"bet"`
	TotalBet  int          `json:"totalBet"`
	Folded    bool         `json:"folded"`
	AllIn     bool         `json:"allIn"`
	HoleCards []poker.Card `json:"holeCards,omitempty"`
}

// TableView is the immutable state handed to an agent when it must act.
type TableView struct {
	Street       Street        `json:"street"`
	Board        []poker.Card  `json:"board"`
	Pot          int           `json:"pot"`
	CurrentBet   int           `json:"currentBet"`
	SmallBlind   int           `json:"smallBlind"`
	BigBlind     int           `json:"bigBlind"`
	Button       int           `json:"button"`
	ActiveSeat   int           `json:"activeSeat"`
	Seats        []SeatView    `json:"seats"`
	ValidActions []ValidAction `json:"validActions,omitempty"`
}

// PotOdds returns the ratio of the call price to the pot after calling,
// for the viewing seat. Zero when there is nothing to call.
func (tv TableView) PotOdds() float64 {
	if tv.ActiveSeat < 0 || tv.ActiveSeat >= len(tv.Seats) {
		return 0
	}
	toCall := tv.CurrentBet - tv.Seats[tv.ActiveSeat].Bet
	if toCall <= 0 {
		return 0
	}
	return float64(toCall) / float64(tv.Pot+toCall)
}

// Agent is anything that can decide an action from an immutable view
// and the legal action set: a human at a websocket, or a bot. Agents
// never mutate game state.
type Agent interface {
	MakeDecision(view TableView, validActions []ValidAction) Decision
}

// View builds the table view for one observing seat. Hole cards of
// other seats are omitted; at showdown all unfolded hands are open.
func (h *HandState) View(forSeat int) TableView {
	showdown := h.Street == Showdown && h.unfoldedCount() > 1

	seats := make([]SeatView, len(h.Players))
	for i, p := range h.Players {
		seats[i] = SeatView{
			Seat:     p.Seat,
			Name:     p.Name,
			Chips:    p.Chips,
			Bet:      p.Bet,
			TotalBet: p.TotalBet,
			Folded:   p.Folded,
			AllIn:    p.AllIn,
		}
		if i == forSeat || (showdown && !p.Folded) {
			seats[i].HoleCards = p.HoleCards.Cards()
		}
	}

	pot := 0
	for _, p := range h.PotManager.PotsWithUncollected(h.Players) {
		pot += p.Amount
	}

	view := TableView{
		Street:     h.Street,
		Board:      h.Board.Cards(),
		Pot:        pot,
		CurrentBet: h.Betting.CurrentBet,
		SmallBlind: h.smallBlind,
		BigBlind:   h.bigBlind,
		Button:     h.Button,
		ActiveSeat: h.ActivePlayer,
		Seats:      seats,
	}
	if forSeat == h.ActivePlayer {
		view.ValidActions = h.ValidActions()
	}
	return view
}
