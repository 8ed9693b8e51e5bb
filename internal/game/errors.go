package game

import "errors"

// Rejection errors for illegal actions. The state machine checks every
// condition before mutating anything, so a rejected action leaves the
// hand exactly as it was and the caller may resubmit.
var (
	ErrHandComplete    = errors.New("hand is complete")
	ErrNotYourTurn     = errors.New("not this seat's turn to act")
	ErrSeatFolded      = errors.New("seat has folded")
	ErrSeatAllIn       = errors.New("seat is all-in")
	ErrCannotCheck     = errors.New("cannot check facing a bet")
	ErrNothingToCall   = errors.New("nothing to call")
	ErrBetOutstanding  = errors.New("cannot bet, a bet is outstanding")
	ErrNoBetToRaise    = errors.New("cannot raise, no bet to raise")
	ErrRaiseTooSmall   = errors.New("raise below minimum")
	ErrBetTooSmall     = errors.New("bet below minimum")
	ErrRaiseNotAllowed = errors.New("raising is not reopened for this seat")
	ErrInsufficient    = errors.New("insufficient chips")
	ErrInvalidAmount   = errors.New("invalid amount")

	// Session-level rejections, checked before a hand starts.
	ErrTooFewSeats   = errors.New("need at least 2 seated players with chips")
	ErrHandInFlight  = errors.New("a hand is already in progress")
	ErrNoHand        = errors.New("no hand in progress")
	ErrSeatTaken     = errors.New("seat is taken")
	ErrNoSuchSeat    = errors.New("no such seat")
	ErrBlindTooLarge = errors.New("blind exceeds a seated stack")
)
