package game

import "testing"

func TestParseAction(t *testing.T) {
	t.Parallel()

	for a := Fold; a <= AllIn; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("limp"); ok {
		t.Errorf("ParseAction should reject unknown actions")
	}
}

func TestReopenClearsActed(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(3, 2)
	br.Acted[0] = true
	br.Acted[1] = true

	br.reopen(2, 10, 12)

	if br.CurrentBet != 12 || br.MinRaise != 10 || br.LastRaiser != 2 {
		t.Errorf("reopen state: bet=%d minRaise=%d lastRaiser=%d", br.CurrentBet, br.MinRaise, br.LastRaiser)
	}
	if br.Acted[0] || br.Acted[1] {
		t.Errorf("reopen must clear other seats' acted flags")
	}
	if !br.Acted[2] {
		t.Errorf("raiser counts as acted")
	}
}

func TestResetForStreet(t *testing.T) {
	t.Parallel()

	br := NewBettingRound(2, 2)
	br.CurrentBet = 50
	br.MinRaise = 48
	br.LastRaiser = 1
	br.Acted[0] = true

	br.ResetForStreet()

	if br.CurrentBet != 0 {
		t.Errorf("CurrentBet = %d, want 0", br.CurrentBet)
	}
	if br.MinRaise != 2 {
		t.Errorf("MinRaise = %d, want big blind", br.MinRaise)
	}
	if br.LastRaiser != -1 || br.Acted[0] {
		t.Errorf("per-street state not cleared")
	}
}

func TestIsCompleteRequiresMatchedBets(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Seat: 0, Chips: 100, Bet: 10},
		{Seat: 1, Chips: 100, Bet: 5},
	}
	br := NewBettingRound(2, 2)
	br.CurrentBet = 10
	br.Acted[0] = true
	br.Acted[1] = true

	if br.IsComplete(players, Flop, 1) {
		t.Errorf("street cannot complete with unmatched bets")
	}

	players[1].Bet = 10
	if !br.IsComplete(players, Flop, 1) {
		t.Errorf("street should complete once bets match and all acted")
	}
}

func TestIsCompletePreflopBigBlindOption(t *testing.T) {
	t.Parallel()

	// Everyone limps to the big blind: bets match but the BB still has
	// its option.
	players := []*Player{
		{Seat: 0, Chips: 98, Bet: 2},
		{Seat: 1, Chips: 98, Bet: 2},
		{Seat: 2, Chips: 98, Bet: 2},
	}
	br := NewBettingRound(3, 2)
	br.CurrentBet = 2
	for i := range br.Acted {
		br.Acted[i] = true
	}

	if br.IsComplete(players, Preflop, 2) {
		t.Errorf("preflop cannot complete before the big blind's option")
	}

	br.BBActed = true
	if !br.IsComplete(players, Preflop, 2) {
		t.Errorf("preflop should complete after the big blind acts")
	}
}

func TestIsCompleteAllInRunout(t *testing.T) {
	t.Parallel()

	// One live seat against an all-in: no betting possible once the live
	// seat has matched.
	players := []*Player{
		{Seat: 0, Chips: 0, Bet: 50, AllIn: true},
		{Seat: 1, Chips: 50, Bet: 50},
	}
	br := NewBettingRound(2, 2)
	br.CurrentBet = 50

	if !br.IsComplete(players, Flop, 1) {
		t.Errorf("street with one live matched seat should be complete")
	}

	players[1].Bet = 30
	if br.IsComplete(players, Flop, 1) {
		t.Errorf("live seat still owes chips")
	}
}
