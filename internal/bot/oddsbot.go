package bot

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cardfelt/holdem/internal/game"
	"github.com/cardfelt/holdem/poker"
)

// OddsBot compares the price it is being offered against a crude
// estimate of hand strength: preflop percentile rankings, made-hand
// category postflop. It is a decision stub, not a strategy; its job is
// to exercise the legal action set and pot odds plumbing end to end.
type OddsBot struct {
	logger *log.Logger
}

// NewOddsBot creates a new OddsBot instance.
func NewOddsBot(logger *log.Logger) *OddsBot {
	return &OddsBot{logger: logger}
}

func (o *OddsBot) MakeDecision(view game.TableView, validActions []game.ValidAction) game.Decision {
	hole := o.holeCards(view)
	if len(hole) != 2 {
		return findAction(game.Check, validActions, "odds-bot has no cards")
	}

	strength := o.strength(view, hole)
	odds := view.PotOdds()

	// Free card: check, or bet when clearly ahead of a random hand.
	if odds == 0 {
		if strength > 0.8 && hasAction(game.Bet, validActions) {
			return findAction(game.Bet, validActions, fmt.Sprintf("odds-bot value bet, strength %.2f", strength))
		}
		return findAction(game.Check, validActions, "odds-bot checking")
	}

	// Facing a bet: continue when estimated equity beats the price.
	if strength >= odds {
		if strength > 0.9 && hasAction(game.Raise, validActions) {
			return findAction(game.Raise, validActions, fmt.Sprintf("odds-bot raising, strength %.2f vs odds %.2f", strength, odds))
		}
		if hasAction(game.Call, validActions) {
			return findAction(game.Call, validActions, fmt.Sprintf("odds-bot calling, strength %.2f vs odds %.2f", strength, odds))
		}
		if hasAction(game.AllIn, validActions) {
			return findAction(game.AllIn, validActions, fmt.Sprintf("odds-bot all-in, strength %.2f vs odds %.2f", strength, odds))
		}
	}

	return findAction(game.Fold, validActions, fmt.Sprintf("odds-bot folding, strength %.2f vs odds %.2f", strength, odds))
}

func (o *OddsBot) holeCards(view game.TableView) []poker.Card {
	if view.ActiveSeat < 0 {
		return nil
	}
	for _, seat := range view.Seats {
		if seat.Seat == view.ActiveSeat {
			return seat.HoleCards
		}
	}
	return nil
}

// strength estimates equity in [0,1]. Preflop it is the percentile of
// the starting hand; postflop the made-hand category scaled against a
// straight, with the preflop percentile as a floor for unimproved
// hands.
func (o *OddsBot) strength(view game.TableView, hole []poker.Card) float64 {
	percentile := poker.HandPercentile(hole[0], hole[1])
	if len(view.Board) < 3 {
		return percentile
	}

	cards := append([]poker.Card{hole[0], hole[1]}, view.Board...)
	made := float64(bestRank(cards).Category()) / float64(poker.Straight)
	if made > 1 {
		made = 1
	}
	if made < percentile {
		made = percentile
	}
	return made
}

// bestRank evaluates the best 5-card hand from 5, 6 or 7 cards.
func bestRank(cards []poker.Card) poker.HandRank {
	switch len(cards) {
	case 5:
		return poker.Evaluate5(cards)
	case 7:
		return poker.Evaluate7(cards)
	}

	// Six cards on the turn: best of dropping each card in turn.
	best := poker.HandRank(0)
	five := make([]poker.Card, 5)
	for drop := range cards {
		five = five[:0]
		for i, c := range cards {
			if i != drop {
				five = append(five, c)
			}
		}
		if r := poker.Evaluate5(five); poker.CompareHands(r, best) == 1 {
			best = r
		}
	}
	return best
}
