package bot

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/cardfelt/holdem/internal/game"
)

// RandBot makes uniform random legal actions.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance.
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) MakeDecision(view game.TableView, validActions []game.ValidAction) game.Decision {
	if len(validActions) == 0 {
		return game.Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	chosen := validActions[r.rng.Intn(len(validActions))]

	// For bets and raises, pick a random amount between min and max.
	amount := chosen.MinAmount
	if (chosen.Action == game.Bet || chosen.Action == game.Raise) && chosen.MaxAmount > chosen.MinAmount {
		amount = chosen.MinAmount + r.rng.Intn(chosen.MaxAmount-chosen.MinAmount+1)
	}

	return game.Decision{Action: chosen.Action, Amount: amount, Reasoning: "rand-bot random action"}
}
