package bot

import (
	"github.com/charmbracelet/log"

	"github.com/cardfelt/holdem/internal/game"
)

// CallBot checks or calls whatever it is facing. Useful as a baseline
// opponent and for exercising every street in simulations.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance.
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) MakeDecision(view game.TableView, validActions []game.ValidAction) game.Decision {
	if hasAction(game.Check, validActions) {
		return findAction(game.Check, validActions, "call-bot checking")
	}
	if hasAction(game.Call, validActions) {
		return findAction(game.Call, validActions, "call-bot calling")
	}
	if hasAction(game.AllIn, validActions) {
		return findAction(game.AllIn, validActions, "call-bot calling all-in")
	}
	return findAction(game.Fold, validActions, "call-bot forced fold")
}
