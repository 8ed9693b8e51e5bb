package bot

import (
	"github.com/charmbracelet/log"

	"github.com/cardfelt/holdem/internal/game"
)

// FoldBot folds to any bet and checks when it can.
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance.
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) MakeDecision(view game.TableView, validActions []game.ValidAction) game.Decision {
	if hasAction(game.Check, validActions) {
		return findAction(game.Check, validActions, "fold-bot checking")
	}
	return findAction(game.Fold, validActions, "fold-bot folding")
}
