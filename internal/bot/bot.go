// Package bot provides table agents that decide from the same immutable
// views and legal action sets a remote player receives.
package bot

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardfelt/holdem/internal/game"
)

func hasAction(action game.Action, validActions []game.ValidAction) bool {
	for _, va := range validActions {
		if va.Action == action {
			return true
		}
	}
	return false
}

func findAction(preferred game.Action, validActions []game.ValidAction, reasoning string) game.Decision {
	for _, va := range validActions {
		if va.Action == preferred {
			return game.Decision{Action: preferred, Amount: va.MinAmount, Reasoning: reasoning}
		}
	}

	if len(validActions) > 0 {
		return game.Decision{Action: validActions[0].Action, Amount: validActions[0].MinAmount, Reasoning: "fallback: " + reasoning}
	}

	// Should never happen with a correct valid action set.
	return game.Decision{Action: game.Fold, Reasoning: "emergency fold"}
}

// Runner drives bot seats at a session: whenever the session's active
// seat belongs to one of its agents it asks for a decision and submits
// it after a think delay. The clock is injected so tests advance time
// without sleeping.
type Runner struct {
	session *game.Session
	agents  map[int]game.Agent
	delay   time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// NewRunner creates a runner for the given session. A nil clock means
// real time.
func NewRunner(session *game.Session, delay time.Duration, clock quartz.Clock, logger *log.Logger) *Runner {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Runner{
		session: session,
		agents:  make(map[int]game.Agent),
		delay:   delay,
		clock:   clock,
		logger:  logger.WithPrefix("bot"),
	}
}

// Seat registers an agent for a session seat.
func (r *Runner) Seat(seat int, agent game.Agent) {
	r.agents[seat] = agent
}

// Step submits one bot decision if a bot seat is to act. Returns false
// when the active seat is not a bot or no hand is running.
func (r *Runner) Step(ctx context.Context) (bool, error) {
	state := r.session.State()
	if !state.HandInProgress || state.ActiveSeat < 0 {
		return false, nil
	}
	agent, ok := r.agents[state.ActiveSeat]
	if !ok {
		return false, nil
	}

	view, err := r.session.ViewFor(state.ActiveSeat)
	if err != nil {
		return false, err
	}

	decision := agent.MakeDecision(view, view.ValidActions)
	r.logger.Debug("decision", "seat", state.ActiveSeat, "action", decision.Action, "amount", decision.Amount, "reasoning", decision.Reasoning)

	if r.delay > 0 {
		timer := r.clock.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	if _, err := r.session.SubmitAction(state.ActiveSeat, decision.Action, decision.Amount); err != nil {
		return false, err
	}
	return true, nil
}

// Run steps until no bot action remains or the context is cancelled.
// With every seat registered this plays the current hand to completion.
func (r *Runner) Run(ctx context.Context) error {
	for {
		acted, err := r.Step(ctx)
		if err != nil {
			return err
		}
		if !acted {
			return nil
		}
	}
}
