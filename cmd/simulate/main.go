package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardfelt/holdem/internal/bot"
	"github.com/cardfelt/holdem/internal/game"
	"github.com/cardfelt/holdem/internal/rng"
)

var CLI struct {
	Tables     int           `short:"t" default:"4" help:"Number of tables to run in parallel"`
	Hands      int           `short:"n" default:"100" help:"Hands to play per table"`
	Players    int           `short:"p" default:"6" help:"Bot seats per table"`
	SmallBlind int           `default:"1" help:"Small blind"`
	BigBlind   int           `default:"2" help:"Big blind"`
	BuyIn      int           `default:"200" help:"Starting stack per bot"`
	Seed       int64         `help:"Deterministic seed; zero uses crypto entropy"`
	Strategy   string        `default:"odds" enum:"call,fold,rand,odds" help:"Bot strategy"`
	ThinkDelay time.Duration `default:"0" help:"Pause before each bot action"`
	LogLevel   string        `short:"l" default:"info" help:"Log level"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logger := log.New(os.Stderr)
	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	logger.Info("starting simulation",
		"tables", CLI.Tables,
		"hands", CLI.Hands,
		"players", CLI.Players,
		"strategy", CLI.Strategy)

	var handsPlayed atomic.Int64

	g, gctx := errgroup.WithContext(context.Background())
	for i := 0; i < CLI.Tables; i++ {
		tableNum := i
		g.Go(func() error {
			played, err := runTable(gctx, tableNum, logger)
			handsPlayed.Add(int64(played))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("simulation failed", "error", err)
		ctx.Exit(1)
	}

	logger.Info("simulation complete", "handsPlayed", handsPlayed.Load())
}

// runTable plays the configured number of hands at one table of bots
// and verifies chips are conserved across the run.
func runTable(ctx context.Context, tableNum int, logger *log.Logger) (int, error) {
	id := fmt.Sprintf("sim%d", tableNum+1)

	source := rng.NewHandSource
	if CLI.Seed != 0 {
		source = rng.NewTableSource(CLI.Seed, tableNum)
	}

	session := game.NewSession(id, CLI.SmallBlind, CLI.BigBlind, logger, game.WithSource(source))
	runner := bot.NewRunner(session, CLI.ThinkDelay, nil, logger)

	for seat := 0; seat < CLI.Players; seat++ {
		name := fmt.Sprintf("%s-bot%d", id, seat+1)
		if _, err := session.AddSeat(seat, name, CLI.BuyIn); err != nil {
			return 0, fmt.Errorf("seating %s: %w", name, err)
		}
		agent, err := newAgent(CLI.Strategy, logger)
		if err != nil {
			return 0, err
		}
		runner.Seat(seat, agent)
	}

	total := CLI.Players * CLI.BuyIn
	played := 0
	for hand := 0; hand < CLI.Hands; hand++ {
		if err := ctx.Err(); err != nil {
			return played, err
		}

		// Seats that can no longer cover the blind leave the table;
		// their remaining chips stop circulating but stay counted.
		for _, seat := range session.State().Seats {
			if seat.Chips < CLI.BigBlind {
				total -= seat.Chips
				if _, err := session.RemoveSeat(seat.Seat); err != nil {
					return played, fmt.Errorf("retiring seat %d: %w", seat.Seat, err)
				}
			}
		}

		if _, err := session.DealHand(); err != nil {
			// Down to one funded seat: the table is done.
			logger.Info("table finished early", "table", id, "hands", played, "reason", err)
			break
		}

		if err := runner.Run(ctx); err != nil {
			return played, fmt.Errorf("table %s hand %d: %w", id, hand+1, err)
		}
		played++

		chips := 0
		for _, seat := range session.State().Seats {
			chips += seat.Chips
		}
		if chips != total {
			return played, fmt.Errorf("table %s hand %d: chip leak, have %d want %d", id, hand+1, chips, total)
		}
	}

	logger.Info("table complete", "table", id, "hands", played)
	return played, nil
}

func newAgent(strategy string, logger *log.Logger) (game.Agent, error) {
	switch strategy {
	case "call":
		return bot.NewCallBot(logger), nil
	case "fold":
		return bot.NewFoldBot(logger), nil
	case "rand":
		return bot.NewRandBot(rng.NewHandSource(), logger), nil
	case "odds":
		return bot.NewOddsBot(logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", strategy)
	}
}
