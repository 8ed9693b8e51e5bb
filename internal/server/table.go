package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/cardfelt/holdem/internal/bot"
	"github.com/cardfelt/holdem/internal/game"
	"github.com/cardfelt/holdem/internal/rng"
)

// Table binds a session to its connected players and house bots. All
// table operations funnel through here so bot turns run immediately
// after any human action that hands them the button.
type Table struct {
	mu sync.Mutex

	cfg      TableConfig
	session  *game.Session
	runner   *bot.Runner
	seats    map[string]int // Player ID -> seat index
	botSeats map[int]string
	logger   *log.Logger
}

// NewTable creates a table from its configuration.
func NewTable(cfg TableConfig, logger *log.Logger) *Table {
	session := game.NewSession(cfg.Name, cfg.SmallBlind, cfg.BigBlind, logger)
	return &Table{
		cfg:      cfg,
		session:  session,
		runner:   bot.NewRunner(session, cfg.ThinkDelay(), nil, logger),
		seats:    make(map[string]int),
		botSeats: make(map[int]string),
		logger:   logger.WithPrefix("table").With("table", cfg.Name),
	}
}

// ID returns the table name.
func (t *Table) ID() string { return t.cfg.Name }

// Info summarizes the table for listings.
func (t *Table) Info() TableInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.session.State()
	return TableInfo{
		ID:          t.cfg.Name,
		PlayerCount: len(state.Seats),
		MaxPlayers:  t.cfg.MaxPlayers,
		Stakes:      fmt.Sprintf("%d/%d", state.SmallBlind, state.BigBlind),
		HandNum:     state.HandNum,
	}
}

// Join seats a player. A nil seat request takes the lowest open seat.
func (t *Table) Join(playerID string, seat *int, buyIn int) (int, game.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seats[playerID]; ok {
		return 0, t.session.State(), fmt.Errorf("%s already seated", playerID)
	}
	if len(t.seats) >= t.cfg.MaxPlayers {
		return 0, t.session.State(), fmt.Errorf("table %s is full", t.cfg.Name)
	}
	if buyIn < t.cfg.BuyInMin || buyIn > t.cfg.BuyInMax {
		return 0, t.session.State(), fmt.Errorf("buy-in %d outside %d-%d", buyIn, t.cfg.BuyInMin, t.cfg.BuyInMax)
	}

	idx := t.openSeat(seat)
	if idx < 0 {
		return 0, t.session.State(), fmt.Errorf("no open seat")
	}

	state, err := t.session.AddSeat(idx, playerID, buyIn)
	if err != nil {
		return 0, state, err
	}
	t.seats[playerID] = idx
	t.autoDeal()
	return idx, t.session.State(), nil
}

// Leave removes a player, folding them first if a hand is running.
func (t *Table) Leave(playerID string) (game.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx, ok := t.seats[playerID]
	if !ok {
		return t.session.State(), fmt.Errorf("%s not seated", playerID)
	}

	state, err := t.session.RemoveSeat(idx)
	if err != nil {
		return state, err
	}
	delete(t.seats, playerID)
	t.runBots()
	t.autoDeal()
	return t.session.State(), nil
}

// Deal starts the next hand and lets bots act up to the first human
// decision.
func (t *Table) Deal() (game.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.session.DealHand()
	if err != nil {
		return state, err
	}
	t.runBots()
	return t.session.State(), nil
}

// SetBlinds changes the stakes between hands.
func (t *Table) SetBlinds(small, big int) (game.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.SetBlinds(small, big)
}

// Submit applies a player's action, then runs any bot turns it opened.
func (t *Table) Submit(playerID string, action game.Action, amount int) (game.GameState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx, ok := t.seats[playerID]
	if !ok {
		return t.session.State(), fmt.Errorf("%s not seated", playerID)
	}

	state, err := t.session.SubmitAction(idx, action, amount)
	if err != nil {
		return state, err
	}
	t.runBots()
	t.autoDeal()
	return t.session.State(), nil
}

// State returns the public snapshot.
func (t *Table) State() game.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session.State()
}

// ViewFor returns the private view for a seated player.
func (t *Table) ViewFor(playerID string) (int, game.TableView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx, ok := t.seats[playerID]
	if !ok {
		return 0, game.TableView{}, fmt.Errorf("%s not seated", playerID)
	}
	view, err := t.session.ViewFor(idx)
	return idx, view, err
}

// SeatFor returns the seat index for a player ID.
func (t *Table) SeatFor(playerID string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, ok := t.seats[playerID]
	return idx, ok
}

// ActiveHumanSeat returns the human seat currently to act, or -1.
func (t *Table) ActiveHumanSeat() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.session.State()
	if !state.HandInProgress || state.ActiveSeat < 0 {
		return -1
	}
	if _, isBot := t.botSeats[state.ActiveSeat]; isBot {
		return -1
	}
	return state.ActiveSeat
}

// SeatBot seats a house bot with the named strategy.
func (t *Table) SeatBot(name, strategy string, buyIn int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	agent, err := newAgent(strategy, t.logger)
	if err != nil {
		return err
	}

	idx := t.openSeat(nil)
	if idx < 0 || len(t.seats) >= t.cfg.MaxPlayers {
		return fmt.Errorf("no open seat for bot %s", name)
	}
	if _, err := t.session.AddSeat(idx, name, buyIn); err != nil {
		return err
	}

	t.seats[name] = idx
	t.botSeats[idx] = name
	t.runner.Seat(idx, agent)
	return nil
}

// runBots plays bot turns until a human is to act or the hand ends.
// Callers hold the table mutex; the session has its own.
func (t *Table) runBots() {
	if err := t.runner.Run(context.Background()); err != nil {
		t.logger.Error("bot run failed", "error", err)
	}
}

// autoDeal starts the next hand once the previous one settles, on
// tables configured for it. Only runs while a human is seated: the new
// hand always pauses at the human's first action, and a bot-only table
// would otherwise play unattended forever.
func (t *Table) autoDeal() {
	if !t.cfg.AutoDeal || len(t.seats) <= len(t.botSeats) {
		return
	}
	if t.session.State().HandInProgress {
		return
	}
	if _, err := t.session.DealHand(); err != nil {
		t.logger.Debug("auto deal waiting", "error", err)
		return
	}
	t.runBots()
}

// openSeat finds the requested or lowest open seat, -1 if none.
func (t *Table) openSeat(requested *int) int {
	taken := make(map[int]bool, len(t.seats))
	for _, idx := range t.seats {
		taken[idx] = true
	}

	if requested != nil {
		if *requested >= 0 && *requested < t.cfg.MaxPlayers && !taken[*requested] {
			return *requested
		}
		return -1
	}
	for idx := 0; idx < t.cfg.MaxPlayers; idx++ {
		if !taken[idx] {
			return idx
		}
	}
	return -1
}

// newAgent builds a bot agent by strategy name.
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
		return nil, fmt.Errorf("unknown bot strategy: %s", strategy)
	}
}
