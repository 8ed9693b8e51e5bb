package game

import (
	"math/rand"

	"github.com/cardfelt/holdem/poker"
)

// HandOption configures a HandState during creation.
type HandOption func(*handConfig)

type handConfig struct {
	rng         *rand.Rand
	playerNames []string
	button      int
	smallBlind  int
	bigBlind    int

	chipCounts []int
	startChips int
	deck       *poker.Deck
}

// NewHand creates a hand state, posts the blinds and deals hole cards.
// The RNG is required so randomness is explicit and tests can be
// deterministic; per-hand crypto-seeded sources come from internal/rng.
//
//	h := game.NewHand(rng, []string{"alice", "bob"}, 0, 1, 2,
//	    game.WithChips([]int{150, 90}))
func NewHand(rng *rand.Rand, playerNames []string, button int, smallBlind, bigBlind int, opts ...HandOption) *HandState {
	if rng == nil {
		panic("game: rng is required")
	}
	if len(playerNames) < 2 || len(playerNames) > 10 {
		panic("game: hands need 2-10 players")
	}
	if button < 0 || button >= len(playerNames) {
		panic("game: button out of range")
	}

	cfg := &handConfig{
		rng:         rng,
		playerNames: playerNames,
		button:      button,
		smallBlind:  smallBlind,
		bigBlind:    bigBlind,
		startChips:  1000,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.chipCounts != nil && len(cfg.chipCounts) != len(playerNames) {
		panic("game: chip counts must match number of players")
	}

	players := make([]*Player, len(playerNames))
	for i, name := range playerNames {
		chips := cfg.startChips
		if cfg.chipCounts != nil {
			chips = cfg.chipCounts[i]
		}
		players[i] = &Player{Seat: i, Name: name, Chips: chips}
	}

	deck := cfg.deck
	if deck == nil {
		deck = poker.NewDeck(cfg.rng)
	}

	h := &HandState{
		Players:    players,
		Button:     button,
		Street:     Preflop,
		Deck:       deck,
		PotManager: NewPotManager(players),
		Betting:    NewBettingRound(len(players), bigBlind),
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
	}

	h.postBlinds()
	h.dealHoleCards()

	if len(players) == 2 {
		// Heads-up the button acts first preflop.
		h.ActivePlayer = h.nextToAct(button)
	} else {
		h.ActivePlayer = h.nextToAct((button + 3) % len(players))
	}
	if h.ActivePlayer == -1 || h.Betting.IsComplete(h.Players, h.Street, h.BigBlindSeat()) {
		h.nextStreet()
	}

	return h
}

// WithUniformChips sets the same starting stack for every seat.
func WithUniformChips(chips int) HandOption {
	return func(c *handConfig) {
		c.startChips = chips
		c.chipCounts = nil
	}
}

// WithChips sets individual stacks, one per seat.
func WithChips(chipCounts []int) HandOption {
	return func(c *handConfig) {
		c.chipCounts = chipCounts
	}
}

// WithDeck supplies a pre-arranged deck for deterministic tests.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}
