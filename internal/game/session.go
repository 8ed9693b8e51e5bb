package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/cardfelt/holdem/internal/rng"
	"github.com/cardfelt/holdem/poker"
)

// MaxSeats is the largest table the engine runs.
const MaxSeats = 10

// Seat is a table position that persists across hands. Chips carry
// between hands; per-hand state lives in the HandState's Player.
type Seat struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Chips int    `json:"chips"`
}

// Session runs hands for one table. A session is the unit of isolation:
// it owns its seats, deck and hand exclusively, and independent sessions
// share nothing. Action application is serialized with a mutex because
// external callers (connections, bot timers) submit from different
// goroutines; within a session turn order is total so there is no finer
// concurrency to exploit.
type Session struct {
	mu sync.Mutex

	id         string
	logger     *log.Logger
	smallBlind int
	bigBlind   int
	seats      map[int]*Seat
	buttonSeat int
	handNum    int

	hand        *HandState
	seatForPos  []int       // hand position -> session seat index
	posForSeat  map[int]int // session seat index -> hand position
	lastResults []ResultSummary

	newSource func() *rand.Rand
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSource overrides the per-hand RNG factory, for deterministic
// tests and simulations.
func WithSource(f func() *rand.Rand) SessionOption {
	return func(s *Session) { s.newSource = f }
}

// NewSession creates an empty table with the given blinds.
func NewSession(id string, smallBlind, bigBlind int, logger *log.Logger, opts ...SessionOption) *Session {
	s := &Session{
		id:         id,
		logger:     logger.WithPrefix("session").With("table", id),
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		seats:      make(map[int]*Seat),
		buttonSeat: -1,
		newSource:  rng.NewHandSource,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// ResultSummary is the winner record for one settled pot, part of the
// GameState contract consumed by the storage layer.
type ResultSummary struct {
	Amount   int         `json:"amount"`
	Winners  []int       `json:"winners"` // Session seat indices
	Payouts  map[int]int `json:"payouts"`
	RankName string      `json:"rankName"`
}

// GameState is the serializable snapshot of the session produced after
// every operation. It is the contract boundary with the storage and API
// layers; the engine produces it but does not persist it.
type GameState struct {
	ID             string          `json:"id"`
	HandNum        int             `json:"handNum"`
	HandInProgress bool            `json:"handInProgress"`
	Street         string          `json:"street"`
	Board          []poker.Card    `json:"board"`
	Pot            int             `json:"pot"`
	SmallBlind     int             `json:"smallBlind"`
	BigBlind       int             `json:"bigBlind"`
	ButtonSeat     int             `json:"buttonSeat"`
	ActiveSeat     int             `json:"activeSeat"` // -1 when no one is to act
	Seats          []SeatView      `json:"seats"`
	ValidActions   []ValidAction   `json:"validActions,omitempty"`
	MinRaise       int             `json:"minRaise"`
	MaxRaise       int             `json:"maxRaise"`
	LastResults    []ResultSummary `json:"lastResults,omitempty"`
}

// AddSeat seats a player with a starting stack. Joining mid-hand is
// allowed; the seat plays from the next deal.
func (s *Session) AddSeat(index int, name string, chips int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= MaxSeats {
		return s.state(), fmt.Errorf("%w: %d", ErrNoSuchSeat, index)
	}
	if _, ok := s.seats[index]; ok {
		return s.state(), fmt.Errorf("%w: %d", ErrSeatTaken, index)
	}
	if chips <= 0 {
		return s.state(), fmt.Errorf("%w: buy-in %d", ErrInvalidAmount, chips)
	}

	s.seats[index] = &Seat{Index: index, Name: name, Chips: chips}
	s.logger.Info("seat added", "seat", index, "name", name, "chips", chips)
	return s.state(), nil
}

// RemoveSeat removes a player. If the seat is in the current hand it is
// folded first; its stack leaves the table, chips already wagered stay
// in the pot.
func (s *Session) RemoveSeat(index int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seats[index]; !ok {
		return s.state(), fmt.Errorf("%w: %d", ErrNoSuchSeat, index)
	}

	if s.hand != nil {
		if pos, ok := s.posForSeat[index]; ok {
			s.hand.ForceFold(pos)
			s.finishIfComplete()
		}
	}

	delete(s.seats, index)
	s.logger.Info("seat removed", "seat", index)
	return s.state(), nil
}

// SetBlinds adjusts the blinds between hands.
func (s *Session) SetBlinds(small, big int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand != nil {
		return s.state(), ErrHandInFlight
	}
	if small <= 0 || big < small {
		return s.state(), fmt.Errorf("%w: blinds %d/%d", ErrInvalidAmount, small, big)
	}
	for _, seat := range s.seats {
		if seat.Chips > 0 && seat.Chips < big {
			return s.state(), fmt.Errorf("%w: seat %d has %d", ErrBlindTooLarge, seat.Index, seat.Chips)
		}
	}

	s.smallBlind, s.bigBlind = small, big
	s.logger.Info("blinds set", "small", small, "big", big)
	return s.state(), nil
}

// DealHand starts a new hand among the seats that can post: the button
// rotates one occupied seat clockwise, blinds are posted and hole cards
// dealt.
func (s *Session) DealHand() (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand != nil {
		return s.state(), ErrHandInFlight
	}

	playing := s.playingSeats()
	if len(playing) < 2 {
		return s.state(), ErrTooFewSeats
	}
	for _, idx := range playing {
		if s.seats[idx].Chips < s.bigBlind {
			return s.state(), fmt.Errorf("%w: seat %d has %d, blind %d", ErrBlindTooLarge, idx, s.seats[idx].Chips, s.bigBlind)
		}
	}

	s.buttonSeat = s.nextOccupied(s.buttonSeat, playing)
	buttonPos := sort.SearchInts(playing, s.buttonSeat)

	names := make([]string, len(playing))
	chips := make([]int, len(playing))
	s.seatForPos = playing
	s.posForSeat = make(map[int]int, len(playing))
	for pos, idx := range playing {
		names[pos] = s.seats[idx].Name
		chips[pos] = s.seats[idx].Chips
		s.posForSeat[idx] = pos
	}

	s.handNum++
	s.lastResults = nil
	s.hand = NewHand(s.newSource(), names, buttonPos, s.smallBlind, s.bigBlind, WithChips(chips))
	s.logger.Info("hand dealt", "hand", s.handNum, "players", len(playing), "button", s.buttonSeat)

	s.finishIfComplete()
	return s.state(), nil
}

// SubmitAction applies one action for a session seat. Rejections leave
// the hand unchanged and report why.
func (s *Session) SubmitAction(seatIndex int, action Action, amount int) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand == nil {
		return s.state(), ErrNoHand
	}
	pos, ok := s.posForSeat[seatIndex]
	if !ok {
		return s.state(), fmt.Errorf("%w: %d", ErrNoSuchSeat, seatIndex)
	}

	if err := s.hand.ProcessAction(pos, action, amount); err != nil {
		s.logger.Debug("action rejected", "seat", seatIndex, "action", action, "amount", amount, "err", err)
		return s.state(), err
	}
	s.logger.Debug("action applied", "seat", seatIndex, "action", action, "amount", amount)

	s.finishIfComplete()
	return s.state(), nil
}

// State returns the current snapshot.
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// ViewFor returns the table as one seat sees it, including its own hole
// cards and, when it is to act, the legal action set.
func (s *Session) ViewFor(seatIndex int) (TableView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand == nil {
		return TableView{}, ErrNoHand
	}
	pos, ok := s.posForSeat[seatIndex]
	if !ok {
		return TableView{}, fmt.Errorf("%w: %d", ErrNoSuchSeat, seatIndex)
	}
	view := s.hand.View(pos)
	s.remapView(&view)
	return view, nil
}

// playingSeats returns occupied seat indices with chips, ascending.
func (s *Session) playingSeats() []int {
	playing := make([]int, 0, len(s.seats))
	for idx, seat := range s.seats {
		if seat.Chips > 0 {
			playing = append(playing, idx)
		}
	}
	sort.Ints(playing)
	return playing
}

// nextOccupied advances clockwise from the previous button seat,
// skipping vacated positions.
func (s *Session) nextOccupied(from int, playing []int) int {
	for i := 1; i <= MaxSeats; i++ {
		idx := (from + i) % MaxSeats
		if pos := sort.SearchInts(playing, idx); pos < len(playing) && playing[pos] == idx {
			return idx
		}
	}
	return playing[0]
}

// finishIfComplete settles a finished hand, writes stacks back to the
// seats and records the winner summaries.
func (s *Session) finishIfComplete() {
	if s.hand == nil || !s.hand.IsComplete() {
		return
	}

	results := s.hand.Settle()
	s.lastResults = make([]ResultSummary, 0, len(results))
	for _, r := range results {
		summary := ResultSummary{
			Amount:   r.Amount,
			RankName: r.RankName,
			Payouts:  make(map[int]int, len(r.Payouts)),
		}
		for _, pos := range r.Winners {
			summary.Winners = append(summary.Winners, s.seatForPos[pos])
		}
		for pos, amount := range r.Payouts {
			summary.Payouts[s.seatForPos[pos]] = amount
		}
		sort.Ints(summary.Winners)
		s.lastResults = append(s.lastResults, summary)
		s.logger.Info("pot settled", "amount", r.Amount, "winners", summary.Winners, "hand", r.RankName)
	}

	for pos, p := range s.hand.Players {
		if seat, ok := s.seats[s.seatForPos[pos]]; ok {
			seat.Chips = p.Chips
		}
	}

	s.hand = nil
	s.posForSeat = nil
}

// state builds the GameState snapshot. Callers hold the mutex.
func (s *Session) state() GameState {
	gs := GameState{
		ID:         s.id,
		HandNum:    s.handNum,
		SmallBlind: s.smallBlind,
		BigBlind:   s.bigBlind,
		ButtonSeat: s.buttonSeat,
		ActiveSeat: -1,
		Street:     Showdown.String(),
	}

	if s.hand != nil {
		gs.HandInProgress = true
		view := s.hand.View(-1)
		s.remapView(&view)
		gs.Street = view.Street.String()
		gs.Board = view.Board
		gs.Pot = view.Pot
		gs.ActiveSeat = view.ActiveSeat
		// Hand players whose seat has since been vacated stay in the
		// hand's accounting but drop out of the snapshot.
		gs.Seats = view.Seats[:0:0]
		for _, sv := range view.Seats {
			if _, ok := s.seats[sv.Seat]; ok {
				gs.Seats = append(gs.Seats, sv)
			}
		}
		for _, idx := range s.occupiedSeats() {
			if _, inHand := s.posForSeat[idx]; !inHand {
				seat := s.seats[idx]
				gs.Seats = append(gs.Seats, SeatView{Seat: seat.Index, Name: seat.Name, Chips: seat.Chips, Folded: true})
			}
		}
		if s.hand.ActivePlayer >= 0 {
			gs.ValidActions = s.hand.ValidActions()
			for _, va := range gs.ValidActions {
				if va.Action == Bet || va.Action == Raise {
					gs.MinRaise = va.MinAmount
					gs.MaxRaise = va.MaxAmount
				}
			}
		}
	} else {
		for _, idx := range s.occupiedSeats() {
			seat := s.seats[idx]
			gs.Seats = append(gs.Seats, SeatView{Seat: seat.Index, Name: seat.Name, Chips: seat.Chips})
		}
	}

	gs.LastResults = s.lastResults
	return gs
}

// remapView rewrites hand positions in a view to session seat indices.
func (s *Session) remapView(view *TableView) {
	for i := range view.Seats {
		view.Seats[i].Seat = s.seatForPos[view.Seats[i].Seat]
	}
	if view.ActiveSeat >= 0 {
		view.ActiveSeat = s.seatForPos[view.ActiveSeat]
	}
	view.Button = s.buttonSeat
}

func (s *Session) occupiedSeats() []int {
	occupied := make([]int, 0, len(s.seats))
	for idx := range s.seats {
		occupied = append(occupied, idx)
	}
	sort.Ints(occupied)
	return occupied
}
