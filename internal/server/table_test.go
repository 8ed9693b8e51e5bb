package server

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardfelt/holdem/internal/game"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testTableConfig() TableConfig {
	return TableConfig{
		Name:       "t1",
		MaxPlayers: 4,
		SmallBlind: 1,
		BigBlind:   2,
		BuyInMin:   50,
		BuyInMax:   500,
	}
}

func intPtr(v int) *int { return &v }

// playHand drives the human seat with check/call until the hand ends.
// Bot turns run inside Submit, so the human is always the one to act.
func playHand(t *testing.T, table *Table, playerID string) {
	t.Helper()

	for i := 0; i < 50; i++ {
		if !table.State().HandInProgress {
			return
		}

		_, view, err := table.ViewFor(playerID)
		require.NoError(t, err)
		require.NotEmpty(t, view.ValidActions, "human to act with no legal actions")

		action := view.ValidActions[0].Action
		for _, va := range view.ValidActions {
			if va.Action == game.Check || va.Action == game.Call {
				action = va.Action
				break
			}
		}
		_, err = table.Submit(playerID, action, 0)
		require.NoError(t, err)
	}
	t.Fatal("hand did not complete")
}

func TestTableJoinBookkeeping(t *testing.T) {
	t.Parallel()

	table := NewTable(testTableConfig(), testLogger())

	seat, _, err := table.Join("alice", nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, seat)

	_, _, err = table.Join("alice", nil, 100)
	assert.Error(t, err, "double join")

	_, _, err = table.Join("bob", nil, 10)
	assert.Error(t, err, "buy-in below minimum")

	seat, _, err = table.Join("bob", intPtr(2), 100)
	require.NoError(t, err)
	assert.Equal(t, 2, seat)

	_, _, err = table.Join("carol", intPtr(2), 100)
	assert.Error(t, err, "requested seat taken")

	// The next free-seat join skips the taken seats.
	seat, _, err = table.Join("carol", nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, seat)

	_, _, err = table.Join("dave", nil, 100)
	require.NoError(t, err)
	_, _, err = table.Join("erin", nil, 100)
	assert.Error(t, err, "table full")

	idx, ok := table.SeatFor("bob")
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	_, ok = table.SeatFor("erin")
	assert.False(t, ok)
}

func TestTableSeatBot(t *testing.T) {
	t.Parallel()

	table := NewTable(testTableConfig(), testLogger())

	require.NoError(t, table.SeatBot("cb1", "call", 100))
	assert.Error(t, table.SeatBot("cheat", "martingale", 100), "unknown strategy")

	info := table.Info()
	assert.Equal(t, 1, info.PlayerCount)
	assert.Equal(t, -1, table.ActiveHumanSeat())
}

func TestTableHumanPlaysHandAgainstBots(t *testing.T) {
	t.Parallel()

	table := NewTable(testTableConfig(), testLogger())
	require.NoError(t, table.SeatBot("cb1", "call", 100))
	require.NoError(t, table.SeatBot("cb2", "call", 100))
	_, _, err := table.Join("alice", nil, 100)
	require.NoError(t, err)

	state, err := table.Deal()
	require.NoError(t, err)
	require.True(t, state.HandInProgress)

	// Bots acted up to the human inside Deal.
	human := table.ActiveHumanSeat()
	aliceSeat, ok := table.SeatFor("alice")
	require.True(t, ok)
	assert.Equal(t, aliceSeat, human)

	playHand(t, table, "alice")

	state = table.State()
	assert.False(t, state.HandInProgress)
	assert.NotEmpty(t, state.LastResults)

	chips := 0
	for _, seat := range state.Seats {
		chips += seat.Chips
	}
	assert.Equal(t, 300, chips)
}

func TestTableLeaveMidHandFoldsAndFreesSeat(t *testing.T) {
	t.Parallel()

	table := NewTable(testTableConfig(), testLogger())
	require.NoError(t, table.SeatBot("cb1", "call", 100))
	require.NoError(t, table.SeatBot("cb2", "call", 100))
	_, _, err := table.Join("alice", nil, 100)
	require.NoError(t, err)

	_, err = table.Deal()
	require.NoError(t, err)

	// The bots play the abandoned hand out between themselves.
	_, err = table.Leave("alice")
	require.NoError(t, err)

	state := table.State()
	assert.False(t, state.HandInProgress)
	assert.Len(t, state.Seats, 2)

	_, _, err = table.Join("alice", nil, 100)
	assert.NoError(t, err, "vacated seat should be joinable again")

	_, err = table.Leave("mallory")
	assert.Error(t, err, "leave without a seat")
}

func TestTableAutoDealStartsNextHand(t *testing.T) {
	t.Parallel()

	cfg := testTableConfig()
	cfg.AutoDeal = true
	table := NewTable(cfg, testLogger())
	require.NoError(t, table.SeatBot("cb1", "call", 100))

	// Seating the second player starts the first hand unprompted.
	_, state, err := table.Join("alice", nil, 100)
	require.NoError(t, err)
	require.True(t, state.HandInProgress)
	assert.Equal(t, 1, state.HandNum)

	// Folding out settles the hand and the table deals the next one.
	state, err = table.Submit("alice", game.Fold, 0)
	require.NoError(t, err)
	require.True(t, state.HandInProgress)
	assert.Equal(t, 2, state.HandNum)
}

func TestTableAutoDealIdlesWithoutHumans(t *testing.T) {
	t.Parallel()

	cfg := testTableConfig()
	cfg.AutoDeal = true
	table := NewTable(cfg, testLogger())
	require.NoError(t, table.SeatBot("cb1", "call", 100))
	require.NoError(t, table.SeatBot("cb2", "call", 100))

	// Two funded bots could play, but a bot-only table waits for an
	// explicit deal.
	assert.False(t, table.State().HandInProgress)

	state, err := table.Deal()
	require.NoError(t, err)
	assert.False(t, state.HandInProgress, "bots play a dealt hand to completion")
	assert.Equal(t, 1, state.HandNum)
	assert.NotEmpty(t, state.LastResults)
}
