package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dispatchServer builds a server with one table and one house bot, with
// no listener running. Connections are exercised by calling
// handleMessage directly and draining the send queue.
func dispatchServer(t *testing.T) *Server {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Bots = []BotConfig{{Name: "house", Strategy: "call", Tables: []string{"main"}, BuyIn: 200}}
	require.NoError(t, cfg.Validate())
	return NewServer(cfg, testLogger())
}

// dispatchConnection returns a connection whose pumps never start, so
// every queued message stays in the send channel for inspection.
func dispatchConnection(t *testing.T, s *Server) *Connection {
	t.Helper()

	c := NewConnection(nil, testLogger(), s)
	s.connections[c] = true
	return c
}

func send(t *testing.T, c *Connection, messageType MessageType, payload interface{}) {
	t.Helper()

	msg, err := NewMessage(messageType, payload)
	require.NoError(t, err)
	c.handleMessage(msg)
}

// recv pops the next queued message; dispatch is synchronous, so
// anything the handler produced is already buffered.
func recv(t *testing.T, c *Connection) *Message {
	t.Helper()

	select {
	case msg := <-c.send:
		return msg
	default:
		t.Fatal("no message queued")
		return nil
	}
}

func recvError(t *testing.T, c *Connection) ErrorData {
	t.Helper()

	msg := recv(t, c)
	require.Equal(t, MessageTypeError, msg.Type)
	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	return data
}

func assertIdle(t *testing.T, c *Connection) {
	t.Helper()

	select {
	case msg := <-c.send:
		t.Fatalf("unexpected queued message %s", msg.Type)
	default:
	}
}

func TestConnectionAuth(t *testing.T) {
	t.Parallel()

	c := dispatchConnection(t, dispatchServer(t))

	send(t, c, MessageTypeAuth, AuthData{})
	assert.Equal(t, "invalid_auth", recvError(t, c).Code)
	assert.Empty(t, c.GetPlayer())

	send(t, c, MessageTypeAuth, AuthData{PlayerName: "alice"})
	msg := recv(t, c)
	require.Equal(t, MessageTypeAuthResponse, msg.Type)
	var resp AuthResponseData
	require.NoError(t, json.Unmarshal(msg.Data, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "alice", c.GetPlayer())
}

func TestConnectionRejectsUnauthenticated(t *testing.T) {
	t.Parallel()

	c := dispatchConnection(t, dispatchServer(t))

	send(t, c, MessageTypeJoinTable, JoinTableData{TableID: "main", BuyIn: 200})
	assert.Equal(t, "not_authenticated", recvError(t, c).Code)

	send(t, c, MessageTypeAction, ActionData{TableID: "main", Action: "fold"})
	assert.Equal(t, "not_authenticated", recvError(t, c).Code)
}

func TestConnectionRejectsMalformedAndUnknown(t *testing.T) {
	t.Parallel()

	c := dispatchConnection(t, dispatchServer(t))

	c.handleMessage(&Message{Type: MessageTypeJoinTable, Data: json.RawMessage(`{`)})
	assert.Equal(t, "invalid_message", recvError(t, c).Code)

	c.handleMessage(&Message{Type: MessageType("flop_it")})
	assert.Equal(t, "unknown_message_type", recvError(t, c).Code)

	send(t, c, MessageTypeAuth, AuthData{PlayerName: "alice"})
	recv(t, c)
	send(t, c, MessageTypeJoinTable, JoinTableData{TableID: "atlantis", BuyIn: 200})
	assert.Equal(t, "table_not_found", recvError(t, c).Code)
}

func TestConnectionTableFlow(t *testing.T) {
	t.Parallel()

	s := dispatchServer(t)
	c := dispatchConnection(t, s)

	send(t, c, MessageTypeAuth, AuthData{PlayerName: "alice"})
	require.Equal(t, MessageTypeAuthResponse, recv(t, c).Type)

	send(t, c, MessageTypeListTables, nil)
	msg := recv(t, c)
	require.Equal(t, MessageTypeTableList, msg.Type)
	var list TableListData
	require.NoError(t, json.Unmarshal(msg.Data, &list))
	require.Len(t, list.Tables, 1)
	assert.Equal(t, "main", list.Tables[0].ID)
	assert.Equal(t, 1, list.Tables[0].PlayerCount)

	// Joining answers the request, then broadcasts the new state.
	send(t, c, MessageTypeJoinTable, JoinTableData{TableID: "main", BuyIn: 200})
	msg = recv(t, c)
	require.Equal(t, MessageTypeTableJoined, msg.Type)
	var joined TableJoinedData
	require.NoError(t, json.Unmarshal(msg.Data, &joined))
	assert.Equal(t, "main", c.GetTable())
	require.Equal(t, MessageTypeGameState, recv(t, c).Type)
	assertIdle(t, c)

	// Dealing broadcasts the hand and privately prompts the human.
	send(t, c, MessageTypeDealHand, DealHandData{TableID: "main"})
	msg = recv(t, c)
	require.Equal(t, MessageTypeGameState, msg.Type)
	var gs GameStateData
	require.NoError(t, json.Unmarshal(msg.Data, &gs))
	require.True(t, gs.State.HandInProgress)

	msg = recv(t, c)
	require.Equal(t, MessageTypeActionNeeded, msg.Type)
	var prompt ActionNeededData
	require.NoError(t, json.Unmarshal(msg.Data, &prompt))
	assert.Equal(t, joined.Seat, prompt.Seat)
	for _, seat := range prompt.View.Seats {
		if seat.Seat == prompt.Seat {
			assert.Len(t, seat.HoleCards, 2, "the prompted seat sees its own cards")
		} else {
			assert.Empty(t, seat.HoleCards, "other seats stay hidden")
		}
	}
	require.NotEmpty(t, prompt.View.ValidActions)

	send(t, c, MessageTypeAction, ActionData{TableID: "main", Action: "banana"})
	assert.Equal(t, "invalid_action", recvError(t, c).Code)

	// Folding heads-up ends the hand; the follow-up state shows it.
	send(t, c, MessageTypeAction, ActionData{TableID: "main", Action: "fold"})
	msg = recv(t, c)
	require.Equal(t, MessageTypeGameState, msg.Type)
	require.NoError(t, json.Unmarshal(msg.Data, &gs))
	assert.False(t, gs.State.HandInProgress)
	assert.NotEmpty(t, gs.State.LastResults)
	assertIdle(t, c)

	// Acting with no hand running is rejected.
	send(t, c, MessageTypeAction, ActionData{TableID: "main", Action: "fold"})
	assert.Equal(t, "action_rejected", recvError(t, c).Code)

	send(t, c, MessageTypeLeaveTable, LeaveTableData{TableID: "main"})
	require.Equal(t, MessageTypeTableLeft, recv(t, c).Type)
	assert.Empty(t, c.GetTable())
}
