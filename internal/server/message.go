package server

import (
	"encoding/json"
	"time"

	"github.com/cardfelt/holdem/internal/game"
)

// Message is the websocket envelope. Data carries the type-specific
// payload.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage wraps a payload in an envelope with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client to server payloads.

type AuthData struct {
	PlayerName string `json:"playerName"`
	Token      string `json:"token,omitempty"`
}

type JoinTableData struct {
	TableID string `json:"tableId"`
	Seat    *int   `json:"seat,omitempty"` // Nil picks the first open seat
	BuyIn   int    `json:"buyIn"`
}

type LeaveTableData struct {
	TableID string `json:"tableId"`
}

type DealHandData struct {
	TableID string `json:"tableId"`
}

type SetBlindsData struct {
	TableID    string `json:"tableId"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
}

type ActionData struct {
	TableID string `json:"tableId"`
	Action  string `json:"action"`
	Amount  int    `json:"amount,omitempty"`
}

type GetStateData struct {
	TableID string `json:"tableId"`
}

// Server to client payloads.

type AuthResponseData struct {
	Success  bool   `json:"success"`
	PlayerID string `json:"playerId,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TableInfo struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Stakes      string `json:"stakes"`
	HandNum     int    `json:"handNum"`
}

type TableListData struct {
	Tables []TableInfo `json:"tables"`
}

type TableJoinedData struct {
	TableID string         `json:"tableId"`
	Seat    int            `json:"seat"`
	State   game.GameState `json:"state"`
}

type TableLeftData struct {
	TableID string `json:"tableId"`
}

// GameStateData is the public snapshot broadcast to every connection at
// the table after each state change. Hole cards never appear in it.
type GameStateData struct {
	TableID string         `json:"tableId"`
	State   game.GameState `json:"state"`
}

// ActionNeededData is sent privately to the seat that must act. It
// carries the seat's own view, hole cards and legal actions included.
type ActionNeededData struct {
	TableID string         `json:"tableId"`
	Seat    int            `json:"seat"`
	View    game.TableView `json:"view"`
}
