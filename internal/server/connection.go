package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardfelt/holdem/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one websocket client: a read pump dispatching
// requests and a write pump draining the send queue.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	playerID  string
	tableID   string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	server    *Server
}

// NewConnection creates a connection wrapper.
func NewConnection(conn *websocket.Conn, logger *log.Logger, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		server: server,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel closed during shutdown.
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a player.
func (c *Connection) SetPlayer(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
}

// GetPlayer returns the associated player ID.
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// SetTable associates this connection with a table.
func (c *Connection) SetTable(tableID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tableID = tableID
}

// GetTable returns the associated table ID.
func (c *Connection) GetTable() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableID
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeAuth:
		var data AuthData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse auth data")
			return
		}
		c.handleAuth(data)

	case MessageTypeJoinTable:
		var data JoinTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse join table data")
			return
		}
		c.handleJoinTable(data)

	case MessageTypeLeaveTable:
		var data LeaveTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse leave table data")
			return
		}
		c.handleLeaveTable(data)

	case MessageTypeListTables:
		c.handleListTables()

	case MessageTypeDealHand:
		var data DealHandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse deal hand data")
			return
		}
		c.handleDealHand(data)

	case MessageTypeSetBlinds:
		var data SetBlindsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse set blinds data")
			return
		}
		c.handleSetBlinds(data)

	case MessageTypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse action data")
			return
		}
		c.handleAction(data)

	case MessageTypeGetState:
		var data GetStateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse get state data")
			return
		}
		c.handleGetState(data)

	default:
		c.sendError("unknown_message_type", "unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		c.logger.Error("failed to create error message", "error", err)
		return
	}
	_ = c.SendMessage(errorMsg)
}

// authedTable resolves the connection's player and the requested table,
// reporting an error to the client on failure.
func (c *Connection) authedTable(tableID string) (string, *Table) {
	playerID := c.GetPlayer()
	if playerID == "" {
		c.sendError("not_authenticated", "must authenticate first")
		return "", nil
	}
	table := c.server.Table(tableID)
	if table == nil {
		c.sendError("table_not_found", "no such table: "+tableID)
		return "", nil
	}
	return playerID, table
}

func (c *Connection) handleAuth(data AuthData) {
	c.logger.Info("auth request", "playerName", data.PlayerName)

	if data.PlayerName == "" {
		c.sendError("invalid_auth", "player name required")
		return
	}

	c.SetPlayer(data.PlayerName)
	response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{Success: true, PlayerID: data.PlayerName})
	_ = c.SendMessage(response)
}

func (c *Connection) handleJoinTable(data JoinTableData) {
	c.logger.Info("join table request", "tableId", data.TableID, "player", c.GetPlayer())

	playerID, table := c.authedTable(data.TableID)
	if table == nil {
		return
	}

	seat, state, err := table.Join(playerID, data.Seat, data.BuyIn)
	if err != nil {
		c.sendError("join_failed", err.Error())
		return
	}
	c.SetTable(data.TableID)

	response, _ := NewMessage(MessageTypeTableJoined, TableJoinedData{TableID: data.TableID, Seat: seat, State: state})
	_ = c.SendMessage(response)
	c.server.publishState(table)
}

func (c *Connection) handleLeaveTable(data LeaveTableData) {
	c.logger.Info("leave table request", "tableId", data.TableID, "player", c.GetPlayer())

	playerID, table := c.authedTable(data.TableID)
	if table == nil {
		return
	}

	if _, err := table.Leave(playerID); err != nil {
		c.sendError("leave_failed", err.Error())
		return
	}
	c.SetTable("")

	response, _ := NewMessage(MessageTypeTableLeft, TableLeftData{TableID: data.TableID})
	_ = c.SendMessage(response)
	c.server.publishState(table)
}

func (c *Connection) handleListTables() {
	response, _ := NewMessage(MessageTypeTableList, TableListData{Tables: c.server.ListTables()})
	_ = c.SendMessage(response)
}

func (c *Connection) handleDealHand(data DealHandData) {
	c.logger.Info("deal hand request", "tableId", data.TableID, "player", c.GetPlayer())

	_, table := c.authedTable(data.TableID)
	if table == nil {
		return
	}

	if _, err := table.Deal(); err != nil {
		c.sendError("deal_failed", err.Error())
		return
	}
	c.server.publishState(table)
}

func (c *Connection) handleSetBlinds(data SetBlindsData) {
	c.logger.Info("set blinds request", "tableId", data.TableID, "small", data.SmallBlind, "big", data.BigBlind)

	_, table := c.authedTable(data.TableID)
	if table == nil {
		return
	}

	if _, err := table.SetBlinds(data.SmallBlind, data.BigBlind); err != nil {
		c.sendError("set_blinds_failed", err.Error())
		return
	}
	c.server.publishState(table)
}

func (c *Connection) handleAction(data ActionData) {
	c.logger.Info("action", "player", c.GetPlayer(), "action", data.Action, "amount", data.Amount)

	playerID, table := c.authedTable(data.TableID)
	if table == nil {
		return
	}

	action, ok := game.ParseAction(data.Action)
	if !ok {
		c.sendError("invalid_action", "unknown action: "+data.Action)
		return
	}

	if _, err := table.Submit(playerID, action, data.Amount); err != nil {
		c.sendError("action_rejected", err.Error())
		return
	}
	c.server.publishState(table)
}

func (c *Connection) handleGetState(data GetStateData) {
	_, table := c.authedTable(data.TableID)
	if table == nil {
		return
	}

	response, _ := NewMessage(MessageTypeGameState, GameStateData{TableID: data.TableID, State: table.State()})
	_ = c.SendMessage(response)
}
