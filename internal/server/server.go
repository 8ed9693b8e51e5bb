package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Server accepts websocket connections and routes table operations to
// sessions. Each table serializes its own state; the server only tracks
// which connection sits where.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	tables      map[string]*Table
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer creates a server from configuration, with every configured
// table created and its bots seated.
func NewServer(cfg *Config, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: cfg.ListenAddress(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Development default; restrict in production.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		tables:      make(map[string]*Table),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}

	for _, tc := range cfg.Tables {
		table := NewTable(tc, logger)
		s.tables[tc.Name] = table
		for _, bc := range cfg.BotsForTable(tc.Name) {
			if err := table.SeatBot(bc.Name, bc.Strategy, bc.BuyIn); err != nil {
				s.logger.Error("failed to seat bot", "bot", bc.Name, "table", tc.Name, "error", err)
			}
		}
	}

	return s
}

// Start runs the server until the listener fails.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.logger.Info("starting websocket server", "addr", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// Stop closes every connection and stops accepting work.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

// Table returns a table by name, or nil.
func (s *Server) Table(name string) *Table {
	return s.tables[name]
}

// ListTables summarizes every table.
func (s *Server) ListTables() []TableInfo {
	infos := make([]TableInfo, 0, len(s.tables))
	for _, table := range s.tables {
		infos = append(infos, table.Info())
	}
	return infos
}

func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()

			// A dropped connection abandons its seat.
			if playerID, tableID := conn.GetPlayer(), conn.GetTable(); playerID != "" && tableID != "" {
				if table := s.Table(tableID); table != nil {
					s.logger.Info("cleaning up disconnected player", "player", playerID, "table", tableID)
					if _, err := table.Leave(playerID); err == nil {
						s.publishState(table)
					}
				}
			}
			s.logger.Info("client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// publishState broadcasts the table's public snapshot and privately
// prompts the human seat to act, if any.
func (s *Server) publishState(table *Table) {
	state := table.State()
	msg, err := NewMessage(MessageTypeGameState, GameStateData{TableID: table.ID(), State: state})
	if err != nil {
		s.logger.Error("failed to build state message", "error", err)
		return
	}
	s.broadcastToTable(table.ID(), msg)

	if seat := table.ActiveHumanSeat(); seat >= 0 {
		s.promptSeat(table, seat)
	}
}

func (s *Server) promptSeat(table *Table, seat int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.GetTable() != table.ID() {
			continue
		}
		idx, ok := table.SeatFor(conn.GetPlayer())
		if !ok || idx != seat {
			continue
		}
		_, view, err := table.ViewFor(conn.GetPlayer())
		if err != nil {
			continue
		}
		msg, err := NewMessage(MessageTypeActionNeeded, ActionNeededData{TableID: table.ID(), Seat: seat, View: view})
		if err != nil {
			continue
		}
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("failed to prompt seat", "seat", seat, "error", err)
		}
	}
}

func (s *Server) broadcastToTable(tableID string, msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.GetTable() == tableID {
			if err := conn.SendMessage(msg); err != nil {
				s.logger.Error("failed to send message", "error", err, "player", conn.GetPlayer())
			}
		}
	}
}
