package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tahsinhasem/MonopolyDeal/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin policy belongs to the deployment proxy.
	CheckOrigin: func(*http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	// stateBuffer bounds the per-client backlog; a slow client only ever
	// needs the newest snapshot, so older ones are dropped.
	stateBuffer = 8
)

// handleWatch upgrades to a WebSocket and streams every committed state of
// the game, starting with the current one.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	state, err := s.store.Load(r.Context(), gameID)
	if err != nil {
		s.writeLoadError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	updates := make(chan *game.GameState, stateBuffer)
	cancel := s.store.Subscribe(gameID, func(committed *game.GameState) {
		select {
		case updates <- committed:
		default:
			// Client is behind; it will catch up on the next commit.
		}
	})

	go s.writeStates(conn, state, updates, cancel)
	go discardReads(conn)
}

func (s *Server) writeStates(conn *websocket.Conn, first *game.GameState, updates <-chan *game.GameState, cancel func()) {
	defer func() {
		cancel()
		conn.Close()
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	send := func(state *game.GameState) bool {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(state); err != nil {
			s.logger.Debug("websocket write failed", zap.Error(err))
			return false
		}
		return true
	}
	if !send(first) {
		return
	}
	for {
		select {
		case state, ok := <-updates:
			if !ok || !send(state) {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// discardReads drains the connection so close and pong frames are
// processed; watchers never send application messages.
func discardReads(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
