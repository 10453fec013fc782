// Package server broadcasts tournament events to websocket spectators.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/dilemma/internal/monitor"
)

// Hub is a monitor.Monitor that fans every event out to connected
// websocket clients as a Message. Spectators that join mid-tournament are
// first sent the most recent tournament_start.
type Hub struct {
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	logger      *log.Logger
	clock       quartz.Clock
	mu          sync.RWMutex
	lastStart   *Message
	closed      bool
}

// NewHub creates a hub with no clients
func NewHub(logger *log.Logger, clock quartz.Clock) *Hub {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			// Spectator feed is read-only; any origin may watch
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
		clock:       clock,
	}
}

// Handler serves /ws and /health
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

// ListenAndServe serves the hub on addr until ctx is cancelled
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("Starting WebSocket server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("websocket server: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, h.logger)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.connections[client] = true
	if h.lastStart != nil {
		_ = client.SendMessage(h.lastStart)
	}
	total := len(h.connections)
	h.mu.Unlock()

	h.logger.Info("Client connected", "total", total)
	client.Start()

	go func() {
		<-client.Done()
		h.unregister(client)
	}()
}

func (h *Hub) unregister(client *Connection) {
	h.mu.Lock()
	delete(h.connections, client)
	total := len(h.connections)
	h.mu.Unlock()
	h.logger.Info("Client disconnected", "total", total)
}

func (h *Hub) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// Broadcast sends a message to every connected client
func (h *Hub) Broadcast(msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections {
		if err := conn.SendMessage(msg); err != nil {
			h.logger.Debug("Dropped message for client", "type", msg.Type, "error", err)
		}
	}
}

func (h *Hub) publish(messageType MessageType, data any) *Message {
	msg, err := NewMessage(messageType, data, h.clock.Now())
	if err != nil {
		h.logger.Error("Failed to encode event", "type", messageType, "error", err)
		return nil
	}
	h.Broadcast(msg)
	return msg
}

func (h *Hub) OnTournamentStart(start monitor.TournamentStart) {
	msg := h.publish(MessageTypeTournamentStart, start)
	h.mu.Lock()
	h.lastStart = msg
	h.mu.Unlock()
}

func (h *Hub) OnTurn(turn monitor.TurnEvent) {
	h.publish(MessageTypeTurn, turn)
}

func (h *Hub) OnMatchComplete(outcome monitor.MatchOutcome) {
	h.publish(MessageTypeMatchComplete, outcome)
}

func (h *Hub) OnTournamentComplete(summary monitor.Summary) {
	h.publish(MessageTypeTournamentComplete, summary)
}

var _ monitor.Monitor = (*Hub)(nil)
