// Package server tracks the terminal sessions playing on one process and
// coordinates their shutdown. Every session runs its own independent game.
package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// GameServer is the interface clients use to communicate with the session hub.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Players() int
}

// Server keeps the set of connected clients.
type Server struct {
	clients      map[int]*ClientHandle
	nextClientID int
	shuttingDown bool
	mu           sync.RWMutex
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's registration with the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (shutdown, etc.)
	Joined   time.Time
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates a new session hub. A nil logger uses log.Default().
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		logger:       logger,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// Clients registering after Shutdown started are told to shut down immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
		Joined:   time.Now(),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}

	s.logger.Debug("client registered", "id", handle.ID, "user", username, "players", len(s.clients))
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	delete(s.clients, clientID)
	s.logger.Debug("client unregistered", "id", clientID, "user", handle.Username,
		"played", time.Since(handle.Joined).Round(time.Second), "players", len(s.clients))
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// Returns the number of clients still connected when it gave up.
func (s *Server) Shutdown(timeout time.Duration) int {
	// Notify all connected clients about the shutdown
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := s.Players(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return s.Players()
		case <-ticker.C:
		}
	}
}
