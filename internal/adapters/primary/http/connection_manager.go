package http

import (
	"context"
	"sync"

	"github.com/deckgen/deckgen/internal/domain/ports"
)

// Connection represents a WebSocket connection subscribed to one
// presentation's edit events.
type Connection struct {
	ID             string
	PresentationID string
	Send           chan ports.EditEvent
}

type broadcastRequest struct {
	presentationID string
	event          ports.EditEvent
}

// ConnectionManager manages WebSocket connections grouped by
// presentation.
type ConnectionManager struct {
	connections map[string]map[string]*Connection // presentation id -> conn id -> conn
	broadcast   chan broadcastRequest
	register    chan *Connection
	unregister  chan string
	mu          sync.RWMutex
	done        chan struct{}
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]map[string]*Connection),
		broadcast:   make(chan broadcastRequest, 256),
		register:    make(chan *Connection),
		unregister:  make(chan string),
		done:        make(chan struct{}),
	}
}

// Run starts the connection manager main loop
func (cm *ConnectionManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(cm.done)
			return
		case conn := <-cm.register:
			cm.mu.Lock()
			room, ok := cm.connections[conn.PresentationID]
			if !ok {
				room = make(map[string]*Connection)
				cm.connections[conn.PresentationID] = room
			}
			room[conn.ID] = conn
			cm.mu.Unlock()

		case id := <-cm.unregister:
			cm.mu.Lock()
			for presentationID, room := range cm.connections {
				if conn, ok := room[id]; ok {
					delete(room, id)
					close(conn.Send)
					if len(room) == 0 {
						delete(cm.connections, presentationID)
					}
					break
				}
			}
			cm.mu.Unlock()

		case req := <-cm.broadcast:
			cm.mu.Lock()
			room := cm.connections[req.presentationID]
			for _, conn := range room {
				select {
				case conn.Send <- req.event:
				default:
					// Client too slow, close connection
					close(conn.Send)
					delete(room, conn.ID)
				}
			}
			cm.mu.Unlock()
		}
	}
}

// RegisterConnection adds a new connection directly
func (cm *ConnectionManager) RegisterConnection(conn *Connection) {
	select {
	case cm.register <- conn:
	case <-cm.done:
	}
}

// Unregister removes a connection
func (cm *ConnectionManager) Unregister(connID string) {
	select {
	case cm.unregister <- connID:
	case <-cm.done:
	}
}

// Broadcast sends an event to every connection subscribed to the
// presentation.
func (cm *ConnectionManager) Broadcast(presentationID string, event ports.EditEvent) {
	select {
	case cm.broadcast <- broadcastRequest{presentationID: presentationID, event: event}:
	case <-cm.done:
		// Manager is shutting down
	}
}

// CloseAll closes all connections
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for presentationID, room := range cm.connections {
		for id, conn := range room {
			close(conn.Send)
			delete(room, id)
		}
		delete(cm.connections, presentationID)
	}
}
