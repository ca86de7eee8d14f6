package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Hub keeps track of live connections and the rooms they are subscribed to.
// None of its methods block on the network: frames are queued on each
// client's send buffer and written by the client's write pump.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]*client
	closed  bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]*client),
	}
}

func (that *Hub) Subscribe(roomID, connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	conn, ok := that.clients[connID]
	if !ok {
		return
	}

	if conn.roomID != "" && conn.roomID != roomID {
		that.unsubscribe(conn.roomID, connID)
	}

	members, ok := that.rooms[roomID]
	if !ok {
		members = make(map[string]*client)
		that.rooms[roomID] = members
	}

	members[connID] = conn
	conn.roomID = roomID
}

func (that *Hub) Unsubscribe(roomID, connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.unsubscribe(roomID, connID)
}

// Broadcast queues event for every connection subscribed to its room, the originator included.
func (that *Hub) Broadcast(event *entity.Event) {
	log := that.logger.With("method", "Broadcast", "roomID", event.RoomID, "event", event.Kind)

	data, err := encodeEvent(event)
	if err != nil {
		log.Error("failed to encode event", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, member := range that.rooms[event.RoomID] {
		if !member.enqueue(data) {
			log.Warn("send buffer is full, closing connection", "connID", member.id)
			member.close()
		}
	}
}

// Send queues data for a single connection.
func (that *Hub) Send(connID string, data []byte) {
	that.mu.RLock()
	conn, ok := that.clients[connID]
	that.mu.RUnlock()

	if !ok {
		return
	}

	if !conn.enqueue(data) {
		that.logger.Warn("send buffer is full, closing connection", "connID", connID)
		conn.close()
	}
}

func (that *Hub) ConnectionCount() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// CloseAll closes every live connection and every connection registered
// afterwards. Read loops then end and report the disconnect as usual.
func (that *Hub) CloseAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true

	for _, conn := range that.clients {
		conn.close()
	}
}

func (that *Hub) register(conn *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		conn.close()
		return
	}

	that.clients[conn.id] = conn
}

func (that *Hub) unregister(conn *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, conn.id)

	if conn.roomID != "" {
		that.unsubscribe(conn.roomID, conn.id)
	}
}

// unsubscribe must be called with that.mu held.
func (that *Hub) unsubscribe(roomID, connID string) {
	members, ok := that.rooms[roomID]
	if !ok {
		return
	}

	if conn, ok := members[connID]; ok {
		conn.roomID = ""
	}

	delete(members, connID)

	if len(members) == 0 {
		delete(that.rooms, roomID)
	}
}
