package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/metrics"
	"github.com/gofiber/websocket/v2"
)

// ClientConnection wraps a WebSocket connection with metadata
type ClientConnection struct {
	Conn       *websocket.Conn
	UserID     uint
	LastPong   time.Time
	PingTicker *time.Ticker
	CloseChan  chan struct{}
}

// Hub is the presence registry: the process-local mapping from user id to
// their live connection, plus per-thread rooms for in-conversation fan-out.
// One binding per user: a re-announce (second tab) rebinds to the newest
// connection. Nothing here is persisted; unread counts and history always
// come from the store, never from presence state.
type Hub struct {
	clients    map[uint]*ClientConnection
	rooms      map[uint]map[uint]struct{} // thread id -> member user ids
	clientsMux sync.RWMutex

	pingInterval time.Duration
	pongTimeout  time.Duration
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	hub := &Hub{
		clients:      make(map[uint]*ClientConnection),
		rooms:        make(map[uint]map[uint]struct{}),
		pingInterval: 30 * time.Second,
		pongTimeout:  90 * time.Second,
	}

	go hub.connectionHealthChecker()

	return hub
}

// Register binds a user to a connection. If the user already has a binding
// (another tab), the old one is torn down and the newest announce wins.
func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	clientConn := &ClientConnection{
		Conn:       conn,
		UserID:     userID,
		LastPong:   time.Now(),
		PingTicker: time.NewTicker(h.pingInterval),
		CloseChan:  make(chan struct{}),
	}

	conn.SetPongHandler(func(appData string) error {
		h.clientsMux.Lock()
		if client, exists := h.clients[userID]; exists {
			client.LastPong = time.Now()
		}
		h.clientsMux.Unlock()
		return nil
	})

	conn.SetReadDeadline(time.Now().Add(h.pongTimeout))

	h.clientsMux.Lock()
	if old, exists := h.clients[userID]; exists {
		old.PingTicker.Stop()
		close(old.CloseChan)
	}
	h.clients[userID] = clientConn
	total := len(h.clients)
	h.clientsMux.Unlock()

	metrics.WSConnections.Set(float64(total))

	go h.pingRoutine(clientConn)

	log.Printf("User %d connected to hub (total: %d)", userID, total)
}

// Unregister removes the user's binding and drops them from every room.
func (h *Hub) Unregister(userID uint) {
	h.clientsMux.Lock()
	if client, exists := h.clients[userID]; exists {
		if client.PingTicker != nil {
			client.PingTicker.Stop()
		}
		close(client.CloseChan)
	}
	delete(h.clients, userID)
	for threadID, members := range h.rooms {
		delete(members, userID)
		if len(members) == 0 {
			delete(h.rooms, threadID)
		}
	}
	total := len(h.clients)
	h.clientsMux.Unlock()

	metrics.WSConnections.Set(float64(total))
	log.Printf("User %d disconnected from hub (total: %d)", userID, total)
}

// JoinThread adds the user to a thread room so they receive in-room events.
func (h *Hub) JoinThread(threadID, userID uint) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	if _, ok := h.rooms[threadID]; !ok {
		h.rooms[threadID] = make(map[uint]struct{})
	}
	h.rooms[threadID][userID] = struct{}{}
}

// LeaveThread removes the user from a thread room.
func (h *Hub) LeaveThread(threadID, userID uint) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	if members, ok := h.rooms[threadID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(h.rooms, threadID)
		}
	}
}

// IsOnline checks if a user is connected
func (h *Hub) IsOnline(userID uint) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	_, exists := h.clients[userID]
	return exists
}

// SendToUser delivers an event to the user's live connection, if any.
// Delivery is best-effort: no binding means the event is silently dropped,
// never an error to the caller. A dead connection is unregistered.
func (h *Hub) SendToUser(userID uint, data interface{}) {
	h.clientsMux.RLock()
	clientConn, exists := h.clients[userID]
	h.clientsMux.RUnlock()

	if !exists {
		metrics.BroadcastsDropped.Inc()
		return
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling data for user %d: %v", userID, err)
		return
	}

	if err := clientConn.Conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
		log.Printf("Error sending message to user %d: %v", userID, err)
		h.Unregister(userID)
	}
}

// BroadcastToThread delivers an event to every room member with a live
// connection.
func (h *Hub) BroadcastToThread(threadID uint, data interface{}) {
	h.clientsMux.RLock()
	members := make([]uint, 0, len(h.rooms[threadID]))
	for userID := range h.rooms[threadID] {
		members = append(members, userID)
	}
	h.clientsMux.RUnlock()

	for _, userID := range members {
		h.SendToUser(userID, data)
	}
}

// Broadcast sends data to all connected users
func (h *Hub) Broadcast(data interface{}) {
	h.clientsMux.RLock()
	clients := make(map[uint]*ClientConnection, len(h.clients))
	for id, conn := range h.clients {
		clients[id] = conn
	}
	h.clientsMux.RUnlock()

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling broadcast data: %v", err)
		return
	}

	for userID, clientConn := range clients {
		if err := clientConn.Conn.WriteMessage(websocket.TextMessage, jsonData); err != nil {
			log.Printf("Error broadcasting to user %d: %v", userID, err)
			h.Unregister(userID)
		}
	}
}

// GetOnlineUsers returns list of currently connected user IDs
func (h *Hub) GetOnlineUsers() []uint {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	users := make([]uint, 0, len(h.clients))
	for userID := range h.clients {
		users = append(users, userID)
	}
	return users
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

// ThreadMembers returns the user ids currently joined to a thread room.
func (h *Hub) ThreadMembers(threadID uint) []uint {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	members := make([]uint, 0, len(h.rooms[threadID]))
	for userID := range h.rooms[threadID] {
		members = append(members, userID)
	}
	return members
}

// pingRoutine sends periodic ping messages to keep connection alive
func (h *Hub) pingRoutine(client *ClientConnection) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Ping routine recovered from panic for user %d: %v", client.UserID, r)
		}
	}()

	for {
		select {
		case <-client.CloseChan:
			return
		case <-client.PingTicker.C:
			h.clientsMux.RLock()
			current, exists := h.clients[client.UserID]
			h.clientsMux.RUnlock()

			// Stop if unregistered or superseded by a newer announce.
			if !exists || current != client {
				return
			}

			if err := client.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				log.Printf("Ping failed for user %d: %v", client.UserID, err)
				h.Unregister(client.UserID)
				return
			}
		}
	}
}

// connectionHealthChecker monitors connection health and removes dead connections
func (h *Hub) connectionHealthChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		h.clientsMux.RLock()
		deadConnections := make([]uint, 0)
		now := time.Now()

		for userID, client := range h.clients {
			if now.Sub(client.LastPong) > h.pongTimeout {
				deadConnections = append(deadConnections, userID)
			}
		}
		h.clientsMux.RUnlock()

		for _, userID := range deadConnections {
			log.Printf("Removing dead connection for user %d (no pong received)", userID)
			h.Unregister(userID)
		}
	}
}
