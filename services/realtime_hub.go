package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// MessageWriter is the part of a websocket connection the hub writes to.
type MessageWriter interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type WSClient struct {
	UserEmail string
	Conn      MessageWriter
}

// RealtimeHub fans notifications out to every open socket of a user.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserEmail] == nil {
		h.clients[c.UserEmail] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserEmail][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserEmail]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserEmail)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast writes payload as JSON to every socket of the user. Writes hold
// the lock because a websocket connection allows a single concurrent writer.
func (h *RealtimeHub) Broadcast(userEmail string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[userEmail] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// Connected reports how many sockets the user has open.
func (h *RealtimeHub) Connected(userEmail string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userEmail])
}
