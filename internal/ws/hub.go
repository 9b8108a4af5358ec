package ws

import (
	"encoding/json"
	"sync"

	"brand-portal/internal/models"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection for an authenticated user.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
}

// Hub fans notifications out to every open connection of their recipient.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint][]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint][]*Client)}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.UserID] = append(h.clients[client.UserID], client)
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[client.UserID]
	for i, c := range conns {
		if c == client {
			h.clients[client.UserID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
	}
}

// Publish sends the notification to every connection of its recipient.
// Dead connections are dropped silently; delivery is best-effort.
func (h *Hub) Publish(n *models.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*Client, len(h.clients[n.UserID]))
	copy(conns, h.clients[n.UserID])
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			c.Conn.Close()
			h.Unregister(c)
		}
	}
}
