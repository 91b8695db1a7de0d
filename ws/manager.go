package ws

import (
	"sync"

	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/services/dto"
)

// Event is the envelope every pushed payload travels in.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	EventNotification = "notification"
	EventMessage      = "message"
)

// WebSocketManager tracks connected clients by user id and pushes
// notification and message events to them. A user has at most one
// connection; a new one replaces the old.
type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *WebSocketManager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if old, ok := m.clients[client.ID]; ok {
				close(old.Send)
			}
			m.clients[client.ID] = client
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.ID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.ID]; ok && current == client {
				close(client.Send)
				delete(m.clients, client.ID)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.ID, "total", total)
		}
	}
}

func (m *WebSocketManager) sendToUser(userID string, event Event) {
	// The send happens under the read lock so Run cannot close the
	// channel between the lookup and the send. The select never blocks,
	// so holding the lock here is safe.
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[userID]
	if !ok {
		return
	}

	select {
	case client.Send <- event:
	default:
		// Slow consumer. Drop the connection rather than block.
		go func() { m.unregister <- client }()
	}
}

// PushNotification implements services.NotificationPusher.
func (m *WebSocketManager) PushNotification(userID string, notification dto.NotificationDTO) {
	m.sendToUser(userID, Event{Type: EventNotification, Data: notification})
}

// PushMessage implements services.MessagePusher.
func (m *WebSocketManager) PushMessage(userID string, message dto.MessageDTO) {
	m.sendToUser(userID, Event{Type: EventMessage, Data: message})
}

func (m *WebSocketManager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *WebSocketManager) IsClientConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.clients[userID]
	return exists
}
