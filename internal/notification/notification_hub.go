package notification

import (
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	Type string
	Data string
}

type Client struct {
	ID        string
	SessionID string
	Events    chan Event
}

// Hub fans events out to the SSE streams a session has open.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

func NewHub(logger ...*zap.Logger) *Hub {
	l := zap.L().Named("notification.hub")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.hub")
	}
	return &Hub{clients: make(map[string]*Client), logger: l}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.logger.Debug("stream client registered",
		zap.String("client_id", client.ID),
		zap.String("session_id", client.SessionID),
		zap.Int("total", len(h.clients)),
	)
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		h.logger.Debug("stream client unregistered", zap.String("client_id", clientID), zap.Int("total", len(h.clients)))
	}
}

func (h *Hub) SendToSession(sessionID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.SessionID != sessionID {
			continue
		}
		select {
		case client.Events <- event:
		default:
			h.logger.Warn("stream client buffer full, skipping event", zap.String("client_id", client.ID))
		}
	}
}

// CloseSession ends every stream of a session that logged out.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		if client.SessionID == sessionID {
			close(client.Events)
			delete(h.clients, id)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
