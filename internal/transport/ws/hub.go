package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub tracks every open dashboard connection, grouped by operator, and
// fans events out to them.
type Hub struct {
	logger *logrus.Logger

	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg
	stopped    chan struct{}
}

type broadcastMsg struct {
	operatorID uuid.UUID
	data       []byte
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
		stopped:    make(chan struct{}),
	}
}

// Run is the Hub's event loop; it returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, conns := range h.clients {
				for client := range conns {
					close(client.send)
					close(client.done)
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]struct{})
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			conns, ok := h.clients[client.operatorID]
			if !ok {
				conns = make(map[*Client]struct{})
				h.clients[client.operatorID] = conns
			}
			conns[client] = struct{}{}
			n := len(conns)
			h.mu.Unlock()

			h.logger.WithFields(logrus.Fields{
				"operator_id": client.operatorID,
				"connections": n,
			}).Debug("Dashboard connected")

		case client := <-h.unregister:
			h.mu.Lock()
			removed := h.remove(client)
			h.mu.Unlock()

			if removed {
				h.logger.WithField("operator_id", client.operatorID).Debug("Dashboard disconnected")
			}

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[msg.operatorID] {
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - disconnect
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove drops client and closes its channels. Callers hold h.mu.
func (h *Hub) remove(client *Client) bool {
	conns, ok := h.clients[client.operatorID]
	if !ok {
		return false
	}
	if _, ok := conns[client]; !ok {
		return false
	}
	delete(conns, client)
	if len(conns) == 0 {
		delete(h.clients, client.operatorID)
	}
	close(client.send)
	close(client.done)
	return true
}

// Connected reports how many dashboards the operator has open.
func (h *Hub) Connected(operatorID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[operatorID])
}

// BroadcastToOperator sends an event to every dashboard of an operator.
func (h *Hub) BroadcastToOperator(operatorID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Warn("ws hub: marshal error")
		return
	}
	select {
	case h.broadcast <- &broadcastMsg{operatorID: operatorID, data: data}:
	case <-h.stopped:
	}
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.stopped:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stopped:
	}
}
