// Package ws pushes board-invalidation events to connected dashboards. The
// server never receives commands over the socket; clients reconnect and
// refetch over HTTP when told the board changed.
package ws

import (
	"encoding/json"
	"log/slog"
)

// Hub maintains the set of active clients and broadcasts messages to the
// clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

type boardUpdatedEvent struct {
	Event      string `json:"event"`
	Generation uint64 `json:"generation"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// BoardUpdated implements services.Notifier. The send never blocks a
// mutation; if the hub is saturated the event is dropped and clients catch
// up on their next fetch.
func (h *Hub) BoardUpdated(generation uint64) {
	message, err := json.Marshal(boardUpdatedEvent{
		Event:      "board_updated",
		Generation: generation,
	})
	if err != nil {
		slog.Error("Failed to marshal board event", "error", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		slog.Warn("Board event dropped, broadcast channel full")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) broadcastToClients(message []byte) {
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}
