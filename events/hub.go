// Package events fans out post lifecycle notifications to websocket
// subscribers. Only published posts are ever broadcast, so the stream
// cannot leak drafts.
package events

import (
	"encoding/json"

	"github.com/salvadorperezm/ror-api-creation/internal/post/model"
	"github.com/salvadorperezm/ror-api-creation/pkg/logger"
)

const (
	PostCreated = "post.created" // A published post was created
	PostUpdated = "post.updated" // A published post was updated
)

type Event struct {
	Type string             `json:"type"`
	Post model.PostResponse `json:"post"`
}

type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan Event, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run owns the client set; all membership changes and broadcasts go
// through its channels, so no locking is needed.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			logger.Sugar.Infof("Event stream client connected (%d active)", len(h.clients))

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}

		case event := <-h.Broadcast:
			// Marshal the event once to be sent to all clients.
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					// The client's send buffer is full, it is lagging.
					// Drop it rather than block the hub.
					logger.Sugar.Warnf("Event stream client lagging, disconnecting")
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Publish queues an event for broadcast. Safe to call on a nil hub and
// never blocks; if the hub's buffer is full the event is dropped.
func (h *Hub) Publish(eventType string, post model.PostResponse) {
	if h == nil {
		return
	}
	event := Event{Type: eventType, Post: post}
	select {
	case h.Broadcast <- event:
	default:
		logger.Sugar.Warnf("Event stream backlogged, dropping %s for post %d", eventType, post.ID)
	}
}
