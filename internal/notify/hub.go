// Package notify delivers status-changed events to their consumers: a hub
// of WebSocket clients (browser toasts) and an optional Telegram channel
// for administrators. Both are registered as observers on the complaint
// lifecycle service; nothing in here mutates complaint state.
package notify

import (
	"encoding/json"
	"log"

	"github.com/kangmariz/barangay-complaint-corner/internal/models"
	"github.com/kangmariz/barangay-complaint-corner/internal/storage"
)

// Hub fans StatusEvents out to every connected WebSocket client.
type Hub struct {
	Clients map[*Client]bool

	RegisterCh   chan *Client
	UnregisterCh chan *Client
	BroadcastCh  chan models.StatusEvent

	// Storage is optional: when it carries a Redis client, events travel
	// through Pub/Sub so every server process sees every event. Without
	// it the hub only broadcasts what was published in-process.
	Storage *storage.Service
}

// NewHub creates a hub. Pass nil storage to run without Redis fan-out.
func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[*Client]bool),
		RegisterCh:   make(chan *Client),
		UnregisterCh: make(chan *Client),
		BroadcastCh:  make(chan models.StatusEvent, 16),
		Storage:      s,
	}
}

// HandleStatusEvent is the observer hook registered on the lifecycle
// service. With Redis behind the hub the event goes through Pub/Sub and
// comes back via the listener; otherwise it is broadcast directly.
func (h *Hub) HandleStatusEvent(ev models.StatusEvent) {
	if h.Storage != nil {
		if err := h.Storage.PublishStatusEvent(ev); err != nil {
			log.Printf("ERROR: Failed to publish status event for complaint %d: %v", ev.ID, err)
		}
		return
	}
	h.BroadcastCh <- ev
}

// startPubSubListener feeds events published by any server process into
// the broadcast channel.
func (h *Hub) startPubSubListener() {
	go func() {
		pubsub := h.Storage.SubscribeStatusEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.StatusEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to unmarshal status event: %v", err)
				continue
			}
			h.BroadcastCh <- ev
		}
	}()
}

// Run is the hub's dispatcher loop. Start it in its own goroutine.
func (h *Hub) Run() {
	if h.Storage != nil {
		h.startPubSubListener()
	}

	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client] = true

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}

		case ev := <-h.BroadcastCh:
			for client := range h.Clients {
				select {
				case client.Send <- ev:
				default:
					// Slow client: drop it rather than stall the loop.
					delete(h.Clients, client)
					close(client.Send)
				}
			}
		}
	}
}
