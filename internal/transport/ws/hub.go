package ws

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Hub manages all active WebSocket clients and routes events.
type Hub struct {
	// clients maps u_id → client.
	clients map[int64]*Client
	log     zerolog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg

	// shutdown is closed when Run exits so clients never block on the
	// register/unregister channels after the loop stops draining them.
	shutdown chan struct{}
}

type broadcastMsg struct {
	channelID int64
	data      []byte
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]*Client),
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
		shutdown:   make(chan struct{}),
	}
}

// Run starts the Hub's main event loop and blocks until ctx is
// cancelled.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.shutdown)
			for _, client := range h.clients {
				close(client.send)
				close(client.done)
			}
			h.clients = make(map[int64]*Client)
			return ctx.Err()

		case client := <-h.register:
			h.clients[client.userID] = client
			h.log.Debug().Int64("u_id", client.userID).Int("total", len(h.clients)).Msg("ws client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				h.log.Debug().Int64("u_id", client.userID).Int("total", len(h.clients)).Msg("ws client disconnected")
			}

		case msg := <-h.broadcast:
			for _, client := range h.clients {
				if !client.IsSubscribed(msg.channelID) {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - disconnect.
					delete(h.clients, client.userID)
					close(client.send)
					close(client.done)
				}
			}
		}
	}
}

// BroadcastToChannel sends an event to all subscribers of a channel.
func (h *Hub) BroadcastToChannel(channelID int64, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("ws hub: marshal error")
		return
	}
	h.broadcast <- &broadcastMsg{channelID: channelID, data: data}
}
