package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID int64

	// subscribedChannels tracks which channels this client listens to.
	subscribedChannels map[int64]struct{}
	mu                 sync.RWMutex

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64) *Client {
	return &Client{
		hub:                hub,
		conn:               conn,
		userID:             userID,
		subscribedChannels: make(map[int64]struct{}),
		send:               make(chan []byte, sendBufSize),
		done:               make(chan struct{}),
	}
}

// IsSubscribed checks if this client is subscribed to a channel.
func (c *Client) IsSubscribed(channelID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.subscribedChannels[channelID]
	return ok
}

// Subscribe adds a channel subscription.
func (c *Client) Subscribe(channelID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribedChannels[channelID] = struct{}{}
}

// Unsubscribe removes a channel subscription.
func (c *Client) Unsubscribe(channelID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscribedChannels, channelID)
}

// ReadPump reads events from the WebSocket and routes them to the Hub.
func (c *Client) ReadPump() {
	defer func() {
		c.detach()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		if err := wsjson.Read(context.Background(), c.conn, &event); err != nil {
			if websocket.CloseStatus(err) == -1 {
				c.hub.log.Debug().Err(err).Int64("u_id", c.userID).Msg("ws read error")
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes events from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// detach hands the client back to the hub for removal. If the hub has
// already shut down there is nobody left to notify.
func (c *Client) detach() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.shutdown:
	}
}

// handleEvent routes an incoming client event.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeChannelSubscribe:
		var p ChannelPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid channel.subscribe payload")
			return
		}
		c.Subscribe(p.ChannelID)

	case EventTypeChannelUnsubscribe:
		var p ChannelPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.sendError("INVALID_PAYLOAD", "invalid channel.unsubscribe payload")
			return
		}
		c.Unsubscribe(p.ChannelID)

	case EventTypePing:
		c.sendPong()

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, nil, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
