package ws

import (
	"context"
	"net/http"

	"nhooyr.io/websocket"
)

// TokenResolver maps an opaque session token to a user id.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (int64, bool, error)
}

// ServeWS returns an HTTP handler that upgrades to WebSocket.
// Auth is done via ?token=xxx query param (WebSocket can't send
// headers); the token resolves through the session table like every
// other entry point.
func ServeWS(hub *Hub, resolver TokenResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userID, ok, err := resolver.Resolve(r.Context(), token)
		if err != nil || !ok {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			hub.log.Warn().Err(err).Msg("ws accept error")
			return
		}

		client := NewClient(hub, conn, userID)
		select {
		case hub.register <- client:
		case <-hub.shutdown:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
