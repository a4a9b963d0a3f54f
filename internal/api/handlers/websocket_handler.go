package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jmorell/newsroom-be/internal/auth"
	ws "github.com/jmorell/newsroom-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles upgrading HTTP connections to the live
// article feed.
type WebSocketHandler struct {
	hub    *ws.Hub
	tokens *auth.TokenManager
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, tokens *auth.TokenManager) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, tokens: tokens}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering happens at the CORS layer for REST routes;
		// the feed itself is gated by the token check below.
		return true
	},
}

// Serve handles the feed connection request. Browsers cannot set custom
// headers on websocket upgrades, so the token travels as a query
// parameter instead of x-auth-token.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		respondMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	if _, err := h.tokens.Verify(tokenStr); err != nil {
		respondMsg(w, http.StatusBadRequest, "Token is not valid")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	category := r.URL.Query().Get("category")
	client := ws.NewClient(h.hub, conn, category)
	h.hub.Register <- client

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleIncomingMessage)
		h.hub.Unregister <- client
	}()
}

// handleIncomingMessage processes messages received from a feed client.
func (h *WebSocketHandler) handleIncomingMessage(client *ws.Client, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Error().Err(err).Bytes("message", message).Msg("Error decoding websocket message")
		return
	}

	switch msg.Action {
	case "subscribe":
		category, ok := msg.Payload.(string)
		if !ok || category == "" {
			client.Send <- ws.NewErrorMessage("Invalid category in payload")
			return
		}
		log.Info().Str("category", category).Msg("Feed client subscribed to category")
		h.hub.Subscribe(client, category)

	default:
		log.Warn().Str("action", msg.Action).Msg("Unknown websocket action received")
		client.Send <- ws.NewErrorMessage("Unknown action: " + msg.Action)
	}
}
