package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/iqbalbaharum/serum-event-tracker/internal/generators"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsHandler struct {
	hub *generators.Hub
}

func NewWsHandler(hub *generators.Hub) *wsHandler {
	return &wsHandler{hub: hub}
}

// Serve upgrades the connection and parks it on the hub until the consumer
// disconnects. Upgrade writes its own error response on failure.
func (h *wsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket | %v", err)
		return
	}

	h.hub.Attach(conn)
}
