package generators

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	// Per-client backlog before the hub starts dropping messages.
	clientBuffer = 256
)

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans decoded-event payloads out to every connected websocket
// consumer. Slow consumers lose messages rather than stalling the relay.
type Hub struct {
	mu      sync.RWMutex
	clients map[*hubClient]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*hubClient]struct{}),
	}
}

// Attach registers an upgraded connection and services it until the peer
// goes away. It blocks, so callers run it from the request handler.
func (h *Hub) Attach(conn *websocket.Conn) {
	client := &hubClient{
		conn: conn,
		send: make(chan []byte, clientBuffer),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()
	client.readPump()
	h.detach(client)
}

func (h *Hub) detach(client *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
}

// Broadcast queues message for every connected client. Clients whose
// buffer is full are skipped.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			log.Printf("ws hub: dropping message for slow consumer %s", client.conn.RemoteAddr())
		}
	}
}

// ClientCount reports the number of attached consumers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (c *hubClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; its job is noticing disconnects and
// answering pings.
func (c *hubClient) readPump() {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
