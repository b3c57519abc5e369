package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tcgengine/internal/events"
	"tcgengine/internal/logging"
)

// Hub fans one Session's event bus out to every websocket connection
// watching it (spec §4.7: delivery is synchronous and single-writer —
// the bus calls Hub.broadcast inline from the game loop goroutine, and
// Hub only ever forwards, never mutates). Grounded on the teacher's
// websocket Hub (internal/delivery/websocket/hub.go): a connection set
// plus register/unregister channels drained by one run loop; broadcast
// writes straight to each connection's send channel.
type Hub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]chan []byte

	register   chan *websocket.Conn
	unregister chan *websocket.Conn
}

func NewHub() *Hub {
	h := &Hub{
		connections: make(map[*websocket.Conn]chan []byte),
		register:    make(chan *websocket.Conn),
		unregister:  make(chan *websocket.Conn),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			send := make(chan []byte, 64)
			h.connections[conn] = send
			h.mu.Unlock()
			go h.writePump(conn, send)
		case conn := <-h.unregister:
			h.mu.Lock()
			if send, ok := h.connections[conn]; ok {
				close(send)
				delete(h.connections, conn)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, send chan []byte) {
	for msg := range send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logging.Get().Debug("websocket write failed", zap.Error(err))
			h.unregister <- conn
			return
		}
	}
	conn.Close()
}

// broadcast is handed to Engine.Subscribe(nil, ...) so every event kind
// reaches every connection, JSON-encoded with its Kind as a discriminant
// field.
func (h *Hub) broadcast(ev events.Event) {
	payload, err := json.Marshal(struct {
		Kind string      `json:"kind"`
		Data events.Event `json:"data"`
	}{Kind: ev.Kind(), Data: ev})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, send := range h.connections {
		select {
		case send <- payload:
		default:
			// a slow consumer drops messages rather than blocking the
			// single-writer game loop goroutine that published this event.
		}
	}
}

// Register adds a freshly-upgraded connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.register <- conn
}

// Unregister removes a connection, e.g. after its read loop exits.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.unregister <- conn
}
