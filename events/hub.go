package events

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event is one published state change: a full cart snapshot, an order
// status message, or a gift-card ledger message. Observers always receive
// the latest snapshot, never a diff.
type Event struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans events out to websocket clients and in-process subscribers.
// A nil *Hub is valid and drops everything, so components can publish
// unconditionally.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	subs  []chan Event
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Publish(topic string, payload interface{}) {
	if h == nil {
		return
	}
	ev := Event{Topic: topic, Payload: payload}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		select {
		case sub <- ev:
		default: // slow subscriber, drop rather than block a mutation
		}
	}

	if len(h.conns) == 0 {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// Subscribe returns a buffered channel receiving every event published
// after the call.
func (h *Hub) Subscribe() <-chan Event {
	ch := make(chan Event, 64)
	h.mu.Lock()
	h.subs = append(h.subs, ch)
	h.mu.Unlock()
	return ch
}

// ServeWS upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			delete(h.conns, conn)
			h.mu.Unlock()
			conn.Close()
			break
		}
	}
}
