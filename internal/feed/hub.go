package feed

import (
	"log"
	"net/http"
	"sync"
	"time"

	"meatstore-backend/internal/metrics"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeTimeout = 5 * time.Second

// wsClient wraps a connection with its own write lock: concurrent
// broadcasts must never interleave writes on one connection.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(payload)
}

// Hub fans live summary payloads out to WebSocket clients. Clients
// only receive; anything they send is drained and ignored.
type Hub struct {
	clients    map[*wsClient]bool
	clientsMux sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*wsClient]bool),
	}
}

// HandleWebSocket upgrades the connection and parks it in the client
// set until the peer goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	client := &wsClient{conn: conn}
	h.clientsMux.Lock()
	h.clients[client] = true
	metrics.LiveSummaryClients.Inc()
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(client)
			break
		}
	}
}

func (h *Hub) remove(c *wsClient) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		metrics.LiveSummaryClients.Dec()
	}
}

func (h *Hub) clientCount() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// Broadcast sends a JSON payload to every connected client, dropping
// clients whose writes fail or time out. The client set is snapshotted
// first so one slow client never blocks connects and disconnects.
func (h *Hub) Broadcast(payload interface{}) {
	h.clientsMux.Lock()
	snapshot := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.clientsMux.Unlock()

	for _, c := range snapshot {
		if err := c.send(payload); err != nil {
			c.conn.Close()
			h.remove(c)
		}
	}
}
