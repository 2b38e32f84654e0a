package events

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

// Hub broadcasts order events to connected websocket clients.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]*listener
}

// listener serializes writes to one connection.
type listener struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (l *listener) write(data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return l.conn.WriteMessage(websocket.TextMessage, data)
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     log.Named("order-feed"),
		clients: make(map[*websocket.Conn]*listener),
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. Incoming messages are discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = &listener{conn: conn}
	h.mu.Unlock()
	h.log.Debug("listener connected", zap.String("remote", r.RemoteAddr))

	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish writes event to every client concurrently, outside the client
// lock. Clients that fail are dropped.
func (h *Hub) Publish(_ context.Context, event OrderPlaced) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	listeners := make([]*listener, 0, len(h.clients))
	for _, l := range h.clients {
		listeners = append(listeners, l)
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for _, l := range listeners {
		wg.Add(1)
		go func(l *listener) {
			defer wg.Done()
			if err := l.write(data); err != nil {
				h.log.Debug("dropping listener", zap.Error(err))
				h.drop(l.conn)
			}
		}(l)
	}
	wg.Wait()
	return nil
}

// Clients reports how many listeners are connected.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every listener.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}
