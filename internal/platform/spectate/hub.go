// Package spectate streams forager snapshots to read-only websocket
// clients. Spectators never send input; the session keeps running in the
// host that publishes.
package spectate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Websocket timing.
const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 8
)

// ErrClosed is returned when publishing to or serving from a closed hub.
var ErrClosed = errors.New("spectate: hub closed")

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans snapshots out to connected spectators. Slow spectators miss
// frames instead of blocking the publisher.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	latest   []byte
	closed   bool
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Publish encodes v as JSON and queues it for every spectator.
func (h *Hub) Publish(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Warn("snapshot not encodable", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Frame dropped for a slow reader.
		}
	}
}

// Latest returns the most recent encoded snapshot, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams snapshots until the
// spectator disconnects or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "hub closed"))
		conn.Close()
		return
	}
	h.logger.Info("spectator joined", "remote", r.RemoteAddr)

	go h.writePump(c)
	h.readPump(c)

	h.unregister(c)
	h.logger.Info("spectator left", "remote", r.RemoteAddr)
}

// register adds the client and queues the latest snapshot in one step, so
// a spectator never misses the frame published while it joins.
func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards spectator messages and detects disconnects.
func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("spectator read failed", "err", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Debug("spectator write failed", "err", err)
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

// Close disconnects every spectator. Further publishes are ignored.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	return nil
}

// Handler serves the websocket stream on /ws, the latest snapshot on
// /snapshot and the snapshot JSON schema on /schema.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		data := h.Latest()
		if data == nil {
			http.Error(w, "no snapshot yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		data, err := SchemaJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/schema+json")
		w.Write(data)
	})
	return mux
}
