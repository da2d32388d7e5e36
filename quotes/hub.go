// Package quotes broadcasts periodic quote snapshots for tracked symbols
// over WebSocket. Quotes prefer the latest stored close and fall back to
// deterministic mock prices so the stream works against an empty database.
package quotes

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rustyeddy/paperdesk/market"
	"github.com/rustyeddy/paperdesk/store"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// sendBufferSize is the channel buffer for outgoing messages per client.
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local single-user service; all origins are the same machine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one connected WebSocket consumer.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and pushes a quote batch to all of them on
// every tick.
type Hub struct {
	store    *store.Store
	symbols  []string
	interval time.Duration
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[*client]bool

	register   chan *client
	unregister chan *client
	done       chan struct{}
}

func NewHub(st *store.Store, symbols []string, interval time.Duration, logger *slog.Logger) *Hub {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Hub{
		store:      st,
		symbols:    symbols,
		interval:   interval,
		logger:     logger,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop: registration, unregistration and the
// broadcast ticker. It should be called in a goroutine and exits when the
// context is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Closing done unblocks any client loop still trying to
			// register or unregister; nobody receives on those channels
			// once this loop returns.
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return ctx.Err()

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("quotes: client connected", "total_clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("quotes: client disconnected", "total_clients", n)

		case <-ticker.C:
			if h.clientCount() == 0 {
				continue
			}
			h.broadcast(h.Snapshot(time.Now().UTC()))
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Snapshot builds one quote per tracked symbol: the stored latest close
// when the symbol has bars, a mock quote otherwise.
func (h *Hub) Snapshot(now time.Time) []market.Quote {
	qs := make([]market.Quote, 0, len(h.symbols))
	for _, sym := range h.symbols {
		if c, err := h.store.LatestClose(sym); err == nil {
			qs = append(qs, quoteFromClose(sym, c, now))
		} else {
			qs = append(qs, MockQuote(sym, now))
		}
	}
	return qs
}

func (h *Hub) broadcast(qs []market.Quote) {
	payload, err := json.Marshal(struct {
		Type      string         `json:"type"`
		Data      []market.Quote `json:"data"`
		Timestamp time.Time      `json:"timestamp"`
	}{Type: "quotes", Data: qs, Timestamp: time.Now().UTC()})
	if err != nil {
		h.logger.Error("quotes: marshal batch", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Client's send buffer is full; drop the batch.
			h.logger.Warn("quotes: dropping batch for slow client")
		}
	}
}

// addClient hands the client to the hub loop, unless the hub has shut
// down.
func (h *Hub) addClient(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// dropClient hands the client back for removal, unless the hub has shut
// down (in which case the loop already closed every send channel).
func (h *Hub) dropClient(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ServeHTTP upgrades the connection and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("quotes: upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}
	if !h.addClient(c) {
		conn.Close()
		return
	}

	go c.writeLoop()
	go c.readLoop(h)
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	// Hub closed the send channel; tell the client we're done.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readLoop discards inbound messages (the stream is one-way) and detects
// the client going away.
func (c *client) readLoop(h *Hub) {
	defer func() {
		h.dropClient(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
