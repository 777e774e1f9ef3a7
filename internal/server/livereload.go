package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

// LiveReloadPath is the websocket endpoint pages connect to.
const LiveReloadPath = "/__livereload"

// ReloadMessage is broadcast after every successful rebuild.
const ReloadMessage = "reload"

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBuffer   = 8
)

// LiveReloadHub tracks websocket clients and fans out reload notifications.
type LiveReloadHub struct {
	mu       sync.Mutex
	clients  map[*lrClient]struct{}
	closed   bool
	recorder metrics.Recorder
	upgrader websocket.Upgrader
}

type lrClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewLiveReloadHub returns an empty hub. rec may be nil.
func NewLiveReloadHub(rec metrics.Recorder) *LiveReloadHub {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &LiveReloadHub{
		clients:  map[*lrClient]struct{}{},
		recorder: rec,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and holds the connection until the client
// goes away or the hub shuts down.
func (h *LiveReloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		http.Error(w, "livereload shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("livereload upgrade failed", logfields.Error(err))
		return
	}

	c := &lrClient{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go c.writePump()

	// The client never sends anything useful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
}

func (h *LiveReloadHub) register(c *lrClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.recorder.SetLiveReloadClients(len(h.clients))
	slog.Debug("livereload client connected", logfields.Clients(len(h.clients)))
	return true
}

func (h *LiveReloadHub) remove(c *lrClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.recorder.SetLiveReloadClients(len(h.clients))
}

// Clients returns the number of connected clients.
func (h *LiveReloadHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every client. Clients whose queue is full are dropped.
func (h *LiveReloadHub) Broadcast(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	dropped := 0
	for c := range h.clients {
		select {
		case c.send <- []byte(msg):
		default:
			delete(h.clients, c)
			close(c.send)
			dropped++
		}
	}
	if dropped > 0 {
		h.recorder.SetLiveReloadClients(len(h.clients))
	}
	slog.Debug("livereload broadcast", logfields.Clients(len(h.clients)), slog.Int("dropped", dropped))
}

// Shutdown disconnects all clients and refuses new ones.
func (h *LiveReloadHub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
	}
	h.clients = map[*lrClient]struct{}{}
	h.recorder.SetLiveReloadClients(0)
}

// writePump owns all writes to the connection. It exits, closing the
// connection, when send is closed or a write fails.
func (c *lrClient) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// liveReloadScript reconnects after the server restarts and reloads on ReloadMessage.
const liveReloadScript = `<script>(() => {
  if (window.__SITEBUILDER_LR__) return;
  window.__SITEBUILDER_LR__ = true;
  function connect() {
    const proto = location.protocol === "https:" ? "wss://" : "ws://";
    const ws = new WebSocket(proto + location.host + "` + LiveReloadPath + `");
    ws.onmessage = (e) => { if (e.data === "` + ReloadMessage + `") location.reload(); };
    ws.onclose = () => setTimeout(connect, 1000);
  }
  connect();
})();</script>`
