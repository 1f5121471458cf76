package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"FXTracker/internal/domain/models"
	xlogger "FXTracker/pkg/logger"
	"FXTracker/pkg/util"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	defaultQueue   = 64
	maxClientQueue = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans accepted selection-state mutations out to connected dashboard
// clients. A slow client drops its oldest queued event rather than
// blocking the controller.
type Hub struct {
	logger *xlogger.Logger
	queue  int

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates the feed hub. queue sizes the per-client event buffer;
// clients may override it per connection, capped at maxClientQueue.
func NewHub(logger *xlogger.Logger, queue int) *Hub {
	if queue < 1 || queue > maxClientQueue {
		queue = defaultQueue
	}
	return &Hub{
		logger:  logger,
		queue:   queue,
		clients: make(map[*client]struct{}),
	}
}

// Broadcast queues ev for every connected client. Safe to call from the
// selection controller's goroutine; never blocks.
func (h *Hub) Broadcast(ev models.ActivityEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("activity event marshal error", xlogger.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Full queue: drop the oldest event to make room.
			select {
			case <-c.send:
			default:
			}
			select {
			case c.send <- payload:
			default:
			}
		}
	}
}

// Serve upgrades the request and attaches the client to the feed. The
// optional queue query parameter sizes the per-client event buffer.
func (h *Hub) Serve(c echo.Context) error {
	queue := util.ParseIntDefault(c.QueryParam("queue"), h.queue)
	if queue < 1 || queue > maxClientQueue {
		queue = h.queue
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", xlogger.Error(err))
		return err
	}

	cl := &client{conn: conn, send: make(chan []byte, queue)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("websocket client connected", xlogger.Int("clients", n))

	go h.writePump(cl)
	go h.readPump(cl)
	return nil
}

// Close disconnects every client; part of graceful shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()
}

func (h *Hub) detach(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
	_ = cl.conn.Close()
}

// readPump drains inbound frames. The feed is one-way; reads only serve
// pong handling and disconnect detection.
func (h *Hub) readPump(cl *client) {
	defer h.detach(cl)

	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", xlogger.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
