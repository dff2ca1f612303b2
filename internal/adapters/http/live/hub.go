// Package live pushes match views to scoreboard clients over websockets.
package live

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 32
	broadcastQueue = 256
)

// Message is the frame sent to clients.
type Message struct {
	Type      string     `json:"type"`
	MatchID   string     `json:"match_id"`
	Timestamp int64      `json:"timestamp"`
	View      match.View `json:"view"`
}

type frame struct {
	matchID string
	data    []byte
}

// Client is one websocket subscriber of a single match.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	matchID string
	send    chan []byte
}

// Hub fans match views out to subscribed clients.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan frame
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	upgrader   websocket.Upgrader
	now        func() time.Time
	logger     logger.Logger
}

// Option applies a configuration option to the Hub.
type Option func(*Hub)

// WithLogger sets a custom logger for the hub.
func WithLogger(l logger.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithCheckOrigin sets the origin policy of websocket upgrades.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(h *Hub) {
		if fn != nil {
			h.upgrader.CheckOrigin = fn
		}
	}
}

// NewHub creates a hub. Call Run before serving clients.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan frame, broadcastQueue),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logger.Get().Named("live")
	}
	return h
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			metrics.UpdateLiveSubscribers(len(h.clients))
			h.logger.Debug(ctx, "client subscribed", logger.MatchID(c.matchID), logger.Int("clients", len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.logger.Debug(ctx, "client left", logger.MatchID(c.matchID), logger.Int("clients", len(h.clients)))
			}
		case f := <-h.broadcast:
			for c := range h.clients {
				if c.matchID != f.matchID {
					continue
				}
				select {
				case c.send <- f.data:
				default:
					// Slow consumer.
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	metrics.UpdateLiveSubscribers(len(h.clients))
}

func (h *Hub) encode(matchID string, v match.View) ([]byte, error) { //nolint:gocritic // hugeParam: views are values
	return json.Marshal(Message{Type: "view", MatchID: matchID, Timestamp: h.now().UnixMilli(), View: v})
}

// Publish queues a view for the subscribers of matchID. It never blocks; a
// full broadcast queue drops the update.
func (h *Hub) Publish(matchID string, v match.View) { //nolint:gocritic // hugeParam: views are values
	data, err := h.encode(matchID, v)
	if err != nil {
		h.logger.Error(context.Background(), "encode view failed", logger.MatchID(matchID), logger.Error(err))
		return
	}
	select {
	case h.broadcast <- frame{matchID: matchID, data: data}:
	default:
		h.logger.Warn(context.Background(), "live update dropped", logger.MatchID(matchID))
	}
}

// Serve upgrades the request and subscribes the connection to matchID,
// sending initial first.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, matchID string, initial match.View) { //nolint:gocritic // hugeParam: views are values
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "websocket upgrade failed", logger.MatchID(matchID), logger.Error(err))
		return
	}
	c := &Client{hub: h, conn: conn, matchID: matchID, send: make(chan []byte, sendBuffer)}
	if data, err := h.encode(matchID, initial); err == nil {
		c.send <- data
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards client frames and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug(context.Background(), "websocket closed", logger.MatchID(c.matchID), logger.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
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
