// Package ws pushes committed order events to connected staff and diner
// views over websockets. The stream is advisory: views treat it as a nudge
// and still converge on the REST snapshot, so the hub may drop a client
// that cannot keep up without breaking anything.
package ws

import (
	"log/slog"
	"net/http"
	"time"

	"tableside/internal/core/domain/events"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	// writeWait bounds a single frame write; a client slower than this is
	// disconnected.
	writeWait = 10 * time.Second

	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds inbound frames. Clients never send application
	// messages; anything beyond control frames is a protocol violation.
	maxMessageSize = 512
)

// envelope is the wire shape of one pushed event.
type envelope struct {
	Type    string       `json:"type"`
	Payload events.Event `json:"payload"`
}

// EventSource provides per-connection event subscriptions.
type EventSource interface {
	Subscribe() (<-chan events.Event, func())
}

// Hub upgrades connections and streams bus events to each of them. Every
// connection holds its own subscription, so one stalled connection never
// delays another.
type Hub struct {
	source   EventSource
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHub creates a hub over the given event source.
func NewHub(source EventSource, logger *slog.Logger) *Hub {
	return &Hub{
		source: source,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Views are served from arbitrary origins in a venue's network.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handle handles GET /ws - upgrades the connection and streams events
// until the client disconnects or falls behind.
func (h *Hub) Handle(ctx echo.Context) error {
	conn, err := h.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	ch, cancel := h.source.Subscribe()

	go h.writePump(conn, ch, cancel)
	go h.readPump(conn, cancel)

	return nil
}

// writePump streams events and pings to one client. Exits on the first
// failed write, which covers both disconnects and clients that stall past
// the write deadline.
func (h *Hub) writePump(conn *websocket.Conn, ch <-chan events.Event, cancel func()) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		_ = conn.Close()
	}()

	for {
		select {
		case event, ok := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteJSON(envelope{Type: event.Kind(), Payload: event}); err != nil {
				h.logger.Debug("dropping websocket client", slog.String("reason", err.Error()))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains control frames and detects disconnects. Application
// messages from clients are not part of the protocol; the read limit shuts
// down anything chatty.
func (h *Hub) readPump(conn *websocket.Conn, cancel func()) {
	defer func() {
		cancel()
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
