package ws

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"HotelCS/internal/registry"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
)

// Heartbeat wire contract: the client sends a literal "ping" text frame and
// the server answers with a literal "pong" text frame.
var (
	pingFrame = []byte("ping")
	pongFrame = []byte("pong")
)

var errClientGone = errors.New("client connection closed or backed up")

// Client is one WebSocket connection. It implements registry.Transport:
// the registry owns it through the session entry and uses it only to send
// frames and check liveness. Writes go through the send channel so only the
// write pump touches the underlying connection.
type Client struct {
	registry *registry.Registry
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
	closed   atomic.Bool
	once     sync.Once

	connID   string
	identity string
	log      *slog.Logger
}

// Send queues a frame for the write pump. A closed client or a full send
// buffer counts as a delivery failure; the registry evicts on it.
func (c *Client) Send(payload []byte) error {
	if c.closed.Load() {
		return errClientGone
	}
	select {
	case c.send <- payload:
		return nil
	case <-c.done:
		return errClientGone
	default:
		return errClientGone
	}
}

// IsOpen reports whether the connection is still usable.
func (c *Client) IsOpen() bool {
	return !c.closed.Load()
}

// Close tears the connection down. Safe to call repeatedly; the registry,
// the pumps and the sweeper may all race into it.
func (c *Client) Close() error {
	c.once.Do(func() {
		c.closed.Store(true)
		close(c.done)
		_ = c.conn.Close()
	})
	return nil
}

// readPump pumps frames from the connection, answering heartbeat pings and
// refreshing the session's liveness timestamp. On any read error the
// connection is considered gone and the session is removed.
func (c *Client) readPump() {
	defer func() {
		_ = c.Close()
		c.registry.Remove(c.connID)
		c.log.Debug("client disconnected",
			slog.String("identity", c.identity),
			slog.String("connection_id", c.connID),
		)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.registry.Heartbeat(c.connID)
		return nil
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if string(data) == string(pingFrame) {
			c.registry.Heartbeat(c.connID)
			if err := c.Send(pongFrame); err != nil {
				break
			}
		}
	}
}

// writePump pumps queued frames to the connection and keeps it alive with
// periodic ping control frames.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case <-c.done:
			return

		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Debug("write failed", slog.String("connection_id", c.connID))
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
