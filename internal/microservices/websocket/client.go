package websocket

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"skillhub/internal/microservices/realtime"
)

const ( // ping pong(2-way heartbeat) keeps idle connections alive
	WriteWait  = 10 * time.Second    // max time to write a message to the peer
	PongWait   = 60 * time.Second    // no pong within this window = dead peer
	PingPeriod = (PongWait * 9) / 10 // must be shorter than PongWait

	DefaultSendBuffer     = 256
	DefaultMaxMessageSize = 64 * 1024
)

var (
	ErrClientClosed    = errors.New("client closed")
	ErrSendBufferFull  = errors.New("send buffer full")
	rateLimitedMessage = []byte(`{"type":"error","message":"Rate limit exceeded"}`)
)

type Options struct {
	SendBuffer     int
	MaxMessageSize int64
	AllowedOrigins []string
}

func (o Options) withDefaults() Options {
	if o.SendBuffer < 1 {
		o.SendBuffer = DefaultSendBuffer
	}
	if o.MaxMessageSize < 1 {
		o.MaxMessageSize = DefaultMaxMessageSize
	}
	return o
}

// Client is one upgraded WebSocket connection.
// Outbound messages go through a bounded queue drained by the write pump.
type Client struct {
	ID      string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	hub     *realtime.Hub
	limiter *rate.Limiter
	logger  *slog.Logger
	maxSize int64
}

func NewClient(id string, conn *websocket.Conn, hub *realtime.Hub, opts Options, logger *slog.Logger) *Client {
	opts = opts.withDefaults()
	return &Client{
		ID:      id,
		conn:    conn,
		send:    make(chan []byte, opts.SendBuffer),
		done:    make(chan struct{}),
		hub:     hub,
		limiter: rate.NewLimiter(rate.Limit(10), 20), // 10 msgs/sec with burst of 20
		logger:  logger,
		maxSize: opts.MaxMessageSize,
	}
}

// Send queues msg without blocking; a full queue fails this send only
func (c *Client) Send(msg []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}
	select {
	case c.send <- msg:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrSendBufferFull
	}
}

// Close asks the write pump to flush, send a close frame and hang up.
// Safe to call more than once.
func (c *Client) Close() error {
	c.once.Do(func() {
		close(c.done)
	})
	return nil
}

// ReadPump feeds inbound frames to the hub until the peer goes away.
// It owns deregistration, so a connection leaves the registry exactly once.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		if c.hub.Disconnect(c.ID, c) {
			c.logger.Info("client_disconnected", "client_id", c.ID)
		}
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.maxSize)
	c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("client_read_error", "client_id", c.ID, "error", err.Error())
			}
			return
		}

		if !c.limiter.Allow() {
			c.logger.Warn("rate_limit_exceeded", "client_id", c.ID)
			_ = c.Send(rateLimitedMessage)
			continue
		}

		c.hub.Receive(ctx, c.ID, data)
	}
}

// WritePump drains the send queue and keeps the peer alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.logger.Warn("client_write_error", "client_id", c.ID, "error", err.Error())
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			c.flush()
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// flush writes whatever is still queued
func (c *Client) flush() {
	for {
		select {
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
	return c.conn.WriteMessage(messageType, data)
}
