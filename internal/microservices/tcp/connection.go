package tcp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"skillhub/internal/microservices/realtime"
)

const MaxMessageSize = 64 * 1024             // longest accepted line, newline included
const MaxDeadlineDuration = 5 * time.Minute // idle read timeout
const WriteWait = 10 * time.Second

var rateLimitedMessage = []byte(`{"type":"error","message":"Rate limit exceeded"}`)

// ClientConnection is one newline-delimited JSON peer
type ClientConnection struct {
	ID      string
	conn    net.Conn
	writeMu sync.Mutex
	writer  *bufio.Writer
	hub     *realtime.Hub
	limiter *rate.Limiter
	logger  *slog.Logger
	once    sync.Once
}

func NewClientConnection(conn net.Conn, hub *realtime.Hub, logger *slog.Logger) *ClientConnection {
	return &ClientConnection{
		ID:      uuid.NewString(),
		conn:    conn,
		writer:  bufio.NewWriter(conn),
		hub:     hub,
		limiter: rate.NewLimiter(rate.Limit(10), 20), // 10 msgs/sec with burst of 20
		logger:  logger,
	}
}

// Listen reads lines until the peer leaves, then deregisters the connection
func (c *ClientConnection) Listen(ctx context.Context) {
	defer func() {
		if c.hub.Disconnect(c.ID, c) {
			c.logger.Info("client_disconnected", "client_id", c.ID)
		}
		c.Close()
	}()

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 4096), MaxMessageSize)
	c.logger.Info("client_started_listening",
		"client_id", c.ID,
		"remote_addr", c.conn.RemoteAddr().String(),
	)
	c.conn.SetReadDeadline(time.Now().Add(MaxDeadlineDuration))

	for scanner.Scan() {
		c.conn.SetReadDeadline(time.Now().Add(MaxDeadlineDuration))

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if !c.limiter.Allow() {
			c.logger.Warn("rate_limit_exceeded", "client_id", c.ID)
			_ = c.Send(rateLimitedMessage)
			continue
		}

		c.hub.Receive(ctx, c.ID, line)
	}

	err := scanner.Err()
	switch {
	case err == nil:
		// peer closed the stream
	case errors.Is(err, bufio.ErrTooLong):
		c.logger.Warn("message_too_large", "client_id", c.ID, "max_size", MaxMessageSize)
	case errors.Is(err, net.ErrClosed) || strings.Contains(err.Error(), "closed network connection"):
		// expected while shutting down
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			c.logger.Warn("client_read_timeout", "client_id", c.ID)
			return
		}
		c.logger.Error("client_read_error", "client_id", c.ID, "error", err.Error())
	}
}

// Send writes data followed by a newline
func (c *ClientConnection) Send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
	if _, err := c.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := c.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	if err := c.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return nil
}

// Close hangs up once; later calls are no-ops
func (c *ClientConnection) Close() error {
	var err error
	c.once.Do(func() {
		err = c.conn.Close()
	})
	return err
}
