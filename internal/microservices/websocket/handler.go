package websocket

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"skillhub/internal/microservices/realtime"
)

// Handler upgrades HTTP requests and attaches the connection to the hub
type Handler struct {
	hub      *realtime.Hub
	opts     Options
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHandler(hub *realtime.Hub, opts Options, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()
	return &Handler{
		hub:  hub,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no Origin
				if origin == "" || len(opts.AllowedOrigins) == 0 {
					return true
				}
				return lo.Contains(opts.AllowedOrigins, origin) || lo.Contains(opts.AllowedOrigins, "*")
			},
		},
		logger: logger,
	}
}

// Serve runs the connection for its whole lifetime; the read pump blocks this goroutine
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the HTTP error response
		h.logger.Warn("websocket_upgrade_failed", "error", err.Error())
		return
	}

	client := NewClient(uuid.NewString(), conn, h.hub, h.opts, h.logger)
	h.logger.Info("client_connected",
		"client_id", client.ID,
		"remote_addr", conn.RemoteAddr().String(),
	)

	go client.WritePump()
	h.hub.Connect(client.ID, client)
	client.ReadPump(c.Request.Context())
}
