package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ConnectionCounter reports the number of live realtime connections
type ConnectionCounter interface {
	Count() int
}

type HealthHandler struct {
	db          Pinger
	connections ConnectionCounter
	startedAt   time.Time
}

func NewHealthHandler(db Pinger, connections ConnectionCounter) *HealthHandler {
	return &HealthHandler{db: db, connections: connections, startedAt: time.Now()}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	dbStatus := "up"
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
	}

	connections := 0
	if h.connections != nil {
		connections = h.connections.Count()
	}

	c.JSON(status, gin.H{
		"database":    dbStatus,
		"connections": connections,
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
	})
}
