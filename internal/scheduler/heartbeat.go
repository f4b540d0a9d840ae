package scheduler

import (
	"context"
	"log/slog"
	"time"

	"skillhub/internal/microservices/realtime"
)

const heartbeatTimeout = 10 * time.Second

// Counter is satisfied by every collection service
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Publisher fans a message out to every realtime connection
type Publisher interface {
	Broadcast(msg any) (int, error)
}

type HeartbeatData struct {
	Time        time.Time        `json:"time"`
	Connections int              `json:"connections"`
	Counts      map[string]int64 `json:"counts"`
}

// HeartbeatJob reports collection sizes to all connected clients
type HeartbeatJob struct {
	counters    map[string]Counter
	publisher   Publisher
	connections func() int
	logger      *slog.Logger
	now         func() time.Time
}

func NewHeartbeatJob(counters map[string]Counter, publisher Publisher, connections func() int, logger *slog.Logger) *HeartbeatJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &HeartbeatJob{
		counters:    counters,
		publisher:   publisher,
		connections: connections,
		logger:      logger,
		now:         time.Now,
	}
}

// Run implements cron.Job
func (j *HeartbeatJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), heartbeatTimeout)
	defer cancel()

	counts := make(map[string]int64, len(j.counters))
	for name, counter := range j.counters {
		n, err := counter.Count(ctx)
		if err != nil {
			// the heartbeat still goes out, just without this collection
			j.logger.Warn("heartbeat_count_failed", "collection", name, "error", err.Error())
			continue
		}
		counts[name] = n
	}

	now := j.now().UTC()
	data := HeartbeatData{Time: now, Connections: j.connections(), Counts: counts}
	delivered, err := j.publisher.Broadcast(realtime.Message{
		Type: realtime.TypeHeartbeat,
		ID:   now.Format(time.RFC3339),
		Data: data,
	})
	if err != nil {
		j.logger.Error("heartbeat_broadcast_failed", "error", err.Error())
		return
	}
	j.logger.Info("heartbeat", "connections", data.Connections, "delivered", delivered, "counts", counts)
}
