package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

const welcomeText = "Connected to skillhub realtime"

// Hub ties the registry, sender and dispatcher together for the transports
type Hub struct {
	Registry   *Registry
	Sender     *Sender
	Dispatcher *Dispatcher
	logger     *slog.Logger

	mu        sync.Mutex
	closed    bool
	byeNotice string
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	registry := NewRegistry(logger)
	sender := NewSender(registry, logger)
	return &Hub{
		Registry:   registry,
		Sender:     sender,
		Dispatcher: NewDispatcher(sender, logger),
		logger:     logger,
	}
}

// Connect registers ch under id and greets it with an info envelope.
// After Shutdown the channel gets the shutdown notice and is closed instead.
func (h *Hub) Connect(id string, ch Channel) {
	h.mu.Lock()
	if h.closed {
		notice := h.byeNotice
		h.mu.Unlock()
		h.turnAway(id, ch, notice)
		return
	}
	h.Registry.Register(id, ch)
	h.mu.Unlock()

	if err := h.Sender.SendTo(id, InfoMessage(welcomeText)); err != nil {
		h.logger.Warn("welcome_failed", "client_id", id, "error", err.Error())
	}
}

// Disconnect deregisters id if it still belongs to ch.
// Reports false when the connection was already gone.
func (h *Hub) Disconnect(id string, ch Channel) bool {
	return h.Registry.Release(id, ch)
}

// Receive hands one inbound frame to the dispatcher
func (h *Hub) Receive(ctx context.Context, id string, raw []byte) {
	_ = h.Dispatcher.Dispatch(ctx, id, raw)
}

// Count is the number of registered connections
func (h *Hub) Count() int {
	return h.Registry.Count()
}

func (h *Hub) turnAway(id string, ch Channel, reason string) {
	if data, err := json.Marshal(InfoMessage(reason)); err == nil {
		_ = ch.Send(data)
	}
	_ = ch.Close()
	h.logger.Info("client_rejected_after_shutdown", "client_id", id)
}

// Shutdown tells every client the server is going away and closes them.
// Connections arriving later are turned away with the same notice.
func (h *Hub) Shutdown(reason string) {
	h.mu.Lock()
	h.closed = true
	h.byeNotice = reason
	h.mu.Unlock()

	delivered, err := h.Sender.Broadcast(InfoMessage(reason))
	if err != nil {
		h.logger.Error("shutdown_broadcast_failed", "error", err.Error())
	}
	h.logger.Info("hub_shutdown", "notified", delivered)
	h.Registry.CloseAll()
}
