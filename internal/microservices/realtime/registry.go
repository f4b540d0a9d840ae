package realtime

import (
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// Channel is a live bidirectional transport handle owned by the Registry once registered
type Channel interface {
	// Send queues or writes one serialized envelope
	Send(msg []byte) error
	Close() error
}

// Registry maps connection IDs to their channels.
// Every operation takes the same lock, so connect/disconnect cannot race a broadcast snapshot.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]Channel
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		conns:  make(map[string]Channel),
		logger: logger,
	}
}

// Register inserts or overwrites the mapping for id (last write wins).
// A replaced channel is dropped without being closed.
func (r *Registry) Register(id string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.conns[id]; exists {
		r.logger.Warn("client_replaced", "client_id", id)
	}
	r.conns[id] = ch
	r.logger.Info("client_added", "client_id", id)
}

// Deregister removes id if present and reports whether anything was removed
func (r *Registry) Deregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.conns[id]; !exists {
		return false
	}
	delete(r.conns, id)
	r.logger.Info("client_removed", "client_id", id)
	return true
}

// Release removes id only while it still maps to ch, so a closing channel
// never evicts the channel that replaced it
func (r *Registry) Release(id string, ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, exists := r.conns[id]
	if !exists || current != ch {
		return false
	}
	delete(r.conns, id)
	r.logger.Info("client_removed", "client_id", id)
	return true
}

func (r *Registry) Lookup(id string) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.conns[id]
	return ch, ok
}

// All returns a snapshot of the registered channels
func (r *Registry) All() []Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.conns)
}

// entries returns a snapshot of id/channel pairs
func (r *Registry) entries() []lo.Entry[string, Channel] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Entries(r.conns)
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll closes every channel and empties the registry
func (r *Registry) CloseAll() {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]Channel)
	r.mu.Unlock()

	for id, ch := range conns {
		if err := ch.Close(); err != nil {
			r.logger.Warn("client_close_failed", "client_id", id, "error", err.Error())
			continue
		}
		r.logger.Info("client_connection_closed", "client_id", id)
	}
}
