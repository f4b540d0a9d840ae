package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Sender delivers outbound messages to one connection or to all of them
type Sender struct {
	registry *Registry
	logger   *slog.Logger
}

func NewSender(registry *Registry, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{registry: registry, logger: logger}
}

// SendTo serializes msg and writes it to the connection id.
// A missing connection yields ErrConnectionNotFound and is only logged.
func (s *Sender) SendTo(id string, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return s.SendRawTo(id, data)
}

func (s *Sender) SendRawTo(id string, data []byte) error {
	ch, ok := s.registry.Lookup(id)
	if !ok {
		s.logger.Warn("send_to_unknown_client", "client_id", id)
		return fmt.Errorf("%w: %s", ErrConnectionNotFound, id)
	}
	if err := ch.Send(data); err != nil {
		s.logger.Warn("failed_to_send", "client_id", id, "error", err.Error())
		return err
	}
	return nil
}

// Broadcast serializes msg once and writes it to every registered connection.
// It returns how many connections accepted the message.
func (s *Sender) Broadcast(msg any) (int, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal broadcast: %w", err)
	}
	return s.BroadcastRaw(data), nil
}

// BroadcastRaw writes data to a snapshot of the registry; one failing
// recipient never stops delivery to the rest
func (s *Sender) BroadcastRaw(data []byte) int {
	delivered := 0
	for _, entry := range s.registry.entries() {
		if err := entry.Value.Send(data); err != nil {
			s.logger.Warn("failed_to_send_broadcast",
				"client_id", entry.Key,
				"error", err.Error(),
			)
			continue
		}
		delivered++
	}
	return delivered
}
