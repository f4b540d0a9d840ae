package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const handlerTimeout = 5 * time.Second

// Request is what a handler sees of one inbound envelope
type Request struct {
	ConnID string
	Type   string
	ID     string
	Data   json.RawMessage
}

// Reply is a handler result. Broadcast replies reach every connection,
// the others go back to the sender only.
type Reply struct {
	Action    string
	Payload   any
	Broadcast bool
}

// HandlerFunc processes one envelope of a registered type.
// A nil Reply with a nil error sends nothing.
type HandlerFunc func(ctx context.Context, req Request) (*Reply, error)

// Dispatcher routes inbound envelopes to the handler registered for their type
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	sender   *Sender
	logger   *slog.Logger
}

func NewDispatcher(sender *Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		sender:   sender,
		logger:   logger,
	}
}

// Handle registers h for msgType, replacing any earlier registration
func (d *Dispatcher) Handle(msgType string, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[msgType] = h
}

func (d *Dispatcher) handler(msgType string) (HandlerFunc, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handlers[msgType]
	return h, ok
}

// Dispatch decodes raw, runs exactly one handler and publishes its reply.
// Malformed envelopes and unknown types are logged and dropped; the returned
// error only reports what happened and never asks the caller to close the connection.
func (d *Dispatcher) Dispatch(ctx context.Context, connID string, raw []byte) error {
	env, err := DecodeEnvelope(raw)
	if err != nil {
		d.logger.Warn("invalid_message_format",
			"client_id", connID,
			"error", err.Error(),
		)
		return err
	}

	h, ok := d.handler(env.Type)
	if !ok {
		d.logger.Warn("unknown_message_type",
			"client_id", connID,
			"type", env.Type,
		)
		return fmt.Errorf("%w: %s", ErrUnknownType, env.Type)
	}

	req := Request{ConnID: connID, Type: env.Type, ID: env.ID, Data: env.Data}
	ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	reply, err := d.invoke(ctx, h, req)
	if err != nil {
		d.replyError(req, err)
		return err
	}
	if reply == nil {
		return nil
	}

	msg := Message{
		Type: req.Type,
		ID:   req.ID,
		Data: Result{Action: reply.Action, Payload: reply.Payload},
	}
	if reply.Broadcast {
		delivered, err := d.sender.Broadcast(msg)
		if err != nil {
			d.logger.Error("broadcast_failed", "type", req.Type, "id", req.ID, "error", err.Error())
			return err
		}
		d.logger.Debug("broadcast_sent",
			"type", req.Type,
			"action", reply.Action,
			"recipients", delivered,
		)
		return nil
	}
	if err := d.sender.SendTo(connID, msg); err != nil && !errors.Is(err, ErrConnectionNotFound) {
		return err
	}
	return nil
}

// invoke runs h and turns a panic into an internal error
func (d *Dispatcher) invoke(ctx context.Context, h HandlerFunc, req Request) (reply *Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler_panic",
				"client_id", req.ConnID,
				"type", req.Type,
				"panic", fmt.Sprint(r),
			)
			reply, err = nil, fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, req)
}

func (d *Dispatcher) replyError(req Request, err error) {
	data := errorData(err)
	if data.Status >= 500 {
		d.logger.Error("handler_failed",
			"client_id", req.ConnID,
			"type", req.Type,
			"id", req.ID,
			"error", err.Error(),
		)
	} else {
		d.logger.Info("handler_rejected",
			"client_id", req.ConnID,
			"type", req.Type,
			"id", req.ID,
			"status", data.Status,
			"message", data.Message,
		)
	}
	_ = d.sender.SendTo(req.ConnID, Message{Type: TypeError, ID: req.ID, Data: data})
}
