package realtime

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	TypeInfo      = "info"
	TypeError     = "error"
	TypeHeartbeat = "heartbeat"
)

var (
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrUnknownType       = errors.New("unknown message type")
)

var validate = validator.New()

// Envelope is the inbound wire unit: {"type": ..., "id": ..., "data": ...}
type Envelope struct {
	Type string          `json:"type" validate:"required"`
	ID   string          `json:"id" validate:"required"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message is the outbound wire unit. Info messages carry Message, everything else Data.
type Message struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Result is the data of a handler reply: what changed and the record involved
type Result struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

// ErrorData is the data of an error reply
type ErrorData struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Command is the data variant understood by every registered type:
// {"action": "...", "payload": ...}
type Command struct {
	Action  string          `json:"action" validate:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeEnvelope parses and validates an inbound frame
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if err := validate.Struct(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return &env, nil
}

// DecodeCommand reads the envelope data as a Command
func DecodeCommand(data json.RawMessage) (Command, error) {
	var cmd Command
	if len(data) == 0 {
		return cmd, BadRequest("data is required")
	}
	if err := json.Unmarshal(data, &cmd); err != nil {
		return cmd, BadRequest("data must be an object with an action")
	}
	if err := validate.Struct(&cmd); err != nil {
		return cmd, BadRequest("action is required")
	}
	return cmd, nil
}

// InfoMessage builds {"type":"info","message":text}
func InfoMessage(text string) Message {
	return Message{Type: TypeInfo, Message: text}
}
