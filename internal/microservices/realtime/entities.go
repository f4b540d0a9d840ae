package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"skillhub/internal/microservices/http-api/service"
)

const (
	ActionList   = "list"
	ActionGet    = "get"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	notFoundMessage = "Id not found"
	defaultPageSize = 20
)

type listPayload struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type listResult[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
}

// EntityHandler exposes a collection service over the realtime channel.
// Reads reply to the sender, writes broadcast "<msgType>_<created|updated|deleted>".
func EntityHandler[T any](msgType string, svc service.CRUDService[T], decode Decoder[T]) HandlerFunc {
	return func(ctx context.Context, req Request) (*Reply, error) {
		cmd, err := DecodeCommand(req.Data)
		if err != nil {
			return nil, err
		}

		switch cmd.Action {
		case ActionList:
			p := listPayload{Page: 1, PageSize: defaultPageSize}
			if len(cmd.Payload) > 0 {
				if err := json.Unmarshal(cmd.Payload, &p); err != nil {
					return nil, BadRequest("invalid list payload")
				}
			}
			if p.Page < 1 {
				p.Page = 1
			}
			if p.PageSize < 1 || p.PageSize > 100 {
				p.PageSize = defaultPageSize
			}
			items, total, err := svc.List(ctx, p.Page, p.PageSize)
			if err != nil {
				return nil, serviceError(err)
			}
			return &Reply{
				Action:  msgType + "_list",
				Payload: listResult[T]{Data: items, Total: total, Page: p.Page},
			}, nil

		case ActionGet:
			entity, err := svc.GetByID(ctx, req.ID)
			if err != nil {
				return nil, serviceError(err)
			}
			return &Reply{Action: msgType, Payload: entity}, nil

		case ActionCreate:
			entity, err := decode(cmd.Payload)
			if err != nil {
				return nil, err
			}
			if err := svc.Create(ctx, entity); err != nil {
				return nil, serviceError(err)
			}
			return &Reply{Action: msgType + "_created", Payload: entity, Broadcast: true}, nil

		case ActionUpdate:
			entity, err := decode(cmd.Payload)
			if err != nil {
				return nil, err
			}
			updated, err := svc.Update(ctx, req.ID, entity)
			if err != nil {
				return nil, serviceError(err)
			}
			return &Reply{Action: msgType + "_updated", Payload: updated, Broadcast: true}, nil

		case ActionDelete:
			deleted, err := svc.Delete(ctx, req.ID)
			if err != nil {
				return nil, serviceError(err)
			}
			return &Reply{Action: msgType + "_deleted", Payload: deleted, Broadcast: true}, nil

		default:
			return nil, BadRequest("unsupported action: " + cmd.Action)
		}
	}
}

// Decoder turns a create or update payload into a model ready for the service
type Decoder[T any] func(payload json.RawMessage) (*T, error)

// requestValidate checks the same binding tags gin applies to HTTP bodies
var requestValidate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// RequestDecoder decodes payloads through a request type R, so server managed
// fields such as id and created_at never come from the client
func RequestDecoder[R any, T any](toModel func(*R) *T) Decoder[T] {
	return func(payload json.RawMessage) (*T, error) {
		if len(payload) == 0 {
			return nil, BadRequest("payload is required")
		}
		req := new(R)
		if err := json.Unmarshal(payload, req); err != nil {
			return nil, BadRequest("invalid payload: " + err.Error())
		}
		if err := requestValidate.Struct(req); err != nil {
			return nil, BadRequest(err.Error())
		}
		return toModel(req), nil
	}
}

// serviceError maps domain sentinels onto wire statuses
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return &HandlerError{Status: http.StatusBadRequest, Message: notFoundMessage}
	case errors.Is(err, service.ErrValidation):
		return &HandlerError{Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, service.ErrConflict):
		return &HandlerError{Status: http.StatusConflict, Message: err.Error()}
	default:
		return err
	}
}

// PingHandler answers with a pong to the sender
func PingHandler(now func() int64) HandlerFunc {
	return func(ctx context.Context, req Request) (*Reply, error) {
		return &Reply{Action: "pong", Payload: map[string]int64{"server_time": now()}}, nil
	}
}
