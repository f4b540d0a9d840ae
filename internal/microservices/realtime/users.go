package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
)

const (
	ActionUserUpdated = "user_updated"
	ActionUserDeleted = "user_deleted"
)

// UserDirectory keeps the latest profile announced for each user id
type UserDirectory struct {
	mu       sync.RWMutex
	profiles map[string]json.RawMessage
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{profiles: make(map[string]json.RawMessage)}
}

func (d *UserDirectory) Put(id string, profile json.RawMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profiles[id] = profile
}

func (d *UserDirectory) Get(id string) (json.RawMessage, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.profiles[id]
	return p, ok
}

// Remove reports whether id was known
func (d *UserDirectory) Remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.profiles[id]; !ok {
		return false
	}
	delete(d.profiles, id)
	return true
}

func (d *UserDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.profiles)
}

// UserHandler announces profile changes to every connection.
// The envelope id is the user id and the command payload is the profile.
func UserHandler(dir *UserDirectory) HandlerFunc {
	return func(ctx context.Context, req Request) (*Reply, error) {
		cmd, err := DecodeCommand(req.Data)
		if err != nil {
			return nil, err
		}

		switch cmd.Action {
		case ActionCreate, ActionUpdate:
			if len(cmd.Payload) == 0 || string(cmd.Payload) == "null" {
				return nil, BadRequest("payload is required")
			}
			var fields map[string]any
			if err := json.Unmarshal(cmd.Payload, &fields); err != nil {
				return nil, BadRequest("payload must be an object")
			}
			dir.Put(req.ID, cmd.Payload)
			return &Reply{Action: ActionUserUpdated, Payload: cmd.Payload, Broadcast: true}, nil
		case ActionDelete:
			if !dir.Remove(req.ID) {
				return nil, BadRequest(notFoundMessage)
			}
			return &Reply{Action: ActionUserDeleted, Payload: map[string]string{"id": req.ID}, Broadcast: true}, nil
		case ActionGet:
			profile, ok := dir.Get(req.ID)
			if !ok {
				return nil, &HandlerError{Status: http.StatusBadRequest, Message: notFoundMessage}
			}
			return &Reply{Action: "user", Payload: profile}, nil
		default:
			return nil, BadRequest("unsupported action: " + cmd.Action)
		}
	}
}
