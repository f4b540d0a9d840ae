package realtime

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrConnectionNotFound = errors.New("no connection for id")

// HandlerError is a domain failure reported back to the sender as an error envelope
type HandlerError struct {
	Status  int
	Message string
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func BadRequest(msg string) error {
	return &HandlerError{Status: http.StatusBadRequest, Message: msg}
}

// errorData converts any handler error into the wire error shape
func errorData(err error) ErrorData {
	var herr *HandlerError
	if errors.As(err, &herr) {
		return ErrorData{Status: herr.Status, Message: herr.Message}
	}
	return ErrorData{Status: http.StatusInternalServerError, Message: "internal error"}
}
