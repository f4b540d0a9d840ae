package service

import (
	"errors"
	"fmt"

	"skillhub/internal/microservices/http-api/repository"
)

var (
	ErrNotFound   = errors.New("Id not found")
	ErrConflict   = errors.New("record already exists")
	ErrValidation = errors.New("validation failed")
)

// translateRepoError maps repository sentinels onto service errors
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
