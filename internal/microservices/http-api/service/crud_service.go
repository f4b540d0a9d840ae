package service

import (
	"context"
	"errors"
	"log/slog"

	"skillhub/internal/cache"
	"skillhub/internal/microservices/http-api/repository"
)

// CRUDService is the operation set every collection exposes to handlers
type CRUDService[T any] interface {
	List(ctx context.Context, page, pageSize int) ([]T, int64, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id string, entity *T) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
	Count(ctx context.Context) (int64, error)
}

// crudService reads through the entity cache and invalidates it on writes
type crudService[T any] struct {
	repo       repository.CRUDRepository[T]
	cache      *cache.EntityCache
	collection string
	normalize  func(*T) error
	logger     *slog.Logger
}

func newCRUDService[T any](
	repo repository.CRUDRepository[T],
	entityCache *cache.EntityCache,
	collection string,
	normalize func(*T) error,
) *crudService[T] {
	return &crudService[T]{
		repo:       repo,
		cache:      entityCache,
		collection: collection,
		normalize:  normalize,
		logger:     slog.Default().With("collection", collection),
	}
}

func (s *crudService[T]) List(ctx context.Context, page, pageSize int) ([]T, int64, error) {
	list, total, err := s.repo.List(ctx, page, pageSize)
	return list, total, translateRepoError(err)
}

func (s *crudService[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var cached T
	if err := s.cache.Get(ctx, s.collection, id, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("cache_read_failed", "id", id, "error", err.Error())
	}

	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	s.cache.Set(ctx, s.collection, id, entity)
	return entity, nil
}

func (s *crudService[T]) Create(ctx context.Context, entity *T) error {
	if err := s.normalize(entity); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		return translateRepoError(err)
	}
	return nil
}

func (s *crudService[T]) Update(ctx context.Context, id string, entity *T) (*T, error) {
	if err := s.normalize(entity); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, entity)
	if err != nil {
		return nil, translateRepoError(err)
	}
	s.cache.Invalidate(ctx, s.collection, id)
	return updated, nil
}

func (s *crudService[T]) Delete(ctx context.Context, id string) (*T, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	s.cache.Invalidate(ctx, s.collection, id)
	return deleted, nil
}

func (s *crudService[T]) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	return total, translateRepoError(err)
}
