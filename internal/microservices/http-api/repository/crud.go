package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
)

// Postgres error codes
const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02" // e.g. "42" cast to uuid
)

// CRUDRepository is the storage contract shared by every collection
type CRUDRepository[T any] interface {
	List(ctx context.Context, page, pageSize int) ([]T, int64, error)
	ListBy(ctx context.Context, column, value string) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id string, entity *T) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
	Count(ctx context.Context) (int64, error)
}

type crudRepository[T any] struct {
	db *gorm.DB
}

func newCRUDRepository[T any](db *gorm.DB) *crudRepository[T] {
	return &crudRepository[T]{db: db}
}

// List returns one page ordered by creation time, newest first
func (r *crudRepository[T]) List(ctx context.Context, page, pageSize int) ([]T, int64, error) {
	var list []T
	var total int64

	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return list, total, nil
}

// ListBy returns every record whose column equals value
func (r *crudRepository[T]) ListBy(ctx context.Context, column, value string) ([]T, error) {
	var list []T
	err := r.db.WithContext(ctx).
		Where(map[string]any{column: value}).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, translateError(err)
	}
	return list, nil
}

// GetByID treats ids that are not UUIDs as absent, the key column cannot hold them
func (r *crudRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrRecordNotFound
	}
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

func (r *crudRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create: %w", translateError(err))
	}
	// GORM populates the ID (BeforeCreate hook) and timestamps
	return nil
}

// Update overwrites every column except the key and creation time, then reloads
func (r *crudRepository[T]) Update(ctx context.Context, id string, entity *T) (*T, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(entity)
	if result.Error != nil {
		return nil, fmt.Errorf("update: %w", translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the record and returns it as it was
func (r *crudRepository[T]) Delete(ctx context.Context, id string) (*T, error) {
	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return nil, fmt.Errorf("delete: %w", translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return entity, nil
}

func (r *crudRepository[T]) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return 0, translateError(err)
	}
	return total, nil
}

// translateError maps driver level errors onto the repository sentinels
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case pgInvalidTextRepresentation:
			return ErrRecordNotFound
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
