package service

import (
	"context"

	"skillhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/mock"
)

// MockCRUDRepository mocks repository.CRUDRepository for any model
type MockCRUDRepository[T any] struct {
	mock.Mock
}

func (m *MockCRUDRepository[T]) List(ctx context.Context, page, pageSize int) ([]T, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]T), args.Get(1).(int64), args.Error(2)
}

func (m *MockCRUDRepository[T]) ListBy(ctx context.Context, column, value string) ([]T, error) {
	args := m.Called(ctx, column, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockCRUDRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCRUDRepository[T]) Create(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCRUDRepository[T]) Update(ctx context.Context, id string, entity *T) (*T, error) {
	args := m.Called(ctx, id, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCRUDRepository[T]) Delete(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCRUDRepository[T]) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductRepository struct {
	MockCRUDRepository[models.Product]
}

func (m *MockProductRepository) ListByOrganization(ctx context.Context, organizationID string) ([]models.Product, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type MockUserStoryRepository struct {
	MockCRUDRepository[models.UserStory]
}

func (m *MockUserStoryRepository) ListByProduct(ctx context.Context, productID string) ([]models.UserStory, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserStory), args.Error(1)
}

type MockSkillRepository struct {
	MockCRUDRepository[models.Skill]
}

func (m *MockSkillRepository) SearchByName(ctx context.Context, query string) ([]models.Skill, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

type MockOrganizationRepository struct {
	MockCRUDRepository[models.Organization]
}

func (m *MockOrganizationRepository) LinkProduct(ctx context.Context, organizationID, productID string) error {
	args := m.Called(ctx, organizationID, productID)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UnlinkProduct(ctx context.Context, organizationID, productID string) error {
	args := m.Called(ctx, organizationID, productID)
	return args.Error(0)
}
