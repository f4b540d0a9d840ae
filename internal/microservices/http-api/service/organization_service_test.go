package service

import (
	"context"
	"testing"
	"time"

	"skillhub/internal/cache"
	"skillhub/internal/microservices/http-api/models"
	"skillhub/internal/microservices/http-api/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *cache.EntityCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewEntityCache(client, time.Minute, nil)
}

func TestOrganizationService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("ReadsThroughCache", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		svc := NewOrganizationService(repo, newTestCache(t))

		org := &models.Organization{ID: "org-1", Name: "Acme"}
		repo.On("GetByID", mock.Anything, "org-1").Return(org, nil).Once()

		first, err := svc.GetByID(ctx, "org-1")
		require.NoError(t, err)
		second, err := svc.GetByID(ctx, "org-1")
		require.NoError(t, err)

		assert.Equal(t, "Acme", first.Name)
		assert.Equal(t, "Acme", second.Name)
		repo.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		svc := NewOrganizationService(repo, nil)

		repo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrRecordNotFound).Once()

		_, err := svc.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "Id not found", err.Error())
	})
}

func TestOrganizationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalizesFields", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		svc := NewOrganizationService(repo, nil)

		org := &models.Organization{
			Name:    "  Acme ",
			Jobs:    []string{"dev", " dev ", "", "ops"},
			Website: "https://acme.test",
		}
		repo.On("Create", mock.Anything, org).Return(nil).Once()

		require.NoError(t, svc.Create(ctx, org))
		assert.Equal(t, "Acme", org.Name)
		assert.Equal(t, []string{"dev", "ops"}, org.Jobs)
		repo.AssertExpectations(t)
	})

	t.Run("MissingName", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		svc := NewOrganizationService(repo, nil)

		err := svc.Create(ctx, &models.Organization{Name: "   "})
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("InvalidWebsite", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		svc := NewOrganizationService(repo, nil)

		err := svc.Create(ctx, &models.Organization{Name: "Acme", Website: "acme"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Duplicate", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		svc := NewOrganizationService(repo, nil)

		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()

		err := svc.Create(ctx, &models.Organization{Name: "Acme"})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestOrganizationService_UpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOrganizationRepository)
	svc := NewOrganizationService(repo, newTestCache(t))

	stale := &models.Organization{ID: "org-1", Name: "Old"}
	fresh := &models.Organization{ID: "org-1", Name: "New"}
	repo.On("GetByID", mock.Anything, "org-1").Return(stale, nil).Once()
	repo.On("Update", mock.Anything, "org-1", mock.Anything).Return(fresh, nil).Once()
	repo.On("GetByID", mock.Anything, "org-1").Return(fresh, nil).Once()

	_, err := svc.GetByID(ctx, "org-1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "org-1", &models.Organization{Name: "New"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	repo.AssertExpectations(t)
}

func TestOrganizationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsDeletedRecord", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		svc := NewOrganizationService(repo, nil)

		repo.On("Delete", mock.Anything, "org-1").Return(&models.Organization{ID: "org-1", Name: "Acme"}, nil).Once()

		deleted, err := svc.Delete(ctx, "org-1")
		require.NoError(t, err)
		assert.Equal(t, "org-1", deleted.ID)
	})

	t.Run("UnknownID", func(t *testing.T) {
		repo := new(MockOrganizationRepository)
		svc := NewOrganizationService(repo, nil)

		repo.On("Delete", mock.Anything, "nope").Return(nil, repository.ErrRecordNotFound).Once()

		_, err := svc.Delete(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrganizationService_NonUUIDIdNotFound(t *testing.T) {
	ctx := context.Background()
	// real repository without a database: the id check happens before any query
	svc := NewOrganizationService(repository.NewOrganizationRepository(nil), nil)

	_, err := svc.GetByID(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, "42", &models.Organization{Name: "Acme"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Delete(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Id not found", err.Error())
}

func TestCompact(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, compact([]string{" go", "", "sql ", "go", "   "}))
	assert.Empty(t, compact(nil))
}
