package service

import (
	"context"
	"testing"

	"skillhub/internal/microservices/http-api/models"
	"skillhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("LinksOrganization", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		orgRepo := new(MockOrganizationRepository)
		svc := NewProductService(productRepo, orgRepo, nil)

		org := &models.Organization{ID: "org-1", Name: "Acme", Products: []string{"p-0"}}
		orgRepo.On("GetByID", mock.Anything, "org-1").Return(org, nil).Once()
		productRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Product).ID = "p-1"
			}).
			Return(nil).Once()
		orgRepo.On("LinkProduct", mock.Anything, "org-1", "p-1").Return(nil).Once()

		p := &models.Product{Name: "Board", OrganizationID: "org-1"}
		require.NoError(t, svc.Create(ctx, p))
		assert.Equal(t, "p-1", p.ID)
		orgRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("UnknownOrganization", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		orgRepo := new(MockOrganizationRepository)
		svc := NewProductService(productRepo, orgRepo, nil)

		orgRepo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrRecordNotFound).Once()

		err := svc.Create(ctx, &models.Product{Name: "Board", OrganizationID: "ghost"})
		assert.ErrorIs(t, err, ErrValidation)
		productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("LinkFailureIsNotFatal", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		orgRepo := new(MockOrganizationRepository)
		svc := NewProductService(productRepo, orgRepo, nil)

		orgRepo.On("GetByID", mock.Anything, "org-1").Return(&models.Organization{ID: "org-1"}, nil).Once()
		productRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		orgRepo.On("LinkProduct", mock.Anything, "org-1", mock.Anything).Return(assert.AnError).Once()

		assert.NoError(t, svc.Create(ctx, &models.Product{Name: "Board", OrganizationID: "org-1"}))
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownOrganization", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		orgRepo := new(MockOrganizationRepository)
		svc := NewProductService(productRepo, orgRepo, nil)

		productRepo.On("GetByID", mock.Anything, "p-1").Return(&models.Product{ID: "p-1", OrganizationID: "org-1"}, nil).Once()
		orgRepo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrRecordNotFound).Once()

		_, err := svc.Update(ctx, "p-1", &models.Product{Name: "Board", OrganizationID: "ghost"})
		assert.ErrorIs(t, err, ErrValidation)
		productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		orgRepo.AssertNotCalled(t, "LinkProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MovesLink", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		orgRepo := new(MockOrganizationRepository)
		svc := NewProductService(productRepo, orgRepo, nil)

		productRepo.On("GetByID", mock.Anything, "p-1").Return(&models.Product{ID: "p-1", OrganizationID: "org-1"}, nil).Once()
		orgRepo.On("GetByID", mock.Anything, "org-2").Return(&models.Organization{ID: "org-2"}, nil).Once()
		productRepo.On("Update", mock.Anything, "p-1", mock.Anything).
			Return(&models.Product{ID: "p-1", Name: "Board", OrganizationID: "org-2"}, nil).Once()
		orgRepo.On("UnlinkProduct", mock.Anything, "org-1", "p-1").Return(nil).Once()
		orgRepo.On("LinkProduct", mock.Anything, "org-2", "p-1").Return(nil).Once()

		updated, err := svc.Update(ctx, "p-1", &models.Product{Name: "Board", OrganizationID: "org-2"})
		require.NoError(t, err)
		assert.Equal(t, "org-2", updated.OrganizationID)
		orgRepo.AssertExpectations(t)
	})

	t.Run("SameOrganizationLeavesLink", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		orgRepo := new(MockOrganizationRepository)
		svc := NewProductService(productRepo, orgRepo, nil)

		productRepo.On("GetByID", mock.Anything, "p-1").Return(&models.Product{ID: "p-1", OrganizationID: "org-1"}, nil).Once()
		orgRepo.On("GetByID", mock.Anything, "org-1").Return(&models.Organization{ID: "org-1"}, nil).Once()
		productRepo.On("Update", mock.Anything, "p-1", mock.Anything).
			Return(&models.Product{ID: "p-1", Name: "Renamed", OrganizationID: "org-1"}, nil).Once()

		_, err := svc.Update(ctx, "p-1", &models.Product{Name: "Renamed", OrganizationID: "org-1"})
		require.NoError(t, err)
		orgRepo.AssertNotCalled(t, "UnlinkProduct", mock.Anything, mock.Anything, mock.Anything)
		orgRepo.AssertNotCalled(t, "LinkProduct", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingProduct", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo, new(MockOrganizationRepository), nil)

		productRepo.On("GetByID", mock.Anything, "gone").Return(nil, repository.ErrRecordNotFound).Once()

		_, err := svc.Update(ctx, "gone", &models.Product{Name: "Board"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProductService_DeleteUnlinks(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	orgRepo := new(MockOrganizationRepository)
	svc := NewProductService(productRepo, orgRepo, nil)

	productRepo.On("Delete", mock.Anything, "p-1").Return(&models.Product{ID: "p-1", OrganizationID: "org-1"}, nil).Once()
	orgRepo.On("UnlinkProduct", mock.Anything, "org-1", "p-1").Return(nil).Once()

	deleted, err := svc.Delete(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", deleted.ID)
	orgRepo.AssertExpectations(t)
}

func TestProductService_ListByOrganization(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	orgRepo := new(MockOrganizationRepository)
	svc := NewProductService(productRepo, orgRepo, nil)

	orgRepo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrRecordNotFound).Once()
	_, err := svc.ListByOrganization(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	orgRepo.On("GetByID", mock.Anything, "org-1").Return(&models.Organization{ID: "org-1"}, nil).Once()
	productRepo.On("ListByOrganization", mock.Anything, "org-1").Return([]models.Product{{ID: "p-1"}}, nil).Once()
	list, err := svc.ListByOrganization(ctx, "org-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
