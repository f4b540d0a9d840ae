package service

import (
	"context"
	"errors"
	"strings"

	"skillhub/internal/cache"
	"skillhub/internal/microservices/http-api/models"
	"skillhub/internal/microservices/http-api/repository"
)

const CollectionProducts = "products"

type ProductService interface {
	CRUDService[models.Product]
	ListByOrganization(ctx context.Context, organizationID string) ([]models.Product, error)
}

type productService struct {
	*crudService[models.Product]
	productRepo repository.ProductRepository
	orgRepo     repository.OrganizationRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	orgRepo repository.OrganizationRepository,
	entityCache *cache.EntityCache,
) ProductService {
	return &productService{
		crudService: newCRUDService[models.Product](productRepo, entityCache, CollectionProducts, normalizeProduct),
		productRepo: productRepo,
		orgRepo:     orgRepo,
	}
}

func normalizeProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return validationError("name is required")
	}
	p.OrganizationID = strings.TrimSpace(p.OrganizationID)
	p.Skills = compact(p.Skills)
	return nil
}

// Create checks the owning organization exists and links the product to it
func (s *productService) Create(ctx context.Context, p *models.Product) error {
	if err := s.checkOrganization(ctx, p.OrganizationID); err != nil {
		return err
	}
	if err := s.crudService.Create(ctx, p); err != nil {
		return err
	}
	s.link(ctx, p.OrganizationID, p.ID)
	return nil
}

// Update moves the back reference when the product changes organization
func (s *productService) Update(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if err := s.checkOrganization(ctx, p.OrganizationID); err != nil {
		return nil, err
	}

	updated, err := s.crudService.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if current.OrganizationID != updated.OrganizationID {
		s.unlink(ctx, current.OrganizationID, id)
		s.link(ctx, updated.OrganizationID, id)
	}
	return updated, nil
}

func (s *productService) Delete(ctx context.Context, id string) (*models.Product, error) {
	deleted, err := s.crudService.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.unlink(ctx, deleted.OrganizationID, id)
	return deleted, nil
}

func (s *productService) checkOrganization(ctx context.Context, organizationID string) error {
	organizationID = strings.TrimSpace(organizationID)
	if organizationID == "" {
		return nil
	}
	if _, err := s.orgRepo.GetByID(ctx, organizationID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return validationError("organization not found")
		}
		return err
	}
	return nil
}

// link and unlink only touch the back reference; the product write already happened
func (s *productService) link(ctx context.Context, organizationID, productID string) {
	if organizationID == "" {
		return
	}
	if err := s.orgRepo.LinkProduct(ctx, organizationID, productID); err != nil {
		s.logger.Warn("organization_link_failed", "organization_id", organizationID, "product_id", productID, "error", err.Error())
		return
	}
	s.cache.Invalidate(ctx, CollectionOrganizations, organizationID)
}

func (s *productService) unlink(ctx context.Context, organizationID, productID string) {
	if organizationID == "" {
		return
	}
	if err := s.orgRepo.UnlinkProduct(ctx, organizationID, productID); err != nil {
		s.logger.Warn("organization_unlink_failed", "organization_id", organizationID, "product_id", productID, "error", err.Error())
		return
	}
	s.cache.Invalidate(ctx, CollectionOrganizations, organizationID)
}

func (s *productService) ListByOrganization(ctx context.Context, organizationID string) ([]models.Product, error) {
	if _, err := s.orgRepo.GetByID(ctx, organizationID); err != nil {
		return nil, translateRepoError(err)
	}
	list, err := s.productRepo.ListByOrganization(ctx, organizationID)
	return list, translateRepoError(err)
}
