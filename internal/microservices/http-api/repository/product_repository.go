package repository

import (
	"context"

	"skillhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	CRUDRepository[models.Product]
	ListByOrganization(ctx context.Context, organizationID string) ([]models.Product, error)
}

type productRepository struct {
	*crudRepository[models.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{crudRepository: newCRUDRepository[models.Product](db)}
}

func (r *productRepository) ListByOrganization(ctx context.Context, organizationID string) ([]models.Product, error) {
	return r.ListBy(ctx, "organization_id", organizationID)
}
