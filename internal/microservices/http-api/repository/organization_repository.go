package repository

import (
	"context"
	"fmt"

	"skillhub/internal/microservices/http-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	CRUDRepository[models.Organization]
	LinkProduct(ctx context.Context, organizationID, productID string) error
	UnlinkProduct(ctx context.Context, organizationID, productID string) error
}

type organizationRepository struct {
	*crudRepository[models.Organization]
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{crudRepository: newCRUDRepository[models.Organization](db)}
}

// LinkProduct appends productID to the products array in one statement, skipping ids already present
func (r *organizationRepository) LinkProduct(ctx context.Context, organizationID, productID string) error {
	if uuid.Validate(organizationID) != nil {
		return ErrRecordNotFound
	}
	err := r.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", organizationID).
		Where("NOT (COALESCE(products, '[]'::jsonb) @> jsonb_build_array(?::text))", productID).
		Update("products", gorm.Expr("COALESCE(products, '[]'::jsonb) || jsonb_build_array(?::text)", productID)).
		Error
	if err != nil {
		return fmt.Errorf("link product: %w", translateError(err))
	}
	return nil
}

// UnlinkProduct drops every occurrence of productID from the products array
func (r *organizationRepository) UnlinkProduct(ctx context.Context, organizationID, productID string) error {
	if uuid.Validate(organizationID) != nil {
		return ErrRecordNotFound
	}
	err := r.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", organizationID).
		Update("products", gorm.Expr("COALESCE(products, '[]'::jsonb) - ?::text", productID)).
		Error
	if err != nil {
		return fmt.Errorf("unlink product: %w", translateError(err))
	}
	return nil
}
