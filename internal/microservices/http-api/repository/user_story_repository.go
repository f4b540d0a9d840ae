package repository

import (
	"context"

	"skillhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type UserStoryRepository interface {
	CRUDRepository[models.UserStory]
	ListByProduct(ctx context.Context, productID string) ([]models.UserStory, error)
}

type userStoryRepository struct {
	*crudRepository[models.UserStory]
}

func NewUserStoryRepository(db *gorm.DB) UserStoryRepository {
	return &userStoryRepository{crudRepository: newCRUDRepository[models.UserStory](db)}
}

func (r *userStoryRepository) ListByProduct(ctx context.Context, productID string) ([]models.UserStory, error) {
	return r.ListBy(ctx, "product_id", productID)
}
