package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"skillhub/internal/cache"
	"skillhub/internal/microservices/http-api/models"
	"skillhub/internal/microservices/http-api/repository"
)

const CollectionUserStories = "user_stories"

var storyStatuses = []string{models.StoryStatusTodo, models.StoryStatusInProgress, models.StoryStatusDone}

type UserStoryService interface {
	CRUDService[models.UserStory]
	ListByProduct(ctx context.Context, productID string) ([]models.UserStory, error)
}

type userStoryService struct {
	*crudService[models.UserStory]
	storyRepo   repository.UserStoryRepository
	productRepo repository.ProductRepository
}

func NewUserStoryService(
	storyRepo repository.UserStoryRepository,
	productRepo repository.ProductRepository,
	entityCache *cache.EntityCache,
) UserStoryService {
	return &userStoryService{
		crudService: newCRUDService[models.UserStory](storyRepo, entityCache, CollectionUserStories, normalizeUserStory),
		storyRepo:   storyRepo,
		productRepo: productRepo,
	}
}

func normalizeUserStory(u *models.UserStory) error {
	u.Title = strings.TrimSpace(u.Title)
	if u.Title == "" {
		return validationError("title is required")
	}
	if u.Status == "" {
		u.Status = models.StoryStatusTodo
	}
	if !slices.Contains(storyStatuses, u.Status) {
		return validationError("status must be todo, in_progress or done")
	}
	if u.Priority < 0 {
		return validationError("priority must not be negative")
	}
	u.ProductID = strings.TrimSpace(u.ProductID)
	u.AcceptanceCriteria = compact(u.AcceptanceCriteria)
	return nil
}

// Create rejects stories pointing at a product that does not exist
func (s *userStoryService) Create(ctx context.Context, u *models.UserStory) error {
	if err := s.checkProduct(ctx, u.ProductID); err != nil {
		return err
	}
	return s.crudService.Create(ctx, u)
}

func (s *userStoryService) Update(ctx context.Context, id string, u *models.UserStory) (*models.UserStory, error) {
	if err := s.checkProduct(ctx, u.ProductID); err != nil {
		return nil, err
	}
	return s.crudService.Update(ctx, id, u)
}

func (s *userStoryService) checkProduct(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return validationError("product not found")
		}
		return err
	}
	return nil
}

func (s *userStoryService) ListByProduct(ctx context.Context, productID string) ([]models.UserStory, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, translateRepoError(err)
	}
	list, err := s.storyRepo.ListByProduct(ctx, productID)
	return list, translateRepoError(err)
}
