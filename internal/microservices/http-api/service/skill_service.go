package service

import (
	"context"
	"slices"
	"strings"

	"skillhub/internal/cache"
	"skillhub/internal/microservices/http-api/models"
	"skillhub/internal/microservices/http-api/repository"
)

const CollectionSkills = "skills"

var skillLevels = []string{"", "beginner", "intermediate", "advanced"}

type SkillService interface {
	CRUDService[models.Skill]
	Search(ctx context.Context, query string) ([]models.Skill, error)
}

type skillService struct {
	*crudService[models.Skill]
	skillRepo repository.SkillRepository
}

func NewSkillService(repo repository.SkillRepository, entityCache *cache.EntityCache) SkillService {
	return &skillService{
		crudService: newCRUDService[models.Skill](repo, entityCache, CollectionSkills, normalizeSkill),
		skillRepo:   repo,
	}
}

func normalizeSkill(s *models.Skill) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return validationError("name is required")
	}
	s.Level = strings.ToLower(strings.TrimSpace(s.Level))
	if !slices.Contains(skillLevels, s.Level) {
		return validationError("level must be beginner, intermediate or advanced")
	}
	s.Category = strings.TrimSpace(s.Category)
	return nil
}

func (s *skillService) Search(ctx context.Context, query string) ([]models.Skill, error) {
	list, err := s.skillRepo.SearchByName(ctx, query)
	return list, translateRepoError(err)
}
