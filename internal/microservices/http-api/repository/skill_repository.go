package repository

import (
	"context"
	"strings"

	"skillhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type SkillRepository interface {
	CRUDRepository[models.Skill]
	SearchByName(ctx context.Context, query string) ([]models.Skill, error)
}

type skillRepository struct {
	*crudRepository[models.Skill]
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{crudRepository: newCRUDRepository[models.Skill](db)}
}

// SearchByName performs a case-insensitive partial match on name and category
func (r *skillRepository) SearchByName(ctx context.Context, query string) ([]models.Skill, error) {
	var list []models.Skill
	query = strings.TrimSpace(query)
	if query == "" {
		return list, nil
	}
	p := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR COALESCE(category,'') ILIKE ?", p, p).
		Order("name asc").
		Find(&list).Error
	if err != nil {
		return nil, translateError(err)
	}
	return list, nil
}
