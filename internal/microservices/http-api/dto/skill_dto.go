package dto

import "skillhub/internal/microservices/http-api/models"

type SkillRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Category    string `json:"category" binding:"max=100"`
	Level       string `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
}

func (r *SkillRequest) ToModel() *models.Skill {
	return &models.Skill{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Level:       r.Level,
	}
}
