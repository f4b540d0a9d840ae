package dto

import (
	"fmt"

	"skillhub/internal/microservices/http-api/models"

	"github.com/samber/lo"
)

type UserStoryRequest struct {
	Title              string   `json:"title" binding:"required,max=300"`
	AsA                string   `json:"as_a" binding:"max=300"`
	IWant              string   `json:"i_want" binding:"max=1000"`
	SoThat             string   `json:"so_that" binding:"max=1000"`
	AcceptanceCriteria []string `json:"acceptance_criteria" binding:"dive,max=1000"`
	ProductID          string   `json:"product_id" binding:"omitempty,uuid"`
	Priority           int      `json:"priority" binding:"min=0,max=100"`
	Status             string   `json:"status" binding:"omitempty,oneof=todo in_progress done"`
}

func (r *UserStoryRequest) ToModel() *models.UserStory {
	return &models.UserStory{
		Title:              r.Title,
		AsA:                r.AsA,
		IWant:              r.IWant,
		SoThat:             r.SoThat,
		AcceptanceCriteria: r.AcceptanceCriteria,
		ProductID:          r.ProductID,
		Priority:           r.Priority,
		Status:             r.Status,
	}
}

// UserStoryResponse adds the rendered sentence to the stored story
type UserStoryResponse struct {
	models.UserStory
	Narrative string `json:"narrative"`
}

func FromModelToUserStoryResponse(u *models.UserStory) *UserStoryResponse {
	return &UserStoryResponse{UserStory: *u, Narrative: Narrative(u)}
}

func FromModelsToUserStoryResponses(list []models.UserStory) []UserStoryResponse {
	return lo.Map(list, func(item models.UserStory, _ int) UserStoryResponse {
		return *FromModelToUserStoryResponse(&item)
	})
}

// Narrative renders "As a <role>, I want <goal> so that <benefit>"
func Narrative(u *models.UserStory) string {
	if u.AsA == "" || u.IWant == "" {
		return ""
	}
	if u.SoThat == "" {
		return fmt.Sprintf("As a %s, I want %s", u.AsA, u.IWant)
	}
	return fmt.Sprintf("As a %s, I want %s so that %s", u.AsA, u.IWant, u.SoThat)
}
