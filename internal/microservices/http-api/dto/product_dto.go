package dto

import "skillhub/internal/microservices/http-api/models"

type ProductRequest struct {
	Name           string   `json:"name" binding:"required,max=200"`
	Description    string   `json:"description" binding:"max=5000"`
	OrganizationID string   `json:"organization_id" binding:"omitempty,uuid"`
	Website        string   `json:"website" binding:"omitempty,url"`
	Skills         []string `json:"skills" binding:"dive,max=100"`
}

func (r *ProductRequest) ToModel() *models.Product {
	return &models.Product{
		Name:           r.Name,
		Description:    r.Description,
		OrganizationID: r.OrganizationID,
		Website:        r.Website,
		Skills:         r.Skills,
	}
}
