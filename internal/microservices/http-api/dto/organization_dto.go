package dto

import "skillhub/internal/microservices/http-api/models"

// OrganizationRequest is the body of create and update calls
type OrganizationRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Jobs        []string `json:"jobs" binding:"dive,max=200"`
	Location    string   `json:"location" binding:"max=200"`
	Products    []string `json:"products"`
	Size        string   `json:"size" binding:"max=50"`
	Website     string   `json:"website" binding:"omitempty,url"`
}

func (r *OrganizationRequest) ToModel() *models.Organization {
	return &models.Organization{
		Name:        r.Name,
		Description: r.Description,
		Jobs:        r.Jobs,
		Location:    r.Location,
		Products:    r.Products,
		Size:        r.Size,
		Website:     r.Website,
	}
}
