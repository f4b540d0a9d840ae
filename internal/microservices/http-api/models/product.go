package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name           string    `json:"name" gorm:"not null;index"`
	Description    string    `json:"description"`
	OrganizationID string    `json:"organization_id" gorm:"index"`
	Website        string    `json:"website"`
	Skills         []string  `json:"skills" gorm:"type:jsonb;serializer:json"` // skill names
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}
