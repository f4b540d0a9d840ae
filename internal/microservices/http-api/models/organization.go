package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization is a company that publishes jobs and owns products
type Organization struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"not null;index"`
	Description string    `json:"description"`
	Jobs        []string  `json:"jobs" gorm:"type:jsonb;serializer:json"`
	Location    string    `json:"location"`
	Products    []string  `json:"products" gorm:"type:jsonb;serializer:json"` // product IDs
	Size        string    `json:"size"`
	Website     string    `json:"website"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook to set UUID before creating an Organization
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (Organization) TableName() string {
	return "organizations"
}
