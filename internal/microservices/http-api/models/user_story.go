package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StoryStatusTodo       = "todo"
	StoryStatusInProgress = "in_progress"
	StoryStatusDone       = "done"
)

// UserStory follows the "as a / I want / so that" template
type UserStory struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:uuid"`
	Title              string    `json:"title" gorm:"not null"`
	AsA                string    `json:"as_a"`
	IWant              string    `json:"i_want"`
	SoThat             string    `json:"so_that"`
	AcceptanceCriteria []string  `json:"acceptance_criteria" gorm:"type:jsonb;serializer:json"`
	ProductID          string    `json:"product_id" gorm:"index"`
	Priority           int       `json:"priority" gorm:"default:0"`
	Status             string    `json:"status" gorm:"default:'todo';not null"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (u *UserStory) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = StoryStatusTodo
	}
	return nil
}

func (UserStory) TableName() string {
	return "user_stories"
}
