package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Instructor  string    `gorm:"size:255;not null" json:"instructor"`
	Duration    string    `gorm:"size:50;not null" json:"duration"`
	Level       string    `gorm:"size:20;not null;default:'Beginner'" json:"level"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Image       string    `gorm:"type:text" json:"image"`

	Content []CourseContent `gorm:"foreignkey:CourseID" json:"content,omitempty"`

	Requirements     datatypes.JSON `gorm:"type:jsonb" json:"requirements"`
	LearningOutcomes datatypes.JSON `gorm:"type:jsonb" json:"learning_outcomes"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CourseContent is one lesson inside a course, ordered by Position.
type CourseContent struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `gorm:"type:text" json:"video_url"`
	Duration    string    `gorm:"size:50" json:"duration"`
}

func (c *CourseContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
