package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseCompletion marks that a user finished a course. The unique index on
// (user_id, course_id) keeps the ledger at one entry per completed course.
type CourseCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course_completion" json:"user_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course_completion" json:"course_id"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`

	Course Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`
}

func (c *CourseCompletion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
