package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate is an immutable record of a completed course. CourseTitle and
// InstructorName are snapshots taken at issuance so later course edits never
// alter an issued certificate. The unique index on (user_id, course_id)
// enforces at most one certificate per user per course even when two
// generate requests race past the application pre-check.
type Certificate struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course_certificate" json:"user_id"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_course_certificate" json:"course_id"`
	CertificateID string    `gorm:"size:36;not null;unique" json:"certificate_id"`

	StudentName    string `gorm:"size:255;not null" json:"student_name"`
	CourseTitle    string `gorm:"size:255;not null" json:"course_title"`
	InstructorName string `gorm:"size:255;not null" json:"instructor_name"`

	CertificateURL *string   `gorm:"type:text" json:"certificate_url"`
	CompletionDate time.Time `gorm:"not null" json:"completion_date"`
	IsVerified     bool      `gorm:"default:true" json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CertificateID == "" {
		c.CertificateID = uuid.New().String()
	}
	return nil
}
