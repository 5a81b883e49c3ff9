package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wanjiku2684/course_academy/database"
	"github.com/wanjiku2684/course_academy/models"
	"github.com/wanjiku2684/course_academy/notifications"
	"gorm.io/gorm"
)

var (
	ErrStudentNameRequired = errors.New("student name is required")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseNotCompleted  = errors.New("course must be completed before generating certificate")
	ErrCertificateExists   = errors.New("certificate already exists for this course")
	ErrRenderFailed        = errors.New("certificate rendering failed")
)

// GenerateCertificate issues a certificate for a completed course. The
// record is created first and the PDF rendered synchronously afterwards;
// when rendering fails the record stays persisted without an artifact and
// ErrRenderFailed is returned. Recovery happens lazily on the next
// download attempt (EnsureArtifact).
func GenerateCertificate(userID, courseID uuid.UUID, studentName string) (*models.Certificate, error) {
	studentName = strings.TrimSpace(studentName)
	if studentName == "" {
		return nil, ErrStudentNameRequired
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("load course: %w", err)
	}

	var completion models.CourseCompletion
	err := database.DB.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&completion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotCompleted
		}
		return nil, fmt.Errorf("load completion record: %w", err)
	}

	var existing models.Certificate
	err = database.DB.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&existing).Error
	if err == nil {
		return nil, ErrCertificateExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing certificate: %w", err)
	}

	certificate := models.Certificate{
		UserID:         userID,
		CourseID:       courseID,
		StudentName:    studentName,
		CourseTitle:    course.Title,
		InstructorName: course.Instructor,
		CompletionDate: time.Now(),
		IsVerified:     true,
	}

	// The unique (user_id, course_id) index is the real duplicate guard;
	// two racing requests past the pre-check still end with one row.
	if err := database.DB.Create(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCertificateExists
		}
		return nil, fmt.Errorf("create certificate: %w", err)
	}

	artifactPath, err := RenderCertificatePDF(certificate)
	if err != nil {
		log.Printf("🔥 Failed to render certificate %s: %v", certificate.ID, err)
		return &certificate, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	certificate.CertificateURL = &artifactPath
	if err := database.DB.Model(&certificate).Update("certificate_url", artifactPath).Error; err != nil {
		return &certificate, fmt.Errorf("attach certificate artifact: %w", err)
	}

	go sendIssuanceEmail(certificate)

	return &certificate, nil
}

// EnsureArtifact returns the path of the certificate's PDF, re-rendering it
// from the certificate's snapshot fields when the record has no artifact or
// the file has gone missing from storage.
func EnsureArtifact(certificate *models.Certificate) (string, error) {
	if certificate.CertificateURL != nil {
		if _, err := os.Stat(*certificate.CertificateURL); err == nil {
			return *certificate.CertificateURL, nil
		}
		log.Printf("⚠️ Certificate %s artifact missing from storage, re-rendering", certificate.ID)
	}

	artifactPath, err := RenderCertificatePDF(*certificate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	certificate.CertificateURL = &artifactPath
	if err := database.DB.Model(certificate).Update("certificate_url", artifactPath).Error; err != nil {
		return "", fmt.Errorf("attach certificate artifact: %w", err)
	}
	return artifactPath, nil
}

func sendIssuanceEmail(certificate models.Certificate) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", certificate.UserID).Error; err != nil {
		log.Printf("Could not load user %s for issuance email: %v", certificate.UserID, err)
		return
	}

	body := fmt.Sprintf(
		"<h1>Congratulations, %s!</h1><p>Your certificate for <strong>%s</strong> is ready to download.</p>",
		user.FullName, certificate.CourseTitle,
	)
	notifications.SendEmail(user.FullName, user.Email, "Your certificate is ready", body)
}
