package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wanjiku2684/course_academy/database"
	"github.com/wanjiku2684/course_academy/models"
	"github.com/wanjiku2684/course_academy/services"
	"gorm.io/gorm"
)

type GenerateCertificateRequest struct {
	CourseID    string `json:"courseId" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
}

func GenerateCertificate(c *fiber.Ctx) error {
	var req GenerateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Course ID and student name are required"})
	}

	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	certificate, err := services.GenerateCertificate(userID, courseID, req.StudentName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNameRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Course ID and student name are required"})
		case errors.Is(err, services.ErrCourseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
		case errors.Is(err, services.ErrCourseNotCompleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Course must be completed before generating certificate"})
		case errors.Is(err, services.ErrCertificateExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Certificate already exists for this course"})
		default:
			log.Printf("Certificate generation error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Certificate generated successfully",
		"certificate": certificate,
		"downloadUrl": fmt.Sprintf("/api/v1/certificates/download/%s", certificate.ID),
	})
}

func DownloadCertificate(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	// A certificate owned by someone else answers exactly like one that
	// does not exist.
	certificateID, err := uuid.Parse(c.Params("certificateId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Certificate not found"})
	}

	var certificate models.Certificate
	err = database.DB.
		Where("id = ? AND user_id = ?", certificateID, userID).
		First(&certificate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Certificate not found"})
		}
		log.Printf("Certificate lookup error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	filePath, err := services.EnsureArtifact(&certificate)
	if err != nil {
		log.Printf("Certificate %s artifact unavailable: %v", certificate.ID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Certificate file not found"})
	}

	return c.Download(filePath, fmt.Sprintf("certificate-%s.pdf", certificate.ID))
}

func ListUserCertificates(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	certificates := []models.Certificate{}
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&certificates).Error; err != nil {
		log.Printf("Certificate list error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(certificates)
}
