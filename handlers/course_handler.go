package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wanjiku2684/course_academy/database"
	"github.com/wanjiku2684/course_academy/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseContentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    string `json:"duration"`
}

type CourseRequest struct {
	Title            string                 `json:"title" validate:"required"`
	Description      string                 `json:"description" validate:"required"`
	Instructor       string                 `json:"instructor" validate:"required"`
	Duration         string                 `json:"duration" validate:"required"`
	Level            string                 `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Category         string                 `json:"category" validate:"required"`
	Image            string                 `json:"image"`
	Content          []CourseContentRequest `json:"content"`
	Requirements     []string               `json:"requirements"`
	LearningOutcomes []string               `json:"learning_outcomes"`
	IsActive         *bool                  `json:"is_active"`
}

func ListCourses(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := database.DB.
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		log.Printf("Course list error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(courses)
}

func GetCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	var course models.Course
	err = database.DB.
		Preload("Content", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}
	return c.JSON(course)
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	course := models.Course{
		Title:            req.Title,
		Description:      req.Description,
		Instructor:       req.Instructor,
		Duration:         req.Duration,
		Level:            req.Level,
		Category:         req.Category,
		Image:            req.Image,
		Content:          toCourseContent(req.Content),
		Requirements:     toJSONList(req.Requirements),
		LearningOutcomes: toJSONList(req.LearningOutcomes),
		IsActive:         true,
	}
	if course.Level == "" {
		course.Level = models.LevelBeginner
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := database.DB.Create(&course).Error; err != nil {
		log.Printf("Course create error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Instructor = req.Instructor
	course.Duration = req.Duration
	if req.Level != "" {
		course.Level = req.Level
	}
	course.Category = req.Category
	course.Image = req.Image
	course.Requirements = toJSONList(req.Requirements)
	course.LearningOutcomes = toJSONList(req.LearningOutcomes)
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&course).Error; err != nil {
		log.Printf("Course update error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	if req.Content != nil {
		if err := replaceCourseContent(&course, req.Content); err != nil {
			log.Printf("Course content update error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	return c.JSON(course)
}

func DeleteCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	result := database.DB.Delete(&models.Course{}, "id = ?", courseID)
	if result.Error != nil {
		log.Printf("Course delete error: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	database.DB.Delete(&models.CourseContent{}, "course_id = ?", courseID)

	return c.JSON(fiber.Map{"message": "Course removed"})
}

func CompleteCourse(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Course not found"})
	}

	completion := models.CourseCompletion{
		UserID:      userID,
		CourseID:    courseID,
		CompletedAt: time.Now(),
	}
	if err := database.DB.Create(&completion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Course already completed"})
		}
		log.Printf("Completion create error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{"message": "Course marked as completed", "course": course})
}

func ListCompletedCourses(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	completions := []models.CourseCompletion{}
	if err := database.DB.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("completed_at desc").
		Find(&completions).Error; err != nil {
		log.Printf("Completion list error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(completions)
}

func toCourseContent(items []CourseContentRequest) []models.CourseContent {
	content := make([]models.CourseContent, 0, len(items))
	for i, item := range items {
		content = append(content, models.CourseContent{
			Position:    i + 1,
			Title:       item.Title,
			Description: item.Description,
			VideoURL:    item.VideoURL,
			Duration:    item.Duration,
		})
	}
	return content
}

func replaceCourseContent(course *models.Course, items []CourseContentRequest) error {
	if err := database.DB.Delete(&models.CourseContent{}, "course_id = ?", course.ID).Error; err != nil {
		return err
	}
	content := toCourseContent(items)
	for i := range content {
		content[i].CourseID = course.ID
	}
	if len(content) == 0 {
		return nil
	}
	return database.DB.Create(&content).Error
}

func toJSONList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}
