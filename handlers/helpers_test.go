package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wanjiku2684/course_academy/database"
	"github.com/wanjiku2684/course_academy/models"
	"github.com/wanjiku2684/course_academy/routes"
	"github.com/wanjiku2684/course_academy/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "handler-test-secret"

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("CERTIFICATES_DIR", t.TempDir())
	t.Setenv("CERTIFICATE_TEMPLATE", filepath.Join("..", "templates", "certificate.html"))

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseContent{},
		&models.CourseCompletion{},
		&models.Certificate{},
	))
	database.DB = db

	app := fiber.New(fiber.Config{CaseSensitive: true, StrictRouting: true})
	routes.AuthRoutes(app)
	routes.CourseRoutes(app)
	routes.CertificateRoutes(app)

	return app, db
}

func stubPDFEngine(t *testing.T) {
	t.Helper()
	original := services.PDFEngine
	services.PDFEngine = func(html string) ([]byte, error) {
		return []byte("%PDF-1.4\n" + html), nil
	}
	t.Cleanup(func() { services.PDFEngine = original })
}

func createUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		FullName: "Test " + role,
		Email:    uuid.New().String() + "@example.com",
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, title, instructor string) models.Course {
	t.Helper()
	course := models.Course{
		Title:       title,
		Description: "A course about " + title,
		Instructor:  instructor,
		Duration:    "6 hours",
		Level:       models.LevelBeginner,
		Category:    "Programming",
		IsActive:    true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func completeCourse(t *testing.T, db *gorm.DB, userID, courseID uuid.UUID) {
	t.Helper()
	completion := models.CourseCompletion{
		UserID:      userID,
		CourseID:    courseID,
		CompletedAt: time.Now(),
	}
	require.NoError(t, db.Create(&completion).Error)
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":   user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
