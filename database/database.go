package database

import (
	"encoding/json"
	"fmt"
	"log"

	config "github.com/wanjiku2684/course_academy/configs"
	"github.com/wanjiku2684/course_academy/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseContent{},
		&models.CourseCompletion{},
		&models.Certificate{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("Admin credentials not configured, skipping admin seed.")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	adminUser := models.User{
		FullName: config.ConfigOr("ADMIN_FULL_NAME", "Platform Admin"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}
	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedCourses loads the starter catalog on an empty database.
func SeedCourses() {
	var count int64
	if err := DB.Model(&models.Course{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check course catalog: %v", err)
	}
	if count > 0 {
		return
	}

	for _, course := range sampleCourses() {
		if err := DB.Create(&course).Error; err != nil {
			log.Fatalf("🔥 Failed to seed course %q: %v", course.Title, err)
		}
	}
	log.Println("✅ Sample courses seeded successfully")
}

func mustJSON(items []string) []byte {
	b, err := json.Marshal(items)
	if err != nil {
		log.Fatalf("🔥 Failed to marshal seed data: %v", err)
	}
	return b
}

func sampleCourses() []models.Course {
	return []models.Course{
		{
			Title:       "JavaScript Fundamentals",
			Description: "Learn the basics of JavaScript programming language including variables, functions, objects, and DOM manipulation. Perfect for beginners who want to start their web development journey.",
			Instructor:  "Sarah Johnson",
			Duration:    "6 hours",
			Level:       models.LevelBeginner,
			Category:    "Programming",
			Image:       "https://images.unsplash.com/photo-1627398242454-45a1465c2479?w=400&h=300&fit=crop",
			Content: []models.CourseContent{
				{Position: 1, Title: "Introduction to JavaScript", Description: "Understanding what JavaScript is and its role in web development", VideoURL: "https://example.com/video1", Duration: "30 min"},
				{Position: 2, Title: "Variables and Data Types", Description: "Learn about variables, strings, numbers, and other data types", VideoURL: "https://example.com/video2", Duration: "45 min"},
				{Position: 3, Title: "Functions and Scope", Description: "Understanding functions, parameters, and variable scope", VideoURL: "https://example.com/video3", Duration: "60 min"},
			},
			Requirements:     mustJSON([]string{"Basic computer knowledge", "A modern web browser", "Text editor (VS Code recommended)"}),
			LearningOutcomes: mustJSON([]string{"Understand JavaScript syntax and structure", "Work with variables, functions, and objects", "Manipulate the DOM to create interactive web pages", "Debug and troubleshoot JavaScript code"}),
			IsActive:         true,
		},
		{
			Title:       "React.js Complete Guide",
			Description: "Master React.js from basics to advanced concepts. Build modern, scalable web applications with React hooks, context API, and best practices.",
			Instructor:  "Michael Chen",
			Duration:    "12 hours",
			Level:       models.LevelIntermediate,
			Category:    "Web Development",
			Image:       "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=400&h=300&fit=crop",
			Content: []models.CourseContent{
				{Position: 1, Title: "React Basics", Description: "Introduction to React components and JSX", VideoURL: "https://example.com/react1", Duration: "90 min"},
				{Position: 2, Title: "Hooks in Depth", Description: "useState, useEffect, and building custom hooks", VideoURL: "https://example.com/react2", Duration: "120 min"},
			},
			Requirements:     mustJSON([]string{"Solid JavaScript fundamentals", "Familiarity with HTML and CSS"}),
			LearningOutcomes: mustJSON([]string{"Build component-based user interfaces", "Manage state with hooks and context", "Structure production React applications"}),
			IsActive:         true,
		},
		{
			Title:       "Node.js Backend Development",
			Description: "Build fast, scalable server-side applications with Node.js, Express, and MongoDB. Covers REST API design, authentication, and deployment.",
			Instructor:  "Emily Rodriguez",
			Duration:    "10 hours",
			Level:       models.LevelIntermediate,
			Category:    "Backend Development",
			Image:       "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=400&h=300&fit=crop",
			Content: []models.CourseContent{
				{Position: 1, Title: "Node.js Runtime", Description: "The event loop and asynchronous programming", VideoURL: "https://example.com/node1", Duration: "60 min"},
				{Position: 2, Title: "REST APIs with Express", Description: "Routing, middleware, and error handling", VideoURL: "https://example.com/node2", Duration: "90 min"},
			},
			Requirements:     mustJSON([]string{"JavaScript experience", "Command line basics"}),
			LearningOutcomes: mustJSON([]string{"Design and build REST APIs", "Implement token-based authentication", "Persist data with a document database"}),
			IsActive:         true,
		},
	}
}
