package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wanjiku2684/course_academy/handlers"
	"github.com/wanjiku2684/course_academy/middleware"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected(), middleware.AdminRequired())
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
