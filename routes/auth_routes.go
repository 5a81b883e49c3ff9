package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wanjiku2684/course_academy/handlers"
	"github.com/wanjiku2684/course_academy/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/me", middleware.Protected(), handlers.GetCurrentUser)
}
