package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wanjiku2684/course_academy/handlers"
	"github.com/wanjiku2684/course_academy/middleware"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses")
	courses.Get("", handlers.ListCourses)

	// Registered before "/:courseId" so the literal path wins.
	courses.Get("/user/completed", middleware.Protected(), handlers.ListCompletedCourses)

	courses.Get("/:courseId", handlers.GetCourse)
	courses.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateCourse)
	courses.Put("/:courseId", middleware.Protected(), middleware.AdminRequired(), handlers.UpdateCourse)
	courses.Delete("/:courseId", middleware.Protected(), middleware.AdminRequired(), handlers.DeleteCourse)
	courses.Post("/:courseId/complete", middleware.Protected(), handlers.CompleteCourse)
}
