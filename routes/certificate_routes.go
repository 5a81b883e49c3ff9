package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wanjiku2684/course_academy/handlers"
	"github.com/wanjiku2684/course_academy/middleware"
)

func CertificateRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	certificates := api.Group("/certificates", middleware.Protected())
	certificates.Post("/generate", handlers.GenerateCertificate)
	certificates.Get("/download/:certificateId", handlers.DownloadCertificate)
	certificates.Get("/user", handlers.ListUserCertificates)
}
