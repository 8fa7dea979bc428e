package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/controllers"
)

// SetupUploadRoutes configures the lead-form image upload route
func SetupUploadRoutes(app *fiber.App) {
	app.Post("/api/uploads", controllers.UploadImages)
}
