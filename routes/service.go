package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/middleware"
)

// SetupServiceRoutes configures the service catalog routes
func SetupServiceRoutes(app *fiber.App) {
	services := app.Group("/api/services")
	services.Get("/", middleware.ShortCache(), controllers.GetAllServices)
	services.Get("/:id", middleware.ShortCache(), controllers.GetService)
	services.Post("/", middleware.Protected(), middleware.RequireAdmin(), controllers.CreateService)
	services.Put("/:id", middleware.Protected(), middleware.RequireAdmin(), controllers.UpdateService)
	services.Delete("/:id", middleware.Protected(), middleware.RequireAdmin(), controllers.DeleteService)
}
