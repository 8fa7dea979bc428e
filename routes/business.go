package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/middleware"
)

// SetupBusinessRoutes configures business directory and availability routes
func SetupBusinessRoutes(app *fiber.App) {
	businesses := app.Group("/api/businesses")
	businesses.Get("/", controllers.GetAllBusinesses)
	businesses.Get("/:id", controllers.GetBusiness)
	businesses.Post("/", middleware.Protected(), middleware.RequireAdmin(), controllers.CreateBusiness)
	businesses.Put("/:id", middleware.Protected(), middleware.RequireAdmin(), controllers.UpdateBusiness)
	businesses.Delete("/:id", middleware.Protected(), middleware.RequireAdmin(), controllers.DeleteBusiness)

	businesses.Get("/:id/blocked-slots", middleware.Protected(), middleware.RequireAdmin(), controllers.GetBlockedSlots)
	businesses.Post("/:id/blocked-slots", middleware.Protected(), middleware.RequireAdmin(), controllers.CreateBlockedSlot)
	businesses.Delete("/:id/blocked-slots/:slotId", middleware.Protected(), middleware.RequireAdmin(), controllers.DeleteBlockedSlot)

	// Public so the scheduling page works straight from the emailed link
	businesses.Get("/:id/available-slots", controllers.GetAvailableSlots)
}
