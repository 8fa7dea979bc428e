package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointments := app.Group("/api/appointments", middleware.Protected())
	appointments.Get("/", controllers.GetAllAppointments)
	appointments.Get("/:id", controllers.GetAppointment)
	appointments.Post("/", controllers.CreateAppointment)
	appointments.Patch("/:id", controllers.UpdateAppointment)
}
