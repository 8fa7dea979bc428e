package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/middleware"
)

// SetupAnalyticsRoutes configures the admin reporting routes
func SetupAnalyticsRoutes(app *fiber.App) {
	analytics := app.Group("/api/analytics", middleware.Protected(), middleware.RequireAdmin())
	analytics.Get("/summary", controllers.GetDashboardSummary)
	analytics.Get("/quotes", controllers.GetQuoteStats)
	analytics.Get("/appointments", controllers.GetAppointmentStats)
	analytics.Get("/revenue", controllers.GetRevenueStats)
	analytics.Get("/customers", controllers.GetCustomerStats)
	analytics.Get("/notifications", controllers.GetNotificationStats)
	analytics.Get("/businesses", controllers.GetBusinessStats)
	analytics.Get("/export", controllers.ExportCSV)

	app.Get("/api/activity", middleware.Protected(), middleware.RequireAdmin(), controllers.GetActivityLog)
	app.Get("/api/notifications", middleware.Protected(), middleware.RequireAdmin(), controllers.GetNotificationLog)
}
