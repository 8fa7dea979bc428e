package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/middleware"
)

// SetupInvoiceRoutes configures invoice routes
func SetupInvoiceRoutes(app *fiber.App) {
	invoices := app.Group("/api/invoices", middleware.Protected())
	invoices.Post("/", middleware.RequireAdmin(), controllers.CreateInvoice)
	invoices.Get("/", middleware.RequireAdmin(), controllers.GetAllInvoices)
	invoices.Get("/:id", controllers.GetInvoice)
	invoices.Patch("/:id", middleware.RequireAdmin(), controllers.UpdateInvoiceStatus)
	invoices.Get("/:id/pdf", controllers.GetInvoicePDF)
}
