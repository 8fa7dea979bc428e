package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/middleware"
)

// SetupQuoteRoutes configures the lead/quote lifecycle routes
func SetupQuoteRoutes(app *fiber.App) {
	quotes := app.Group("/api/quotes")
	quotes.Post("/", controllers.CreateQuote)
	quotes.Get("/", middleware.Protected(), middleware.RequireAdmin(), controllers.GetAllQuotes)
	quotes.Get("/:id", middleware.Protected(), controllers.GetQuote)
	quotes.Patch("/:id", middleware.Protected(), middleware.RequireAdmin(), controllers.UpdateQuoteStatus)
	quotes.Post("/:id/responses", middleware.Protected(), middleware.RequireAdmin(), controllers.CreateQuoteResponse)

	// Per-quote chat thread, polled by both sides
	quotes.Post("/:id/messages", middleware.Protected(), controllers.CreateMessage)
	quotes.Get("/:id/messages", middleware.Protected(), controllers.GetMessages)

	// Public approval page fetch, keyed by response id from the emailed link
	app.Get("/api/approve/:responseId", controllers.GetApprovalResponse)
	app.Patch("/api/quote-responses/:id", middleware.Protected(), controllers.RespondToQuoteResponse)
}
