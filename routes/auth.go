package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/request-otp", controllers.RequestOTP)
	auth.Post("/verify-otp", controllers.VerifyOTP)
	auth.Post("/login-bypass", controllers.LoginBypass)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetUserProfile)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
