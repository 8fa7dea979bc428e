package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/cron"
	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/middleware"
	"github.com/hoodshookups/hoods-app/redis"
	"github.com/hoodshookups/hoods-app/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	db.Seed()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use("/api", middleware.NoCache())

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use("/uploads", middleware.LongCache())
	app.Static("/uploads", controllers.UploadDir())

	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupQuoteRoutes(app)
	routes.SetupBusinessRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupInvoiceRoutes(app)
	routes.SetupAnalyticsRoutes(app)
	routes.SetupUploadRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
