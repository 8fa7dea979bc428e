package db

import (
	"fmt"
	"log"

	"github.com/hoodshookups/hoods-app/models"
)

func Migrate() {
	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.ContactMethod{},
		&models.OTPToken{},
		&models.Session{},
		&models.Service{},
		&models.Business{},
		&models.BusinessHours{},
		&models.BusinessService{},
		&models.BlockedSlot{},
		&models.Quote{},
		&models.QuoteImage{},
		&models.QuoteStatusHistory{},
		&models.QuoteResponse{},
		&models.Appointment{},
		&models.Invoice{},
		&models.NotificationTemplate{},
		&models.NotificationLog{},
		&models.ActivityLog{},
		&models.Message{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
