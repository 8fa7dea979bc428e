package cron

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hoodshookups/hoods-app/controllers"
	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/notifications"
)

// StartCronJobs initializes and starts the background job scheduler.
func StartCronJobs() {
	c := cron.New()

	// Check every minute for tomorrow's appointments that still need a
	// reminder; the reminder_sent flag keeps this idempotent.
	if _, err := c.AddFunc("* * * * *", sendAppointmentReminders); err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	// Hourly sweep of expired, unattached uploads.
	if _, err := c.AddFunc("0 * * * *", cleanupExpiredUploads); err != nil {
		log.Fatalf("Failed to add upload cleanup cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// sendAppointmentReminders finds confirmed appointments scheduled for
// tomorrow that have not been reminded yet and emits reminder intents.
func sendAppointmentReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var appointments []models.Appointment
	err := db.DB.Preload("Quote.Service").Preload("Business").
		Where("status = ? AND scheduled_date = ? AND reminder_sent = false",
			models.StatusConfirmed, tomorrow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		businessName := ""
		if appointment.Business != nil {
			businessName = appointment.Business.Name
		}
		notifications.NotifyAppointmentReminder(&appointment, &appointment.Quote, businessName)

		if err := db.DB.Model(&appointment).Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to mark reminder sent for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d", appointment.ID)
	}
}

// cleanupExpiredUploads deletes uploads that were never attached to a quote
// and have passed their expiry, removing both the file and its row.
func cleanupExpiredUploads() {
	var images []models.QuoteImage
	err := db.DB.Where("quote_id IS NULL AND expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Find(&images).Error
	if err != nil {
		log.Printf("Error fetching expired uploads: %v", err)
		return
	}

	dir := controllers.UploadDir()
	for _, image := range images {
		path := filepath.Join(dir, image.Filename)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove upload %s: %v", image.Filename, err)
			continue
		}
		if err := db.DB.Unscoped().Delete(&image).Error; err != nil {
			log.Printf("Failed to delete upload row %d: %v", image.ID, err)
		}
	}
	if len(images) > 0 {
		log.Printf("Cleaned up %d expired uploads", len(images))
	}
}
