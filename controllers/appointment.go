package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/notifications"
	"github.com/hoodshookups/hoods-app/utils"
)

// CreateAppointment books a window against an approved quote response. The
// transaction takes a pg_advisory_xact_lock keyed on business+date before
// the availability re-check, so two concurrent bookings of the same window
// serialize even when neither sees an existing row to lock; the loser
// re-checks after the winner commits and gets 409.
func CreateAppointment(c *fiber.Ctx) error {
	type AppointmentInput struct {
		QuoteResponseID uint   `json:"quote_response_id"`
		BusinessID      *uint  `json:"business_id"`
		ScheduledDate   string `json:"scheduled_date"`
		StartTime       string `json:"start_time"`
		EndTime         string `json:"end_time"`
		CustomerNotes   string `json:"customer_notes"`
	}

	input := new(AppointmentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	date, err := time.Parse("2006-01-02", input.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scheduled_date must be YYYY-MM-DD",
		})
	}
	startMinutes, err := utils.ParseClock(input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var response models.QuoteResponse
	if err := db.DB.Preload("Quote.Service").Preload("Business").First(&response, input.QuoteResponseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote response not found",
		})
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin && response.Quote.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}

	if response.Status != models.ResponseApproved {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Quote response must be approved before scheduling",
		})
	}

	businessID := input.BusinessID
	if businessID == nil {
		businessID = response.BusinessID
	}

	endTime := input.EndTime
	if businessID != nil {
		var hours models.BusinessHours
		err := db.DB.Where("business_id = ? AND day_of_week = ?", *businessID, int(date.Weekday())).
			First(&hours).Error
		if err != nil || hours.IsClosed {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Business is closed on that day",
			})
		}

		open, err := utils.ParseClock(hours.OpenTime)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Invalid business hours"})
		}
		closeAt, err := utils.ParseClock(hours.CloseTime)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Invalid business hours"})
		}
		// Same clipping policy as slot generation: the start must fall
		// inside open hours; the window may run past close.
		if startMinutes < open || startMinutes >= closeAt {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Start time is outside business hours",
			})
		}
		if endTime == "" {
			slotMinutes := hours.SlotDurationMinutes
			if slotMinutes <= 0 {
				slotMinutes = models.DefaultSlotMinutes
			}
			endTime = utils.FormatClock(startMinutes + slotMinutes)
		}
	}
	if endTime == "" {
		endTime = utils.FormatClock(startMinutes + models.DefaultSlotMinutes)
	}
	endMinutes, err := utils.ParseClock(endTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if endMinutes <= startMinutes {
		endMinutes += 24 * 60 // window wraps past midnight after clipping
	}

	now := time.Now()
	appointment := models.Appointment{
		QuoteID:         response.QuoteID,
		QuoteResponseID: response.ID,
		BusinessID:      businessID,
		ScheduledDate:   date,
		StartTime:       input.StartTime,
		EndTime:         endTime,
		Status:          models.StatusConfirmed,
		CustomerNotes:   input.CustomerNotes,
		ConfirmedAt:     &now,
	}

	quote := response.Quote
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if businessID != nil {
			classID, dateID := bookingLockKey(*businessID, date)
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", classID, dateID).Error; err != nil {
				return err
			}
			conflict, err := windowTaken(tx, *businessID, date, startMinutes, endMinutes)
			if err != nil {
				return err
			}
			if conflict {
				return errWindowTaken
			}
			if blocked, err := windowBlocked(tx, *businessID, date, startMinutes, endMinutes); err != nil {
				return err
			} else if blocked {
				return errWindowTaken
			}
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		return quote.Transition(tx, models.QuoteScheduled, &userID, "Appointment booked")
	})
	if err == errWindowTaken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Time slot not available",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	appointment.QuoteResponse = response
	businessName := ""
	if response.Business != nil {
		businessName = response.Business.Name
	}
	notifications.NotifyAppointmentConfirmed(&appointment, &quote, businessName)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

var errWindowTaken = fmt.Errorf("window taken")

// bookingLockKey derives the two-int advisory lock key for a business's
// calendar day: the business id and the date as days since the Unix epoch.
// Row locks alone cannot stop two inserts into an empty window, since
// neither transaction has a row to lock.
func bookingLockKey(businessID uint, date time.Time) (int32, int32) {
	day := date.UTC().Truncate(24 * time.Hour)
	return int32(businessID), int32(day.Unix() / 86400)
}

// windowTaken scans this business/date's active appointments and reports
// whether any overlaps the candidate window. Runs under the advisory lock
// taken by the booking transaction.
func windowTaken(tx *gorm.DB, businessID uint, date time.Time, start, end int) (bool, error) {
	var existing []models.Appointment
	err := tx.Raw(`
		SELECT *
		FROM appointments
		WHERE business_id = ? AND scheduled_date = ?
		  AND status NOT IN ('cancelled', 'no_show')
		  AND deleted_at IS NULL
		FOR UPDATE
	`, businessID, date).Scan(&existing).Error
	if err != nil {
		return false, err
	}

	candidate := utils.Interval{Start: start, End: end}
	for _, appointment := range existing {
		aStart, err := utils.ParseClock(appointment.StartTime)
		if err != nil {
			continue
		}
		aEnd, err := utils.ParseClock(appointment.EndTime)
		if err != nil {
			continue
		}
		if candidate.Overlaps(utils.Interval{Start: aStart, End: aEnd}) {
			return true, nil
		}
	}
	return false, nil
}

func windowBlocked(tx *gorm.DB, businessID uint, date time.Time, start, end int) (bool, error) {
	var blocks []models.BlockedSlot
	if err := tx.Where("business_id = ? AND date = ?", businessID, date).Find(&blocks).Error; err != nil {
		return false, err
	}
	candidate := utils.Interval{Start: start, End: end}
	for _, block := range blocks {
		if block.AllDay {
			return true, nil
		}
		interval, err := blockInterval(block)
		if err != nil {
			continue
		}
		if candidate.Overlaps(interval) {
			return true, nil
		}
	}
	return false, nil
}

// GetAllAppointments lists every appointment for admins and the caller's
// own for customers.
func GetAllAppointments(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)

	query := db.DB.Preload("Quote.Service").Preload("Business").Order("scheduled_date ASC, start_time ASC")
	if role != models.RoleAdmin {
		query = query.Joins("JOIN quotes ON quotes.id = appointments.quote_id").
			Where("quotes.user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("appointments.status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment, admin or owner only.
func GetAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := db.DB.Preload("Quote.Service").Preload("QuoteResponse").Preload("Business").
		First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin && appointment.Quote.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}
	return c.JSON(appointment)
}

// UpdateAppointment handles both sides of the PATCH surface: customers may
// cancel their own appointment; admins move it through the status machine
// and edit notes. Completing an appointment cascades the parent quote to
// completed.
func UpdateAppointment(c *fiber.Ctx) error {
	type UpdateInput struct {
		Status             models.AppointmentStatus `json:"status"`
		CancellationReason string                   `json:"cancellation_reason"`
		AdminNotes         string                   `json:"admin_notes"`
		CustomerNotes      string                   `json:"customer_notes"`
	}

	input := new(UpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Quote").First(&appointment, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	isAdmin := role == models.RoleAdmin
	if !isAdmin && appointment.Quote.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}
	if !isAdmin && input.Status != "" && input.Status != models.StatusCancelled {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Customers can only cancel appointments",
		})
	}

	quote := appointment.Quote
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if input.CustomerNotes != "" {
			appointment.CustomerNotes = input.CustomerNotes
		}
		if isAdmin && input.AdminNotes != "" {
			appointment.AdminNotes = input.AdminNotes
		}
		if input.Status == "" {
			return tx.Save(&appointment).Error
		}

		if input.Status == models.StatusCancelled {
			appointment.CancellationReason = input.CancellationReason
		}
		if err := appointment.UpdateStatus(tx, input.Status); err != nil {
			return err
		}
		if input.Status == models.StatusCompleted && quote.Status == models.QuoteScheduled {
			return quote.Transition(tx, models.QuoteCompleted, &userID, "Appointment completed")
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	logActivity(&userID, "appointment_updated", "appointment", appointment.ID, string(appointment.Status))
	return c.JSON(appointment)
}
