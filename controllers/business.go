package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/utils"
)

// GetAllBusinesses lists businesses. Public callers get the accepting-leads
// subset; admins see everything.
func GetAllBusinesses(c *fiber.Ctx) error {
	query := db.DB.Preload("Hours").Preload("Services.Service")
	if c.Query("accepts_leads") == "true" {
		query = query.Where("accepts_leads = true")
	}

	var businesses []models.Business
	if err := query.Find(&businesses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch businesses",
			Error:   err.Error(),
		})
	}
	return c.JSON(businesses)
}

// GetBusiness returns one business with hours and services.
func GetBusiness(c *fiber.Ctx) error {
	var business models.Business
	if err := db.DB.Preload("Hours").Preload("Services.Service").First(&business, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}
	return c.JSON(business)
}

type businessInput struct {
	Name               string `json:"name"`
	Category           string `json:"category"`
	ContactName        string `json:"contact_name"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	ZipCode            string `json:"zip_code"`
	AcceptsLeads       *bool  `json:"accepts_leads"`
	ServiceRadiusMiles int    `json:"service_radius_miles"`
	Notes              string `json:"notes"`
	Hours              []struct {
		DayOfWeek           models.DayOfWeek `json:"day_of_week"`
		OpenTime            string           `json:"open_time"`
		CloseTime           string           `json:"close_time"`
		IsClosed            bool             `json:"is_closed"`
		SlotDurationMinutes int              `json:"slot_duration_minutes"`
	} `json:"hours"`
	ServiceIDs []uint `json:"service_ids"`
}

// CreateBusiness creates a business with its weekly hours and service list
// in one transaction.
func CreateBusiness(c *fiber.Ctx) error {
	input := new(businessInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Business name is required",
		})
	}

	business := models.Business{
		Name:               input.Name,
		Category:           input.Category,
		ContactName:        input.ContactName,
		Phone:              input.Phone,
		Email:              input.Email,
		Address:            input.Address,
		City:               input.City,
		State:              input.State,
		ZipCode:            input.ZipCode,
		AcceptsLeads:       true,
		ServiceRadiusMiles: input.ServiceRadiusMiles,
		Notes:              input.Notes,
	}
	if input.AcceptsLeads != nil {
		business.AcceptsLeads = *input.AcceptsLeads
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&business).Error; err != nil {
			return err
		}
		return writeHoursAndServices(tx, &business, input)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create business",
			Error:   err.Error(),
		})
	}

	adminID, _ := c.Locals("userID").(uint)
	logActivity(&adminID, "business_created", "business", business.ID, business.Name)

	db.DB.Preload("Hours").Preload("Services.Service").First(&business, business.ID)
	return c.Status(fiber.StatusCreated).JSON(business)
}

// UpdateBusiness replaces the business fields, hours and service list in
// one transaction.
func UpdateBusiness(c *fiber.Ctx) error {
	input := new(businessInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var business models.Business
	if err := db.DB.First(&business, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	business.Name = input.Name
	business.Category = input.Category
	business.ContactName = input.ContactName
	business.Phone = input.Phone
	business.Email = input.Email
	business.Address = input.Address
	business.City = input.City
	business.State = input.State
	business.ZipCode = input.ZipCode
	business.ServiceRadiusMiles = input.ServiceRadiusMiles
	business.Notes = input.Notes
	if input.AcceptsLeads != nil {
		business.AcceptsLeads = *input.AcceptsLeads
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&business).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", business.ID).Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", business.ID).Delete(&models.BusinessService{}).Error; err != nil {
			return err
		}
		return writeHoursAndServices(tx, &business, input)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update business",
			Error:   err.Error(),
		})
	}

	db.DB.Preload("Hours").Preload("Services.Service").First(&business, business.ID)
	return c.JSON(business)
}

// DeleteBusiness soft-deletes a business.
func DeleteBusiness(c *fiber.Ctx) error {
	if err := db.DB.Delete(&models.Business{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete business",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func writeHoursAndServices(tx *gorm.DB, business *models.Business, input *businessInput) error {
	for _, h := range input.Hours {
		row := models.BusinessHours{
			BusinessID:          business.ID,
			DayOfWeek:           h.DayOfWeek,
			OpenTime:            h.OpenTime,
			CloseTime:           h.CloseTime,
			IsClosed:            h.IsClosed,
			SlotDurationMinutes: h.SlotDurationMinutes,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	for _, serviceID := range input.ServiceIDs {
		row := models.BusinessService{BusinessID: business.ID, ServiceID: serviceID}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetBlockedSlots lists a business's exclusion intervals.
func GetBlockedSlots(c *fiber.Ctx) error {
	var slots []models.BlockedSlot
	query := db.DB.Where("business_id = ?", c.Params("id")).Order("date ASC")
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if err := query.Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch blocked slots",
			Error:   err.Error(),
		})
	}
	return c.JSON(slots)
}

// CreateBlockedSlot adds an exclusion interval (or whole blocked day).
func CreateBlockedSlot(c *fiber.Ctx) error {
	type BlockInput struct {
		Date      string `json:"date"`
		AllDay    bool   `json:"all_day"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Reason    string `json:"reason"`
	}

	input := new(BlockInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be YYYY-MM-DD",
		})
	}
	if !input.AllDay {
		if _, err := utils.ParseClock(input.StartTime); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if _, err := utils.ParseClock(input.EndTime); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	var business models.Business
	if err := db.DB.First(&business, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	slot := models.BlockedSlot{
		BusinessID: business.ID,
		Date:       date,
		AllDay:     input.AllDay,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Reason:     input.Reason,
	}
	if err := db.DB.Create(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create blocked slot",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// DeleteBlockedSlot removes an exclusion interval.
func DeleteBlockedSlot(c *fiber.Ctx) error {
	result := db.DB.Where("business_id = ?", c.Params("id")).Delete(&models.BlockedSlot{}, c.Params("slotId"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete blocked slot",
			Error:   result.Error.Error(),
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Blocked slot not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAvailableSlots computes the bookable windows for a business on a date:
// business hours for the weekday, minus booked appointments and blocked
// intervals.
func GetAvailableSlots(c *fiber.Ctx) error {
	dateParam := c.Query("date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be YYYY-MM-DD",
		})
	}

	var business models.Business
	if err := db.DB.First(&business, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	var hours models.BusinessHours
	err = db.DB.Where("business_id = ? AND day_of_week = ?", business.ID, int(date.Weekday())).
		First(&hours).Error
	if err != nil || hours.IsClosed {
		return c.JSON(fiber.Map{
			"date":   dateParam,
			"slots":  []utils.Slot{},
			"closed": true,
		})
	}

	var blocks []models.BlockedSlot
	db.DB.Where("business_id = ? AND date = ?", business.ID, date).Find(&blocks)
	busy := make([]utils.Interval, 0, len(blocks))
	for _, block := range blocks {
		if block.AllDay {
			return c.JSON(fiber.Map{
				"date":          dateParam,
				"slots":         []utils.Slot{},
				"fully_blocked": true,
			})
		}
		interval, err := blockInterval(block)
		if err != nil {
			continue
		}
		busy = append(busy, interval)
	}

	var appointments []models.Appointment
	db.DB.Where("business_id = ? AND scheduled_date = ? AND status NOT IN ?",
		business.ID, date, []models.AppointmentStatus{models.StatusCancelled, models.StatusNoShow}).
		Find(&appointments)
	for _, appointment := range appointments {
		start, err := utils.ParseClock(appointment.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.ParseClock(appointment.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, utils.Interval{Start: start, End: end})
	}

	slots, err := utils.GenerateSlots(hours.OpenTime, hours.CloseTime, hours.SlotDurationMinutes, busy)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate slots",
			Error:   err.Error(),
		})
	}
	if slots == nil {
		slots = []utils.Slot{}
	}

	return c.JSON(fiber.Map{
		"date":  dateParam,
		"slots": slots,
	})
}

func blockInterval(block models.BlockedSlot) (utils.Interval, error) {
	start, err := utils.ParseClock(block.StartTime)
	if err != nil {
		return utils.Interval{}, err
	}
	end, err := utils.ParseClock(block.EndTime)
	if err != nil {
		return utils.Interval{}, err
	}
	return utils.Interval{Start: start, End: end}, nil
}
