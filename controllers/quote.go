package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/notifications"
	"github.com/hoodshookups/hoods-app/utils"
)

// CreateQuote handles the public lead form: it files the service request,
// attaches any uploaded images, writes the first history row and notifies
// both sides. Notification failures never fail the request.
func CreateQuote(c *fiber.Ctx) error {
	type QuoteInput struct {
		ServiceID uint     `json:"service_id"`
		Name      string   `json:"name"`
		Phone     string   `json:"phone"`
		Email     string   `json:"email"`
		Address   string   `json:"address"`
		Message   string   `json:"message"`
		Images    []string `json:"images"`
	}

	input := new(QuoteInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Name == "" || input.Phone == "" || input.Email == "" || input.Address == "" || input.ServiceID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	contact, err := findOrCreateContact(
		models.ContactTypeEmail,
		input.Email,
		models.NormalizeContact(models.ContactTypeEmail, input.Email),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create quote",
		})
	}

	quote := models.Quote{
		UserID:    contact.UserID,
		ServiceID: input.ServiceID,
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		Message:   input.Message,
		Status:    models.QuoteNew,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		history := models.QuoteStatusHistory{
			QuoteID: quote.ID,
			Status:  models.QuoteNew,
			Notes:   "Quote submitted",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		if len(input.Images) > 0 {
			// Attaching an upload to a quote takes it out of the expiry sweep.
			return tx.Model(&models.QuoteImage{}).
				Where("filename IN ? AND quote_id IS NULL", input.Images).
				Updates(map[string]interface{}{"quote_id": quote.ID, "expires_at": nil}).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create quote",
			Error:   err.Error(),
		})
	}

	quote.Service = service
	notifications.NotifyQuoteReceived(&quote)

	return c.Status(fiber.StatusCreated).JSON(quote)
}

// GetAllQuotes lists quotes for the admin dashboard, filterable by status
// and service.
func GetAllQuotes(c *fiber.Ctx) error {
	query := db.DB.Preload("Service").Preload("Images").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if serviceID := c.QueryInt("service_id"); serviceID > 0 {
		query = query.Where("service_id = ?", serviceID)
	}

	var quotes []models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch quotes",
			Error:   err.Error(),
		})
	}
	return c.JSON(quotes)
}

// GetQuote returns one quote with its responses and history. Admins see
// any quote; customers only their own.
func GetQuote(c *fiber.Ctx) error {
	id := c.Params("id")
	var quote models.Quote
	if err := db.DB.Preload("Service").Preload("Images").First(&quote, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin && quote.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}

	var responses []models.QuoteResponse
	db.DB.Where("quote_id = ?", quote.ID).Order("created_at DESC").Find(&responses)
	var history []models.QuoteStatusHistory
	db.DB.Where("quote_id = ?", quote.ID).Order("created_at ASC").Find(&history)

	return c.JSON(fiber.Map{
		"quote":     quote,
		"responses": responses,
		"history":   history,
	})
}

// UpdateQuoteStatus applies an admin status change through the transition
// table and records it.
func UpdateQuoteStatus(c *fiber.Ctx) error {
	type StatusInput struct {
		Status models.QuoteStatus `json:"status"`
		Notes  string             `json:"notes"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var quote models.Quote
	if err := db.DB.First(&quote, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}

	adminID, _ := c.Locals("userID").(uint)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return quote.Transition(tx, input.Status, &adminID, input.Notes)
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	logActivity(&adminID, "quote_status_changed", "quote", quote.ID, string(input.Status))
	return c.JSON(quote)
}

// CreateQuoteResponse issues a priced quote against a lead. A fresh lead
// moves to in_review; a re-quote on a quote already in review leaves the
// status alone.
func CreateQuoteResponse(c *fiber.Ctx) error {
	type ResponseInput struct {
		BusinessID       *uint      `json:"business_id"`
		Price            float64    `json:"price"`
		PriceDescription string     `json:"price_description"`
		Message          string     `json:"message"`
		ValidUntil       *time.Time `json:"valid_until"`
	}

	input := new(ResponseInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price must be positive",
		})
	}

	var quote models.Quote
	if err := db.DB.Preload("Service").First(&quote, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}

	adminID, _ := c.Locals("userID").(uint)
	response := models.QuoteResponse{
		QuoteID:          quote.ID,
		BusinessID:       input.BusinessID,
		Price:            input.Price,
		PriceDescription: input.PriceDescription,
		Message:          input.Message,
		ValidUntil:       input.ValidUntil,
		Status:           models.ResponsePending,
		RespondedBy:      adminID,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		if quote.Status == models.QuoteNew {
			return quote.Transition(tx, models.QuoteInReview, &adminID, "Price quote sent")
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create quote response",
			Error:   err.Error(),
		})
	}

	notifications.NotifyPriceResponse(&quote, &response)
	logActivity(&adminID, "quote_response_sent", "quote_response", response.ID, "")

	return c.Status(fiber.StatusCreated).JSON(response)
}

func logActivity(actorID *uint, action, entityType string, entityID uint, details string) {
	entry := models.ActivityLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	db.DB.Create(&entry)
}
