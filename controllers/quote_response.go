package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/notifications"
)

// GetApprovalResponse backs the public approval page: the customer follows
// the emailed link keyed by response id, no login required.
func GetApprovalResponse(c *fiber.Ctx) error {
	var response models.QuoteResponse
	if err := db.DB.Preload("Quote.Service").Preload("Business").First(&response, c.Params("responseId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote response not found",
		})
	}

	return c.JSON(fiber.Map{
		"response": response,
		"quote": fiber.Map{
			"id":           response.Quote.ID,
			"name":         response.Quote.Name,
			"address":      response.Quote.Address,
			"service_name": response.Quote.Service.Name,
			"status":       response.Quote.Status,
		},
	})
}

// RespondToQuoteResponse records the customer's approve/reject decision.
// Approval is only legal while the response is pending; approving moves the
// parent quote to accepted and triggers the schedule-request notification.
func RespondToQuoteResponse(c *fiber.Ctx) error {
	type DecisionInput struct {
		Decision string `json:"decision"` // "approve" or "reject"
	}

	input := new(DecisionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Decision != "approve" && input.Decision != "reject" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "decision must be approve or reject",
		})
	}

	var response models.QuoteResponse
	if err := db.DB.Preload("Quote.Service").Preload("Business").First(&response, c.Params("id")).Error; err != nil {
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

	if response.Status != models.ResponsePending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Quote response is no longer pending",
		})
	}

	quote := response.Quote
	if input.Decision == "approve" {
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := response.Resolve(tx, models.ResponseApproved); err != nil {
				return err
			}
			return quote.Transition(tx, models.QuoteAccepted, &userID, "Customer approved quote")
		})
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		businessName := ""
		if response.Business != nil {
			businessName = response.Business.Name
		}
		notifications.NotifyScheduleRequest(&quote, &response, businessName)

		return c.JSON(fiber.Map{
			"response": response,
			"quote":    quote,
		})
	}

	// Rejection resolves this response only; the quote stays in review so
	// the admin can issue a new price.
	if err := response.Resolve(db.DB, models.ResponseRejected); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"response": response,
		"quote":    quote,
	})
}
