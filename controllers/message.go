package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/utils"
)

// CreateMessage posts a chat message on a quote thread. Customers may only
// write on their own quotes.
func CreateMessage(c *fiber.Ctx) error {
	type MessageInput struct {
		Body string `json:"body"`
	}

	input := new(MessageInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message body is required",
		})
	}

	quote, errResp := loadQuoteForCaller(c)
	if quote == nil {
		return errResp
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	message := models.Message{
		QuoteID:    quote.ID,
		SenderID:   userID,
		SenderRole: role,
		Body:       input.Body,
	}
	if err := db.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to send message",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetMessages returns a quote's chat thread. Pollers pass ?after=<id> to
// fetch only newer messages. Fetching marks the other side's messages read.
func GetMessages(c *fiber.Ctx) error {
	quote, errResp := loadQuoteForCaller(c)
	if quote == nil {
		return errResp
	}

	query := db.DB.Where("quote_id = ?", quote.ID).Order("created_at ASC")
	if after := c.QueryInt("after"); after > 0 {
		query = query.Where("id > ?", after)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch messages",
			Error:   err.Error(),
		})
	}

	role, _ := c.Locals("role").(string)
	db.DB.Model(&models.Message{}).
		Where("quote_id = ? AND sender_role != ? AND read_at IS NULL", quote.ID, role).
		Update("read_at", time.Now())

	return c.JSON(messages)
}

func loadQuoteForCaller(c *fiber.Ctx) (*models.Quote, error) {
	var quote models.Quote
	if err := db.DB.First(&quote, c.Params("id")).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin && quote.UserID != userID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}
	return &quote, nil
}
