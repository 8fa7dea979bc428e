package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/utils"
)

// CreateInvoice issues an invoice against a quote, optionally tied to its
// appointment.
func CreateInvoice(c *fiber.Ctx) error {
	type InvoiceInput struct {
		QuoteID       uint       `json:"quote_id"`
		AppointmentID *uint      `json:"appointment_id"`
		Amount        float64    `json:"amount"`
		Description   string     `json:"description"`
		DueDate       *time.Time `json:"due_date"`
	}

	input := new(InvoiceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be positive",
		})
	}

	var quote models.Quote
	if err := db.DB.First(&quote, input.QuoteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}

	invoice := models.Invoice{
		QuoteID:       input.QuoteID,
		AppointmentID: input.AppointmentID,
		Amount:        input.Amount,
		Description:   input.Description,
		DueDate:       input.DueDate,
		Status:        models.InvoiceDraft,
	}
	if err := db.DB.Create(&invoice).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create invoice",
			Error:   err.Error(),
		})
	}

	adminID, _ := c.Locals("userID").(uint)
	logActivity(&adminID, "invoice_created", "invoice", invoice.ID, invoice.Number)

	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetAllInvoices lists invoices for the admin screen.
func GetAllInvoices(c *fiber.Ctx) error {
	query := db.DB.Preload("Quote").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch invoices",
			Error:   err.Error(),
		})
	}
	return c.JSON(invoices)
}

// GetInvoice returns one invoice, admin or owning customer only.
func GetInvoice(c *fiber.Ctx) error {
	invoice, errResp := loadInvoiceForCaller(c)
	if invoice == nil {
		return errResp
	}
	return c.JSON(invoice)
}

// UpdateInvoiceStatus moves an invoice through draft/sent/paid/void.
func UpdateInvoiceStatus(c *fiber.Ctx) error {
	type StatusInput struct {
		Status models.InvoiceStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var invoice models.Invoice
	if err := db.DB.First(&invoice, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invoice not found",
		})
	}

	if err := invoice.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	adminID, _ := c.Locals("userID").(uint)
	logActivity(&adminID, "invoice_status_changed", "invoice", invoice.ID, string(input.Status))
	return c.JSON(invoice)
}

// GetInvoicePDF renders the invoice as a downloadable PDF.
func GetInvoicePDF(c *fiber.Ctx) error {
	invoice, errResp := loadInvoiceForCaller(c)
	if invoice == nil {
		return errResp
	}

	pdfBytes, err := utils.GenerateInvoicePDF(invoice)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to render invoice PDF",
			Error:   err.Error(),
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoice.Number))
	return c.Send(pdfBytes)
}

// loadInvoiceForCaller fetches the invoice and enforces admin-or-owner
// access. On failure it returns nil and the already-written error response.
func loadInvoiceForCaller(c *fiber.Ctx) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := db.DB.Preload("Quote").Preload("Appointment").First(&invoice, c.Params("id")).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invoice not found",
		})
	}

	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin && invoice.Quote.UserID != userID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied",
		})
	}
	return &invoice, nil
}
