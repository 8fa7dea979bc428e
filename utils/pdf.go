package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hoodshookups/hoods-app/models"
)

// GenerateInvoicePDF renders an invoice as a single-page A4 PDF.
func GenerateInvoicePDF(invoice *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+invoice.Number, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Hoods Hookups")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice %s - %s", invoice.Number, invoice.CreatedAt.Format("Jan 2, 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", invoice.Status))
	pdf.Ln(6)

	if invoice.Quote.ID != 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Billed to: %s", invoice.Quote.Name))
		pdf.Ln(6)
		if invoice.Quote.Address != "" {
			pdf.Cell(0, 6, invoice.Quote.Address)
			pdf.Ln(6)
		}
	}

	if invoice.Appointment != nil && invoice.Appointment.ID != 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Service date: %s %s-%s",
			invoice.Appointment.ScheduledDate.Format("Jan 2, 2006"),
			invoice.Appointment.StartTime, invoice.Appointment.EndTime))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(140, 7, "Description")
	pdf.Cell(30, 7, "Amount")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	description := invoice.Description
	if description == "" {
		description = "Services rendered"
	}
	pdf.Cell(140, 6, description)
	pdf.Cell(30, 6, fmt.Sprintf("$%.2f", invoice.Amount))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(140, 8, "Total")
	pdf.Cell(30, 8, fmt.Sprintf("$%.2f", invoice.Amount))
	pdf.Ln(10)

	if invoice.DueDate != nil {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Due by %s", invoice.DueDate.Format("Jan 2, 2006")))
		pdf.Ln(6)
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("Jan 2, 2006 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
