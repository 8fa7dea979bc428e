package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft: {InvoiceSent, InvoiceVoid},
	InvoiceSent:  {InvoicePaid, InvoiceVoid},
	InvoicePaid:  {},
	InvoiceVoid:  {},
}

func (s InvoiceStatus) CanTransition(to InvoiceStatus) bool {
	for _, next := range invoiceTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Invoice struct {
	gorm.Model
	Number        string        `json:"number" gorm:"unique"`
	QuoteID       uint          `json:"quote_id" gorm:"index"`
	Quote         Quote         `json:"quote,omitempty" gorm:"foreignKey:QuoteID"`
	AppointmentID *uint         `json:"appointment_id"`
	Appointment   *Appointment  `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
	Amount        float64       `json:"amount" gorm:"type:decimal(10,2)"`
	Description   string        `json:"description"`
	Status        InvoiceStatus `json:"status" gorm:"default:draft"`
	IssuedAt      *time.Time    `json:"issued_at"`
	DueDate       *time.Time    `json:"due_date"`
	PaidAt        *time.Time    `json:"paid_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.Status == "" {
		i.Status = InvoiceDraft
	}
	if i.Number == "" {
		i.Number = fmt.Sprintf("INV-%d", time.Now().UnixMilli())
	}
	return nil
}

// UpdateStatus validates and applies a status change and stamps the
// matching timestamp.
func (i *Invoice) UpdateStatus(tx *gorm.DB, newStatus InvoiceStatus) error {
	if !i.Status.CanTransition(newStatus) {
		return fmt.Errorf("invalid invoice transition from %s to %s", i.Status, newStatus)
	}

	now := time.Now()
	i.Status = newStatus
	switch newStatus {
	case InvoiceSent:
		i.IssuedAt = &now
	case InvoicePaid:
		i.PaidAt = &now
	}
	return tx.Save(i).Error
}
