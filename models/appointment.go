package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, next := range appointmentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment ties a quote and its approved response to a concrete booking
// window on a business's calendar. Times are naive "HH:MM" strings in the
// business's local day, like the hours rows they are checked against.
type Appointment struct {
	gorm.Model
	QuoteID            uint              `json:"quote_id" gorm:"index"`
	Quote              Quote             `json:"quote,omitempty" gorm:"foreignKey:QuoteID"`
	QuoteResponseID    uint              `json:"quote_response_id"`
	QuoteResponse      QuoteResponse     `json:"quote_response,omitempty" gorm:"foreignKey:QuoteResponseID"`
	BusinessID         *uint             `json:"business_id" gorm:"index"`
	Business           *Business         `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	ScheduledDate      time.Time         `json:"scheduled_date" gorm:"type:date;index"`
	StartTime          string            `json:"start_time"` // "HH:MM" 24h
	EndTime            string            `json:"end_time"`
	Status             AppointmentStatus `json:"status" gorm:"default:pending"`
	CustomerNotes      string            `json:"customer_notes"`
	AdminNotes         string            `json:"admin_notes"`
	CancellationReason string            `json:"cancellation_reason"`
	ConfirmedAt        *time.Time        `json:"confirmed_at"`
	CompletedAt        *time.Time        `json:"completed_at"`
	CancelledAt        *time.Time        `json:"cancelled_at"`
	ReminderSent       bool              `json:"reminder_sent" gorm:"default:false"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// UpdateStatus validates and applies a status change and stamps the
// matching timestamp.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if !a.Status.CanTransition(newStatus) {
		return fmt.Errorf("invalid appointment transition from %s to %s", a.Status, newStatus)
	}

	now := time.Now()
	a.Status = newStatus
	switch newStatus {
	case StatusConfirmed:
		a.ConfirmedAt = &now
	case StatusCompleted:
		a.CompletedAt = &now
	case StatusCancelled:
		a.CancelledAt = &now
	}
	return tx.Save(a).Error
}

// Blocks reports whether the appointment still occupies its window for
// availability purposes.
func (a *Appointment) Blocks() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}
