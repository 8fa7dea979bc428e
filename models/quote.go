package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteNew       QuoteStatus = "new"
	QuoteInReview  QuoteStatus = "in_review"
	QuoteAccepted  QuoteStatus = "accepted"
	QuoteScheduled QuoteStatus = "scheduled"
	QuoteCompleted QuoteStatus = "completed"
	QuoteCancelled QuoteStatus = "cancelled"
	QuoteClosed    QuoteStatus = "closed"
)

// quoteTransitions is the closed transition table for Quote.Status. The
// normal lifecycle advances new -> in_review -> accepted -> scheduled ->
// completed; cancelled and closed are admin side-exits from any
// non-terminal state.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteNew:       {QuoteInReview, QuoteCancelled, QuoteClosed},
	QuoteInReview:  {QuoteAccepted, QuoteCancelled, QuoteClosed},
	QuoteAccepted:  {QuoteScheduled, QuoteCancelled, QuoteClosed},
	QuoteScheduled: {QuoteCompleted, QuoteCancelled, QuoteClosed},
	QuoteCompleted: {},
	QuoteCancelled: {},
	QuoteClosed:    {},
}

func (s QuoteStatus) CanTransition(to QuoteStatus) bool {
	for _, next := range quoteTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Quote struct {
	gorm.Model
	UserID      uint         `json:"user_id" gorm:"index"`
	User        User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ServiceID   uint         `json:"service_id"`
	Service     Service      `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email"`
	Address     string       `json:"address"`
	Message     string       `json:"message"`
	Status      QuoteStatus  `json:"status" gorm:"default:new;index"`
	AcceptedAt  *time.Time   `json:"accepted_at"`
	CompletedAt *time.Time   `json:"completed_at"`
	Images      []QuoteImage `json:"images,omitempty" gorm:"foreignKey:QuoteID"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.Status == "" {
		q.Status = QuoteNew
	}
	return nil
}

// Transition validates and applies a status change, stamps the lifecycle
// timestamps and appends exactly one QuoteStatusHistory row. Callers run it
// inside whatever transaction the surrounding operation uses.
func (q *Quote) Transition(tx *gorm.DB, to QuoteStatus, changedBy *uint, notes string) error {
	if !q.Status.CanTransition(to) {
		return fmt.Errorf("invalid quote transition from %s to %s", q.Status, to)
	}

	now := time.Now()
	q.Status = to
	switch to {
	case QuoteAccepted:
		q.AcceptedAt = &now
	case QuoteCompleted:
		q.CompletedAt = &now
	}
	if err := tx.Save(q).Error; err != nil {
		return err
	}

	history := QuoteStatusHistory{
		QuoteID:   q.ID,
		Status:    to,
		Notes:     notes,
		ChangedBy: changedBy,
	}
	return tx.Create(&history).Error
}

// QuoteStatusHistory is the append-only audit trail of quote status
// changes. Rows are only ever inserted.
type QuoteStatusHistory struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	QuoteID   uint        `json:"quote_id" gorm:"index"`
	Status    QuoteStatus `json:"status"`
	Notes     string      `json:"notes"`
	ChangedBy *uint       `json:"changed_by"`
	CreatedAt time.Time   `json:"created_at"`
}

type QuoteImage struct {
	gorm.Model
	QuoteID   *uint      `json:"quote_id" gorm:"index"`
	Filename  string     `json:"filename" gorm:"unique"`
	ExpiresAt *time.Time `json:"expires_at"`
}
