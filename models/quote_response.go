package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type QuoteResponseStatus string

const (
	ResponsePending  QuoteResponseStatus = "pending"
	ResponseApproved QuoteResponseStatus = "approved"
	ResponseRejected QuoteResponseStatus = "rejected"
)

var responseTransitions = map[QuoteResponseStatus][]QuoteResponseStatus{
	ResponsePending:  {ResponseApproved, ResponseRejected},
	ResponseApproved: {},
	ResponseRejected: {},
}

func (s QuoteResponseStatus) CanTransition(to QuoteResponseStatus) bool {
	for _, next := range responseTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// QuoteResponse is an admin-issued price quote against a Quote. A quote may
// accumulate several responses over time; approval acts on one specific
// response and is only legal while it is still pending.
type QuoteResponse struct {
	gorm.Model
	QuoteID             uint                `json:"quote_id" gorm:"index"`
	Quote               Quote               `json:"quote,omitempty" gorm:"foreignKey:QuoteID"`
	BusinessID          *uint               `json:"business_id"`
	Business            *Business           `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	Price               float64             `json:"price" gorm:"type:decimal(10,2)"`
	PriceDescription    string              `json:"price_description"`
	Message             string              `json:"message"`
	ValidUntil          *time.Time          `json:"valid_until"`
	Status              QuoteResponseStatus `json:"status" gorm:"default:pending"`
	RespondedBy         uint                `json:"responded_by"`
	CustomerRespondedAt *time.Time          `json:"customer_responded_at"`
}

func (r *QuoteResponse) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = ResponsePending
	}
	return nil
}

// Resolve records the customer's decision on a pending response.
func (r *QuoteResponse) Resolve(tx *gorm.DB, to QuoteResponseStatus) error {
	if !r.Status.CanTransition(to) {
		return fmt.Errorf("invalid quote response transition from %s to %s", r.Status, to)
	}
	now := time.Now()
	r.Status = to
	r.CustomerRespondedAt = &now
	return tx.Save(r).Error
}
