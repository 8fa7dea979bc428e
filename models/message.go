package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is one entry in the per-quote chat thread between the customer
// and the admin team. Clients poll for messages newer than the last id seen.
type Message struct {
	gorm.Model
	QuoteID    uint       `json:"quote_id" gorm:"index"`
	SenderID   uint       `json:"sender_id"`
	Sender     User       `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	SenderRole string     `json:"sender_role"`
	Body       string     `json:"body"`
	ReadAt     *time.Time `json:"read_at"`
}
