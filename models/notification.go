package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationTemplate struct {
	gorm.Model
	Name    string `json:"name" gorm:"unique"`
	Type    string `json:"type"`    // "email" or "sms"
	Subject string `json:"subject"` // email only
	Body    string `json:"body"`    // contains {{variable}} placeholders
	Active  bool   `json:"active" gorm:"default:true"`
}

const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// NotificationLog records every send attempt, success or failure, keyed to
// the entity that triggered it. Append-only.
type NotificationLog struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	TemplateID      *uint      `json:"template_id"`
	Type            string     `json:"type"`
	Recipient       string     `json:"recipient"`
	Subject         string     `json:"subject"`
	Body            string     `json:"body"`
	RelatedEntity   string     `json:"related_entity_type"`
	RelatedEntityID uint       `json:"related_entity_id"`
	Status          string     `json:"status" gorm:"default:pending"`
	ErrorMessage    string     `json:"error_message"`
	SentAt          *time.Time `json:"sent_at"`
	CreatedAt       time.Time  `json:"created_at"`
}
