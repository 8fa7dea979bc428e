package models

import (
	"time"
)

// ActivityLog records admin and system actions for the audit screen.
// Append-only.
type ActivityLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ActorID    *uint     `json:"actor_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type" gorm:"index"`
	EntityID   uint      `json:"entity_id"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
