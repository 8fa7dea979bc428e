package models

import (
	"time"

	"gorm.io/gorm"
)

type Business struct {
	gorm.Model
	Name               string            `json:"name"`
	Category           string            `json:"category"`
	ContactName        string            `json:"contact_name"`
	Phone              string            `json:"phone"`
	Email              string            `json:"email"`
	Address            string            `json:"address"`
	City               string            `json:"city"`
	State              string            `json:"state"`
	ZipCode            string            `json:"zip_code"`
	AcceptsLeads       bool              `json:"accepts_leads" gorm:"default:true"`
	ServiceRadiusMiles int               `json:"service_radius_miles"`
	Notes              string            `json:"notes"`
	Hours              []BusinessHours   `json:"hours,omitempty" gorm:"foreignKey:BusinessID"`
	Services           []BusinessService `json:"services,omitempty" gorm:"foreignKey:BusinessID"`
}

// DefaultSlotMinutes is the slot width used when a business has not
// configured one for the day.
const DefaultSlotMinutes = 120

type BusinessHours struct {
	gorm.Model
	BusinessID          uint      `json:"business_id" gorm:"index"`
	DayOfWeek           DayOfWeek `json:"day_of_week"`
	OpenTime            string    `json:"open_time"`  // "HH:MM" 24h
	CloseTime           string    `json:"close_time"` // "HH:MM" 24h
	IsClosed            bool      `json:"is_closed" gorm:"default:false"`
	SlotDurationMinutes int       `json:"slot_duration_minutes" gorm:"default:120"`
}

func (h *BusinessHours) BeforeCreate(tx *gorm.DB) error {
	if h.SlotDurationMinutes == 0 {
		h.SlotDurationMinutes = DefaultSlotMinutes
	}
	return nil
}

type BusinessService struct {
	gorm.Model
	BusinessID uint     `json:"business_id" gorm:"index"`
	ServiceID  uint     `json:"service_id"`
	Service    Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	BasePrice  *float64 `json:"base_price"`
}

// BlockedSlot marks a business as unavailable on a date, either for the
// whole day or for a time range.
type BlockedSlot struct {
	gorm.Model
	BusinessID uint      `json:"business_id" gorm:"index"`
	Date       time.Time `json:"date" gorm:"type:date;index"`
	AllDay     bool      `json:"all_day" gorm:"default:false"`
	StartTime  string    `json:"start_time"` // "HH:MM", empty when all_day
	EndTime    string    `json:"end_time"`
	Reason     string    `json:"reason"`
}

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)
