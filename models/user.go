package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name"`
	Role           string          `json:"role" gorm:"default:customer"`
	ContactMethods []ContactMethod `json:"contact_methods,omitempty" gorm:"foreignKey:UserID"`
	Quotes         []Quote         `json:"quotes,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	ContactTypeEmail = "email"
	ContactTypePhone = "phone"
)

type ContactMethod struct {
	gorm.Model
	UserID          uint       `json:"user_id"`
	User            User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Type            string     `json:"type"` // "email" or "phone"
	Value           string     `json:"value"`
	NormalizedValue string     `json:"normalized_value" gorm:"index"`
	IsPrimary       bool       `json:"is_primary"`
	BypassOTP       bool       `json:"bypass_otp" gorm:"default:false"`
	VerifiedAt      *time.Time `json:"verified_at"`
}

// NormalizeContact canonicalizes a contact value before lookup: emails are
// lowercased and trimmed, phone numbers keep digits only.
func NormalizeContact(contactType, value string) string {
	if contactType == ContactTypeEmail {
		return strings.ToLower(strings.TrimSpace(value))
	}
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

type OTPToken struct {
	gorm.Model
	ContactMethodID   uint          `json:"contact_method_id" gorm:"index"`
	ContactMethod     ContactMethod `json:"contact_method,omitempty" gorm:"foreignKey:ContactMethodID"`
	OTPHash           string        `json:"-"`
	ExpiresAt         time.Time     `json:"expires_at"`
	AttemptsRemaining int           `json:"attempts_remaining" gorm:"default:3"`
	ConsumedAt        *time.Time    `json:"consumed_at"`
}

// Live reports whether the token can still be used for verification.
func (t *OTPToken) Live(now time.Time) bool {
	return t.ConsumedAt == nil && t.AttemptsRemaining > 0 && now.Before(t.ExpiresAt)
}

type Session struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}
