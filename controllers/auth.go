package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/redis"
	"github.com/hoodshookups/hoods-app/utils"
)

const (
	otpExpiryMinutes   = 10
	otpRequestLimit    = 5
	otpRequestWindow   = 10 * time.Minute
	sessionExpiryHours = 24
)

// RequestOTP finds or creates the user behind a contact method and issues a
// one-time code. Contacts flagged bypass_otp skip code issuance entirely.
func RequestOTP(c *fiber.Ctx) error {
	type OTPRequest struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}

	input := new(OTPRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Value == "" || (input.Type != models.ContactTypeEmail && input.Type != models.ContactTypePhone) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "type must be email or phone and value is required",
		})
	}

	normalized := models.NormalizeContact(input.Type, input.Value)

	allowed, err := redis.AllowOTPRequest(input.Type+":"+normalized, otpRequestLimit, otpRequestWindow)
	if err != nil {
		log.Printf("OTP rate limit check failed: %v", err)
	} else if !allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many OTP requests, try again later",
		})
	}

	contact, err := findOrCreateContact(input.Type, input.Value, normalized)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to look up contact",
		})
	}

	if contact.BypassOTP {
		return c.JSON(fiber.Map{
			"success":           true,
			"bypass_otp":        true,
			"contact_method_id": contact.ID,
		})
	}

	otp := utils.GenerateOTP()
	otpHash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue OTP",
		})
	}

	// A new request invalidates any outstanding code for this contact.
	now := time.Now()
	db.DB.Model(&models.OTPToken{}).
		Where("contact_method_id = ? AND consumed_at IS NULL", contact.ID).
		Update("consumed_at", now)

	token := models.OTPToken{
		ContactMethodID:   contact.ID,
		OTPHash:           string(otpHash),
		ExpiresAt:         now.Add(otpExpiryMinutes * time.Minute),
		AttemptsRemaining: 3,
	}
	if err := db.DB.Create(&token).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue OTP",
		})
	}

	response := fiber.Map{
		"success":           true,
		"bypass_otp":        false,
		"contact_method_id": contact.ID,
	}
	if os.Getenv("APP_ENV") != "production" {
		log.Printf("[DEV] OTP for %s:%s is: %s", input.Type, input.Value, otp)
		response["otp"] = otp
	}
	return c.JSON(response)
}

// VerifyOTP checks the submitted code against the latest live token,
// consumes it on success and issues a session token.
func VerifyOTP(c *fiber.Ctx) error {
	type VerifyRequest struct {
		ContactMethodID uint   `json:"contact_method_id"`
		Code            string `json:"code"`
	}

	input := new(VerifyRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var token models.OTPToken
	err := db.DB.Where(
		"contact_method_id = ? AND consumed_at IS NULL AND expires_at > ? AND attempts_remaining > 0",
		input.ContactMethodID, time.Now(),
	).Order("created_at DESC").First(&token).Error
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired OTP",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(token.OTPHash), []byte(input.Code)); err != nil {
		db.DB.Model(&token).Update("attempts_remaining", token.AttemptsRemaining-1)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid OTP code",
		})
	}

	now := time.Now()
	db.DB.Model(&token).Update("consumed_at", now)
	db.DB.Model(&models.ContactMethod{}).Where("id = ?", input.ContactMethodID).Update("verified_at", now)

	var contact models.ContactMethod
	if err := db.DB.Preload("User").First(&contact, input.ContactMethodID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load user",
		})
	}

	return issueSession(c, &contact.User)
}

// LoginBypass issues a session for bypass_otp contacts without a code.
func LoginBypass(c *fiber.Ctx) error {
	type BypassRequest struct {
		ContactMethodID uint `json:"contact_method_id"`
	}

	input := new(BypassRequest)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var contact models.ContactMethod
	err := db.DB.Preload("User").
		Where("id = ? AND bypass_otp = true", input.ContactMethodID).
		First(&contact).Error
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Bypass not allowed",
		})
	}

	return issueSession(c, &contact.User)
}

// GetUserProfile returns the current user's profile
func GetUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var user models.User
	if err := db.DB.Preload("ContactMethods").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	return c.JSON(user)
}

// Logout removes the caller's stored sessions. The JWT itself stays valid
// until expiry; session rows exist for audit and revocation sweeps.
func Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if ok {
		db.DB.Where("user_id = ?", userID).Delete(&models.Session{})
	}
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

func findOrCreateContact(contactType, value, normalized string) (*models.ContactMethod, error) {
	var contact models.ContactMethod
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("type = ? AND normalized_value = ?", contactType, normalized).First(&contact).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		user := models.User{Role: models.RoleCustomer}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		contact = models.ContactMethod{
			UserID:          user.ID,
			Type:            contactType,
			Value:           value,
			NormalizedValue: normalized,
			IsPrimary:       true,
		}
		return tx.Create(&contact).Error
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func issueSession(c *fiber.Ctx, user *models.User) error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}

	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(sessionExpiryHours * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	hash := sha256.Sum256([]byte(tokenString))
	session := models.Session{
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(hash[:]),
		ExpiresAt: time.Now().Add(sessionExpiryHours * time.Hour),
	}
	if err := db.DB.Create(&session).Error; err != nil {
		log.Printf("Failed to record session: %v", err)
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
		"user": fiber.Map{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
	})
}
