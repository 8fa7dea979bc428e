package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hoodshookups/hoods-app/db"
	"github.com/hoodshookups/hoods-app/models"
	"github.com/hoodshookups/hoods-app/utils"
)

const (
	maxUploadBytes = 5 * 1024 * 1024
	maxUploadFiles = 5
	// Unattached uploads are swept after this window.
	uploadExpiry = 24 * time.Hour
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadDir returns the directory quote images are stored in.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// UploadImages stores lead-form images on disk and records them. Files stay
// eligible for the cleanup sweep until attached to a quote.
func UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected multipart form",
		})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files provided",
		})
	}
	if len(files) > maxUploadFiles {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("At most %d files per request", maxUploadFiles),
		})
	}

	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to prepare upload directory",
			Error:   err.Error(),
		})
	}

	var saved []models.QuoteImage
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Only image files are allowed (JPEG, PNG, GIF, WebP)",
			})
		}
		if file.Size > maxUploadBytes {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "File exceeds 5MB limit",
			})
		}

		filename := utils.UploadFilename(file.Filename)
		if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to save file",
				Error:   err.Error(),
			})
		}

		expires := time.Now().Add(uploadExpiry)
		image := models.QuoteImage{Filename: filename, ExpiresAt: &expires}
		if err := db.DB.Create(&image).Error; err != nil {
			os.Remove(filepath.Join(dir, filename))
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to record upload",
				Error:   err.Error(),
			})
		}
		saved = append(saved, image)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"images": saved,
	})
}
