package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestNoCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Use("/api", NoCache())
	app.Get("/api/quotes", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quotes", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get("Cache-Control"); got != "no-store, no-cache, must-revalidate, proxy-revalidate" {
		t.Errorf("Cache-Control = %q", got)
	}
	if got := resp.Header.Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma = %q, want no-cache", got)
	}
	if got := resp.Header.Get("Expires"); got != "0" {
		t.Errorf("Expires = %q, want 0", got)
	}
}

func TestShortCacheOverridesGroupNoCache(t *testing.T) {
	app := fiber.New()
	app.Use("/api", NoCache())
	app.Get("/api/services", ShortCache(), func(c *fiber.Ctx) error {
		return c.JSON([]string{})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/services", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get("Cache-Control"); got != "public, max-age=300, stale-while-revalidate=60" {
		t.Errorf("Cache-Control = %q", got)
	}
	if got := resp.Header.Get("Pragma"); got != "" {
		t.Errorf("Pragma should be cleared on cacheable routes, got %q", got)
	}
	if got := resp.Header.Get("Expires"); got != "" {
		t.Errorf("Expires should be cleared on cacheable routes, got %q", got)
	}
}

func TestLongCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Use("/uploads", LongCache())
	app.Get("/uploads/abc.jpg", func(c *fiber.Ctx) error {
		return c.SendString("bytes")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/uploads/abc.jpg", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get("Cache-Control"); got != "public, max-age=31536000, immutable" {
		t.Errorf("Cache-Control = %q", got)
	}
}
