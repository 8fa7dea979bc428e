package middleware

import "github.com/gofiber/fiber/v2"

// NoCache marks API responses uncacheable so callers always see fresh
// state. Applied to the whole /api group.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set(fiber.HeaderExpires, "0")
		return c.Next()
	}
}

// ShortCache allows five minutes of shared caching on the public catalog
// routes. Overrides the group-level NoCache headers.
func ShortCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "public, max-age=300, stale-while-revalidate=60")
		c.Response().Header.Del("Pragma")
		c.Response().Header.Del(fiber.HeaderExpires)
		return c.Next()
	}
}

// LongCache marks uploaded files immutable; upload filenames are unique,
// so a URL's content never changes.
func LongCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
		return c.Next()
	}
}
