package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NoCacheHTML is a Fiber middleware that stops browsers from caching HTML pages,
// so a redeployed frontend is picked up on the next load. Other assets keep their
// default caching.
func NoCacheHTML() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.HasSuffix(path, ".html") {
			c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, max-age=0")
			c.Set(fiber.HeaderPragma, "no-cache")
			c.Set(fiber.HeaderExpires, "0")
		}
		return c.Next()
	}
}
