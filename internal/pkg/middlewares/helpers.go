package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// Chained mounts middlewares in the order given, which is also the order
// they run in.
func Chained(router fiber.Router, middlewares ...fiber.Handler) {
	for _, middleware := range middlewares {
		router.Use(middleware)
	}
}
