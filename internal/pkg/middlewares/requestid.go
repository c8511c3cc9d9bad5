package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/flog"
)

// RequestID extracts the request id injected by the Logger chain and
// repopulates it into ctx.Locals for handlers that do not carry a context.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.IDFromFiberCtx(c)
		if ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
