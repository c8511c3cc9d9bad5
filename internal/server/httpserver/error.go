package httpserver

import (
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/pkg/mgerr"
)

// handleCustomError renders a typed API error as the {"detail": ...} body the
// clients of this API expect.
func handleCustomError(ctx *fiber.Ctx, e *mgerr.MergingtonError) error {
	log.Warn().
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", e.StatusCode).
		Msg(e.Detail)

	body := fiber.Map{
		"detail": e.Detail,
	}

	// Add extra details if needed
	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	if e, ok := err.(*mgerr.MergingtonError); ok {
		return handleCustomError(ctx, e)
	}

	// Default to 500; fiber's own errors keep their status code but are
	// reshaped onto the same body. Sentinels are never mutated here.
	re := mgerr.ErrInternalError
	if e, ok := err.(*fiber.Error); ok {
		re = mgerr.New(e.Code, e.Message)
	}

	log.Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("internal server error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, re)
}
