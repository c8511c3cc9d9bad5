package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/util/i18n"
)

func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if trans, ok := ctx.Locals("T").(ut.Translator); ok {
		return trans
	}
	return i18n.UT.GetFallback()
}
