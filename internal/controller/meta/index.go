package meta

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"mergington.dev/activities/internal/static"
)

// RegisterIndex serves the embedded landing page and redirects the root path
// onto it.
func RegisterIndex(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/static/index.html", fiber.StatusTemporaryRedirect)
	})

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(static.Content),
		MaxAge: 3600,
	}))
}
