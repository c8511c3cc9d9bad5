package svr

import (
	"github.com/gofiber/fiber/v2"
)

// Activities is the endpoint group carrying the public activity routes.
type Activities struct {
	fiber.Router
}

// Meta is the endpoint group carrying operational routes.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*Activities, *Meta) {
	activities := app.Group("/activities")
	meta := app.Group("/api/_")

	return &Activities{Router: activities}, &Meta{Router: meta}
}
