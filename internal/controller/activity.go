package controller

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/model/types"
	"mergington.dev/activities/internal/pkg/cachectrl"
	"mergington.dev/activities/internal/pkg/mgerr"
	"mergington.dev/activities/internal/server/svr"
	"mergington.dev/activities/internal/service"
	"mergington.dev/activities/internal/util/rekuest"
)

type Activity struct {
	fx.In

	ActivityService *service.Activity
}

func RegisterActivity(activities *svr.Activities, c Activity) {
	activities.Get("/", c.GetActivities)
	activities.Post("/:name/signup", c.Signup)
	activities.Post("/:name/unregister", c.Unregister)
}

// GetActivities returns the whole catalog as an object keyed by activity
// name. The response is marked uncacheable so a reload right after a mutation
// observes it.
func (c *Activity) GetActivities(ctx *fiber.Ctx) error {
	activities, err := c.ActivityService.GetActivities(ctx.UserContext())
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(lo.SliceToMap(activities, func(activity *model.Activity) (string, *model.Activity) {
		return activity.Name, activity
	}))
}

func (c *Activity) Signup(ctx *fiber.Ctx) error {
	name, err := activityName(ctx)
	if err != nil {
		return err
	}
	var query types.ParticipantQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	receipt, err := c.ActivityService.Signup(ctx.UserContext(), name, query.Email)
	if err != nil {
		return err
	}

	ctx.Set(constant.MutationIDHeader, receipt.MutationID)
	return ctx.JSON(fiber.Map{
		"message": receipt.Message,
	})
}

func (c *Activity) Unregister(ctx *fiber.Ctx) error {
	name, err := activityName(ctx)
	if err != nil {
		return err
	}
	var query types.ParticipantQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	receipt, err := c.ActivityService.Unregister(ctx.UserContext(), name, query.Email)
	if err != nil {
		return err
	}

	ctx.Set(constant.MutationIDHeader, receipt.MutationID)
	return ctx.JSON(fiber.Map{
		"message": receipt.Message,
	})
}

// activityName decodes the :name route param. Activity names contain spaces,
// so the segment arrives percent-encoded.
func activityName(ctx *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return "", mgerr.ErrInvalidRequest.Msg("invalid activity name: %s", err)
	}
	return name, nil
}
