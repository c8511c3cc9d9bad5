package service

import (
	"context"

	"github.com/pkg/errors"

	"mergington.dev/activities/internal/repo"
)

var ErrStoreNotReachable = errors.New("activity store not reachable")

type Health struct {
	ActivityRepo repo.Activity
}

func NewHealth(activityRepo repo.Activity) *Health {
	return &Health{
		ActivityRepo: activityRepo,
	}
}

func (s *Health) Ping(ctx context.Context) error {
	if err := s.ActivityRepo.Ping(ctx); err != nil {
		return errors.Wrap(ErrStoreNotReachable, err.Error())
	}

	return nil
}
