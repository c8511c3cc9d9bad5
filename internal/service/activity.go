package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/model/cache"
	"mergington.dev/activities/internal/pkg/mgerr"
	"mergington.dev/activities/internal/pkg/observability"
	"mergington.dev/activities/internal/repo"
)

type Activity struct {
	ActivityRepo repo.Activity

	cacheTTL time.Duration
}

func NewActivity(activityRepo repo.Activity, conf *appconfig.Config) *Activity {
	return &Activity{
		ActivityRepo: activityRepo,
		cacheTTL:     conf.ActivityCacheTTL,
	}
}

// MutationReceipt describes one applied catalog mutation.
type MutationReceipt struct {
	// MutationID is a lowercase ULID identifying the mutation in logs and in
	// the X-Mutation-Id response header.
	MutationID string

	// Message is the confirmation text shown to the student.
	Message string
}

// Cache: (singular) activities, TTL from config; flushed on every mutation
func (s *Activity) GetActivities(ctx context.Context) ([]*model.Activity, error) {
	start := time.Now()
	source := observability.SourceCache

	var activities []*model.Activity
	err := cache.Activities.MutexGetSet(&activities, func() ([]*model.Activity, error) {
		source = observability.SourceStore
		return s.ActivityRepo.List(ctx)
	}, s.cacheTTL)
	if err != nil {
		return nil, err
	}

	observability.CatalogLoadDuration.
		WithLabelValues(source).
		Observe(time.Since(start).Seconds())

	return activities, nil
}

// Signup registers email as a participant of the named activity. The
// activities cache is flushed before returning, so a read that follows a
// successful signup always observes it.
func (s *Activity) Signup(ctx context.Context, name, email string) (*MutationReceipt, error) {
	if err := s.ActivityRepo.AddParticipant(ctx, name, email); err != nil {
		observability.ActivityMutations.
			WithLabelValues(observability.ActionSignup, outcomeOf(err)).
			Inc()
		return nil, err
	}

	return s.applied(observability.ActionSignup, name, email,
		fmt.Sprintf("Signed up %s for %s", email, name)), nil
}

// Unregister removes email from the named activity's participant list. Cache
// semantics are identical to Signup.
func (s *Activity) Unregister(ctx context.Context, name, email string) (*MutationReceipt, error) {
	if err := s.ActivityRepo.RemoveParticipant(ctx, name, email); err != nil {
		observability.ActivityMutations.
			WithLabelValues(observability.ActionUnregister, outcomeOf(err)).
			Inc()
		return nil, err
	}

	return s.applied(observability.ActionUnregister, name, email,
		fmt.Sprintf("Unregistered %s from %s", email, name)), nil
}

func (s *Activity) applied(action, name, email, message string) *MutationReceipt {
	if err := cache.Activities.Delete(); err != nil {
		log.Warn().Err(err).Msg("failed to flush activities cache")
	}

	receipt := &MutationReceipt{
		MutationID: strings.ToLower(ulid.Make().String()),
		Message:    message,
	}

	observability.ActivityMutations.
		WithLabelValues(action, observability.OutcomeApplied).
		Inc()

	log.Info().
		Str("evt.name", "activity.mutation.applied").
		Str("mutationId", receipt.MutationID).
		Str("action", action).
		Str("activity", name).
		Str("email", email).
		Msg("activity mutation applied")

	return receipt
}

// outcomeOf classifies a mutation failure for metrics: a typed API error is a
// rejected request, anything else is a store failure.
func outcomeOf(err error) string {
	var e *mgerr.MergingtonError
	if errors.As(err, &e) {
		return observability.OutcomeRejected
	}
	return observability.OutcomeError
}
