package repo

import (
	"context"

	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"golang.org/x/exp/slices"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/pkg/mgerr"
)

// Activity stores the activity catalog. Exactly one implementation is active
// per process: Postgres via bun when a DSN is configured, otherwise the
// in-memory store.
type Activity interface {
	// EnsureSchema creates the backing table when it does not exist yet.
	EnsureSchema(ctx context.Context) error

	// Count reports the number of stored activities.
	Count(ctx context.Context) (int, error)

	// List returns all activities in catalog order. Returned values never
	// alias store state.
	List(ctx context.Context) ([]*model.Activity, error)

	// AddParticipant appends email to the named activity's participant list.
	// It returns mgerr.ErrActivityNotFound for an unknown activity and a 400
	// mgerr error for duplicate signups and full activities.
	AddParticipant(ctx context.Context, name, email string) error

	// RemoveParticipant removes email from the named activity's participant
	// list, preserving the order of the remaining entries.
	RemoveParticipant(ctx context.Context, name, email string) error

	// Replace swaps the entire stored catalog for the given one.
	Replace(ctx context.Context, activities []*model.Activity) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

func NewActivity(db *bun.DB) Activity {
	if db != nil {
		return newActivityPG(db)
	}
	return newActivityMem()
}

// signupGuard enforces the signup rules against the activity's current
// participant list. Callers hold whatever lock makes the check-then-append
// atomic.
func signupGuard(activity *model.Activity, email string) error {
	if lo.Contains(activity.Participants, email) {
		return mgerr.ErrInvalidRequest.Msg("Student %s is already signed up for %s", email, activity.Name)
	}
	if len(activity.Participants) >= activity.MaxParticipants {
		return mgerr.ErrInvalidRequest.Msg("Activity %s is full", activity.Name)
	}
	return nil
}

// unregisterIndex locates email in the activity's participant list.
func unregisterIndex(activity *model.Activity, email string) (int, error) {
	i := slices.Index(activity.Participants, email)
	if i < 0 {
		return -1, mgerr.ErrInvalidRequest.Msg("Student %s is not registered for %s", email, activity.Name)
	}
	return i, nil
}
