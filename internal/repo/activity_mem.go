package repo

import (
	"context"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/pkg/mgerr"
)

// activityMem keeps the catalog in process memory, in insertion order. It is
// the default store when no Postgres DSN is configured and disappears with
// the process, so every boot reseeds it.
type activityMem struct {
	mu     sync.RWMutex
	names  []string
	byName map[string]*model.Activity
}

func newActivityMem() *activityMem {
	return &activityMem{byName: make(map[string]*model.Activity)}
}

func (r *activityMem) EnsureSchema(ctx context.Context) error {
	return nil
}

func (r *activityMem) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.names), nil
}

func (r *activityMem) List(ctx context.Context) ([]*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := make([]*model.Activity, 0, len(r.names))
	for _, name := range r.names {
		clone, err := cloneActivity(r.byName[name])
		if err != nil {
			return nil, err
		}
		activities = append(activities, clone)
	}

	return activities, nil
}

func (r *activityMem) AddParticipant(ctx context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.byName[name]
	if !ok {
		return mgerr.ErrActivityNotFound
	}
	if err := signupGuard(activity, email); err != nil {
		return err
	}

	activity.Participants = append(activity.Participants, email)
	return nil
}

func (r *activityMem) RemoveParticipant(ctx context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.byName[name]
	if !ok {
		return mgerr.ErrActivityNotFound
	}
	i, err := unregisterIndex(activity, email)
	if err != nil {
		return err
	}

	activity.Participants = slices.Delete(activity.Participants, i, i+1)
	return nil
}

func (r *activityMem) Replace(ctx context.Context, activities []*model.Activity) error {
	names := make([]string, 0, len(activities))
	byName := make(map[string]*model.Activity, len(activities))
	for _, activity := range activities {
		clone, err := cloneActivity(activity)
		if err != nil {
			return err
		}
		if _, ok := byName[clone.Name]; ok {
			return errors.Errorf("duplicate activity name: %s", clone.Name)
		}
		names = append(names, clone.Name)
		byName[clone.Name] = clone
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.names = names
	r.byName = byName
	return nil
}

func (r *activityMem) Ping(ctx context.Context) error {
	return nil
}

// cloneActivity deep-copies an activity so callers and the cache never alias
// store state. A nil participant list is normalized to an empty one, which
// keeps the wire representation at [] rather than null.
func cloneActivity(src *model.Activity) (*model.Activity, error) {
	var dst model.Activity
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "failed to clone activity")
	}
	if dst.Participants == nil {
		dst.Participants = []string{}
	}
	return &dst, nil
}
