package repo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/pkg/mgerr"
)

// activityPG stores the catalog in Postgres. Conditional mutations run inside
// a transaction with the row locked, so the exists/duplicate/full checks and
// the participant update are atomic.
type activityPG struct {
	db *bun.DB
}

func newActivityPG(db *bun.DB) *activityPG {
	return &activityPG{db: db}
}

func (r *activityPG) EnsureSchema(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*model.Activity)(nil)).
		IfNotExists().
		Exec(ctx)
	return errors.Wrap(err, "failed to create activities table")
}

func (r *activityPG) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*model.Activity)(nil)).
		Count(ctx)
}

func (r *activityPG) List(ctx context.Context) ([]*model.Activity, error) {
	var activities []*model.Activity
	err := r.db.NewSelect().
		Model(&activities).
		Order("activity_id ASC").
		Scan(ctx)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	for _, activity := range activities {
		if activity.Participants == nil {
			activity.Participants = []string{}
		}
	}

	return activities, nil
}

func (r *activityPG) AddParticipant(ctx context.Context, name, email string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		activity, err := lockActivity(ctx, tx, name)
		if err != nil {
			return err
		}
		if err := signupGuard(activity, email); err != nil {
			return err
		}

		activity.Participants = append(activity.Participants, email)
		return updateParticipants(ctx, tx, activity)
	})
}

func (r *activityPG) RemoveParticipant(ctx context.Context, name, email string) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		activity, err := lockActivity(ctx, tx, name)
		if err != nil {
			return err
		}
		i, err := unregisterIndex(activity, email)
		if err != nil {
			return err
		}

		activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
		return updateParticipants(ctx, tx, activity)
	})
}

func (r *activityPG) Replace(ctx context.Context, activities []*model.Activity) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*model.Activity)(nil)).
			Where("TRUE").
			Exec(ctx)
		if err != nil {
			return err
		}

		if len(activities) == 0 {
			return nil
		}
		_, err = tx.NewInsert().
			Model(&activities).
			Exec(ctx)
		return err
	})
}

func (r *activityPG) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func lockActivity(ctx context.Context, tx bun.Tx, name string) (*model.Activity, error) {
	var activity model.Activity
	err := tx.NewSelect().
		Model(&activity).
		Where("name = ?", name).
		For("UPDATE").
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, mgerr.ErrActivityNotFound
	} else if err != nil {
		return nil, err
	}

	return &activity, nil
}

func updateParticipants(ctx context.Context, tx bun.Tx, activity *model.Activity) error {
	_, err := tx.NewUpdate().
		Model(activity).
		Column("participants").
		WherePK().
		Exec(ctx)
	return err
}
