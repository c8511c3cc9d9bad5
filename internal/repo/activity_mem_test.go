package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/pkg/mgerr"
)

func seededMem(t *testing.T) *activityMem {
	t.Helper()

	r := newActivityMem()
	err := r.Replace(context.Background(), []*model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 2,
			Participants:    []string{"michael@mergington.edu"},
		},
		{
			Name:            "Art Workshop",
			Description:     "Develop your artistic skills in painting, drawing, and sculpture",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{},
		},
	})
	require.NoError(t, err)
	return r
}

func TestActivityMemList(t *testing.T) {
	ctx := context.Background()
	r := seededMem(t)

	t.Run("KeepsInsertionOrder", func(t *testing.T) {
		activities, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, activities, 2)
		assert.Equal(t, "Chess Club", activities[0].Name)
		assert.Equal(t, "Art Workshop", activities[1].Name)
	})

	t.Run("NeverAliasesStoreState", func(t *testing.T) {
		activities, err := r.List(ctx)
		require.NoError(t, err)
		activities[0].Participants = append(activities[0].Participants, "mallory@mergington.edu")
		activities[1].Description = "changed"

		again, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"michael@mergington.edu"}, again[0].Participants)
		assert.Equal(t, "Develop your artistic skills in painting, drawing, and sculpture", again[1].Description)
	})

	t.Run("EmptyParticipantsIsNonNil", func(t *testing.T) {
		activities, err := r.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, activities[1].Participants)
		assert.Empty(t, activities[1].Participants)
	})
}

func TestActivityMemAddParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("AppendsInOrder", func(t *testing.T) {
		r := seededMem(t)
		require.NoError(t, r.AddParticipant(ctx, "Chess Club", "daniel@mergington.edu"))

		activities, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, activities[0].Participants)
	})

	t.Run("Rejections", func(t *testing.T) {
		r := seededMem(t)
		require.NoError(t, r.AddParticipant(ctx, "Chess Club", "daniel@mergington.edu"))

		tests := []struct {
			name       string
			activity   string
			email      string
			statusCode int
			detail     string
		}{
			{"UnknownActivity", "Knitting Society", "emma@mergington.edu", 404, "Activity not found"},
			{"DuplicateSignup", "Chess Club", "michael@mergington.edu", 400, "Student michael@mergington.edu is already signed up for Chess Club"},
			{"Full", "Chess Club", "emma@mergington.edu", 400, "Activity Chess Club is full"},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				err := r.AddParticipant(ctx, test.activity, test.email)
				require.Error(t, err)

				var e *mgerr.MergingtonError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, test.statusCode, e.StatusCode)
				assert.Equal(t, test.detail, e.Detail)
			})
		}
	})
}

func TestActivityMemRemoveParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesKeepingOrder", func(t *testing.T) {
		r := seededMem(t)
		require.NoError(t, r.AddParticipant(ctx, "Art Workshop", "emma@mergington.edu"))
		require.NoError(t, r.AddParticipant(ctx, "Art Workshop", "sophia@mergington.edu"))
		require.NoError(t, r.AddParticipant(ctx, "Art Workshop", "john@mergington.edu"))

		require.NoError(t, r.RemoveParticipant(ctx, "Art Workshop", "sophia@mergington.edu"))

		activities, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"emma@mergington.edu", "john@mergington.edu"}, activities[1].Participants)
	})

	t.Run("Rejections", func(t *testing.T) {
		r := seededMem(t)

		tests := []struct {
			name       string
			activity   string
			email      string
			statusCode int
			detail     string
		}{
			{"UnknownActivity", "Knitting Society", "michael@mergington.edu", 404, "Activity not found"},
			{"NotRegistered", "Chess Club", "emma@mergington.edu", 400, "Student emma@mergington.edu is not registered for Chess Club"},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				err := r.RemoveParticipant(ctx, test.activity, test.email)
				require.Error(t, err)

				var e *mgerr.MergingtonError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, test.statusCode, e.StatusCode)
				assert.Equal(t, test.detail, e.Detail)
			})
		}
	})
}

func TestActivityMemReplace(t *testing.T) {
	ctx := context.Background()
	r := seededMem(t)

	t.Run("RejectsDuplicateNames", func(t *testing.T) {
		err := r.Replace(ctx, []*model.Activity{
			{Name: "Chess Club", MaxParticipants: 12},
			{Name: "Chess Club", MaxParticipants: 12},
		})
		assert.Error(t, err)
	})

	t.Run("SwapsCatalogWholesale", func(t *testing.T) {
		err := r.Replace(ctx, []*model.Activity{
			{Name: "Soccer Club", MaxParticipants: 18},
		})
		require.NoError(t, err)

		n, err := r.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		activities, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Soccer Club", activities[0].Name)
	})
}
