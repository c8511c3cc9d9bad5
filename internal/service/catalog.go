package service

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/model"
	"mergington.dev/activities/internal/model/cache"
	"mergington.dev/activities/internal/repo"
)

// Catalog seeds and resets the school's stock activity catalog.
type Catalog struct {
	ActivityRepo repo.Activity
}

func NewCatalog(activityRepo repo.Activity) *Catalog {
	return &Catalog{
		ActivityRepo: activityRepo,
	}
}

// Seed ensures the schema exists and populates the stock catalog when the
// store is empty. The in-memory store is always empty at boot; a Postgres
// store keeps whatever state earlier runs accumulated.
func (s *Catalog) Seed(ctx context.Context) error {
	if err := s.ActivityRepo.EnsureSchema(ctx); err != nil {
		return err
	}

	n, err := s.ActivityRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().
			Str("evt.name", "catalog.seed.skipped").
			Int("activities", n).
			Msg("activity catalog already populated")
		return nil
	}

	return s.Reset(ctx)
}

// Reset unconditionally replaces the stored catalog with the stock one and
// flushes the activities cache.
func (s *Catalog) Reset(ctx context.Context) error {
	stock := DefaultCatalog()
	if err := s.ActivityRepo.Replace(ctx, stock); err != nil {
		log.Error().
			Err(err).
			Str("stock", spew.Sdump(stock)).
			Msg("failed to replace the activity catalog")
		return err
	}
	if err := cache.Activities.Delete(); err != nil {
		return err
	}

	log.Info().
		Str("evt.name", "catalog.seeded").
		Int("activities", len(stock)).
		Msg("activity catalog seeded")

	return nil
}

// SeedDefaultCatalog seeds the catalog once the rest of the graph is up.
func SeedDefaultCatalog(lc fx.Lifecycle, catalog *Catalog) {
	lc.Append(fx.Hook{
		OnStart: catalog.Seed,
	})
}

// DefaultCatalog returns the school's stock extracurricular catalog.
func DefaultCatalog() []*model.Activity {
	return []*model.Activity{
		{
			Name:            "Basketball Team",
			Description:     "Join the school basketball team for training and competitions",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{},
		},
		{
			Name:            "Soccer Club",
			Description:     "Participate in soccer practice and matches",
			Schedule:        "Wednesdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 18,
			Participants:    []string{},
		},
		{
			Name:            "Drama Club",
			Description:     "Explore acting, stagecraft, and participate in school plays",
			Schedule:        "Mondays, 4:00 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{},
		},
		{
			Name:            "Art Workshop",
			Description:     "Develop your artistic skills in painting, drawing, and sculpture",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{},
		},
		{
			Name:            "Math Olympiad",
			Description:     "Prepare for and compete in mathematics competitions",
			Schedule:        "Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{},
		},
		{
			Name:            "Science Club",
			Description:     "Conduct experiments and explore scientific concepts",
			Schedule:        "Wednesdays, 4:00 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{},
		},
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}
