package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	appRepos "github.com/yigit/diasporahub/internal/app/repositories"
)

// CreateDefaultData fills empty device collections with the mock datasets.
// Existing collections are never overwritten.
func CreateDefaultData(ctx context.Context, repos *appRepos.LocalRepositories, lgr zerolog.Logger) error {
	now := time.Now()
	lgr.Info().Msg("Checking/Creating default local data...")
	var finalErr error

	seeders := []struct {
		name string
		run  func() (bool, error)
	}{
		{"threads", func() (bool, error) { return repos.ThreadRepository.Seed(ctx, Threads(now)) }},
		{"events", func() (bool, error) { return repos.EventRepository.Seed(ctx, Events(now)) }},
		{"posts", func() (bool, error) { return repos.PostRepository.Seed(ctx, Posts(now)) }},
	}

	for _, s := range seeders {
		seeded, err := s.run()
		if err != nil {
			lgr.Error().Err(err).Str("collection", s.name).Msg("Error seeding collection")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if seeded {
			lgr.Info().Str("collection", s.name).Msg("Seeded default data")
		}
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Default data creation finished with errors")
	} else {
		lgr.Info().Msg("Default data check/creation completed")
	}
	return finalErr
}
