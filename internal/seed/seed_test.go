package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/registry"
	appRepos "github.com/yigit/diasporahub/internal/app/repositories"
	"github.com/yigit/diasporahub/internal/db"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
)

func TestDatasetsReferenceKnownCommunitiesAndAreas(t *testing.T) {
	reg := registry.Default()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	check := func(kind, id, communityID, areaID string) {
		_, ok := reg.Get(communityID)
		assert.True(t, ok, "%s %s has unknown community %q", kind, id, communityID)
		if areaID != "" {
			assert.True(t, reg.AreaBelongs(communityID, areaID), "%s %s has foreign area %q", kind, id, areaID)
		}
	}

	for _, g := range Groups() {
		check("group", g.ID, g.CommunityID, g.AreaID)
	}
	for _, h := range HelpRequests(now) {
		check("request", h.ID, h.CommunityID, h.AreaID)
	}
	for _, l := range Listings() {
		check("listing", l.ID, l.CommunityID, l.AreaID)
	}
	for _, th := range Threads(now) {
		check("thread", th.ID, th.CommunityID, th.AreaID)
	}
	for _, e := range Events(now) {
		check("event", e.ID, e.CommunityID, e.AreaID)
	}
	for _, p := range Posts(now) {
		check("post", p.ID, p.CommunityID, p.AreaID)
	}
}

func TestDatasetsIncludeOsuRecords(t *testing.T) {
	groups := 0
	for _, g := range Groups() {
		if g.AreaID == "accra-osu" {
			groups++
		}
	}
	assert.Positive(t, groups)

	listings := 0
	for _, l := range Listings() {
		if l.AreaID == "accra-osu" {
			listings++
		}
	}
	assert.Positive(t, listings)
}

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	repos := appRepos.NewLocalRepositories(kvstore.New(database))

	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))
	_, err = repos.PostRepository.Create(ctx, models.Post{Body: "mine", CommunityID: "accra-gh"})
	require.NoError(t, err)
	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))

	posts, err := repos.PostRepository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, len(Posts(time.Now()))+1)

	threads, err := repos.ThreadRepository.List(ctx)
	require.NoError(t, err)
	assert.Len(t, threads, len(Threads(time.Now())))
}
