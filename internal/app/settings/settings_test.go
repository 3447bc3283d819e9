package settings

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/db"
	"github.com/yigit/diasporahub/internal/pkg/apperrors"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
)

func newTestKV(t *testing.T) *kvstore.Store {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return kvstore.New(database)
}

func newTestStore(t *testing.T, kv *kvstore.Store) *Store {
	t.Helper()
	s := New(kv, registry.Default())
	s.now = func() time.Time { return time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC) }
	return s
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	s := newTestStore(t, newTestKV(t))

	res := s.Load(context.Background())

	assert.Equal(t, StatusDefaulted, res.Status)
	assert.Equal(t, registry.DefaultCommunityID, res.Settings.CommunityID)
	assert.Equal(t, models.AreaAll, res.Settings.AreaID())
	assert.False(t, res.Settings.LocationConfirmed)
}

func TestSwitchingToCommunityWithoutAreasResetsArea(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newTestKV(t))
	s.Load(ctx)

	_, err := s.SetCommunity(ctx, "accra-gh")
	require.NoError(t, err)
	_, err = s.SetArea(ctx, "accra-osu")
	require.NoError(t, err)

	for _, c := range registry.Default().All() {
		if c.HasAreas() {
			continue
		}
		snap, err := s.SetCommunity(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AreaAll, snap.AreaID, c.ID)
	}
}

func TestSetCommunityRestoresRememberedArea(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newTestKV(t))

	_, err := s.SetCommunity(ctx, "accra-gh")
	require.NoError(t, err)
	_, err = s.SetArea(ctx, "accra-osu")
	require.NoError(t, err)
	_, err = s.SetCommunity(ctx, "london-uk")
	require.NoError(t, err)

	snap, err := s.SetCommunity(ctx, "accra-gh")
	require.NoError(t, err)
	assert.Equal(t, "accra-osu", snap.AreaID)
}

func TestSetCommunityUnknown(t *testing.T) {
	s := newTestStore(t, newTestKV(t))

	_, err := s.SetCommunity(context.Background(), "atlantis-xx")
	assert.ErrorIs(t, err, apperrors.ErrUnknownCommunity)
	assert.Equal(t, registry.DefaultCommunityID, s.Current().CommunityID)
}

func TestSetAreaRejectsForeignArea(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newTestKV(t))

	_, err := s.SetArea(ctx, "accra-osu")
	assert.ErrorIs(t, err, apperrors.ErrUnknownArea)

	snap, err := s.SetArea(ctx, models.AreaAll)
	require.NoError(t, err)
	assert.Equal(t, models.AreaAll, snap.AreaID)
}

func TestSaveLocationSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	s := newTestStore(t, kv)

	snap, err := s.SaveLocation(ctx, models.UserLocation{
		Country: "Ghana",
		City:    "Accra",
		Area:    "accra-osu",
		Source:  models.LocationSourceIP,
	})
	require.NoError(t, err)
	assert.Equal(t, "accra-gh", snap.CommunityID)
	assert.Equal(t, "accra-osu", snap.AreaID)

	reloaded := newTestStore(t, kv)
	res := reloaded.Load(ctx)
	require.Equal(t, StatusStored, res.Status)
	require.NotNil(t, res.Settings.Location)

	loc := res.Settings.Location
	assert.Equal(t, "Ghana", loc.Country)
	assert.Equal(t, "Accra", loc.City)
	assert.Equal(t, "accra-osu", loc.Area)
	assert.Equal(t, models.LocationSourceIP, loc.Source)
	assert.True(t, res.Settings.LocationConfirmed)

	parsed, err := time.Parse(time.RFC3339, loc.ConfirmedAt.Format(time.RFC3339))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)))
}

func TestSaveLocationRejectsUnknownSource(t *testing.T) {
	s := newTestStore(t, newTestKV(t))

	_, err := s.SaveLocation(context.Background(), models.UserLocation{City: "Accra", Source: "gps"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestClearLocationKeepsCommunity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newTestKV(t))

	_, err := s.SaveLocation(ctx, models.UserLocation{Country: "Ghana", City: "Kumasi"})
	require.NoError(t, err)

	snap, err := s.ClearLocation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kumasi-gh", snap.CommunityID)
	assert.Nil(t, snap.Location)
	assert.False(t, snap.Confirmed)
}

func TestLoadRecoversFromCorruptEnvelope(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Put(ctx, Key, []byte(`{"communityId":`)))

	res := newTestStore(t, kv).Load(ctx)
	assert.Equal(t, StatusRecovered, res.Status)
	assert.Equal(t, registry.DefaultCommunityID, res.Settings.CommunityID)

	res = newTestStore(t, kv).Load(ctx)
	assert.Equal(t, StatusStored, res.Status)
}

func TestLoadFallsBackOnUnknownCommunity(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.PutJSON(ctx, Key, Settings{SchemaVersion: 1, CommunityID: "atlantis-xx"}))

	store := newTestStore(t, kv)
	res := store.Load(ctx)
	assert.Equal(t, StatusUnknownCommunity, res.Status)
	assert.Equal(t, registry.DefaultCommunityID, res.Settings.CommunityID)
	assert.Equal(t, StatusUnknownCommunity, store.Status())

	_, err := store.SetCommunity(ctx, "accra-gh")
	require.NoError(t, err)
	assert.Equal(t, StatusStored, store.Status())
	assert.Equal(t, StatusStored, newTestStore(t, kv).Load(ctx).Status)
}

func TestLoadImportsLegacyKeys(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)
	require.NoError(t, kv.Put(ctx, "diaspora.communityId", []byte("accra-gh")))
	require.NoError(t, kv.Put(ctx, "diaspora.area.accra-gh", []byte(`"accra-labone"`)))
	require.NoError(t, kv.Put(ctx, "diaspora.locationConfirmed", []byte("true")))
	require.NoError(t, kv.PutJSON(ctx, "diaspora.location", models.UserLocation{
		Country: "Ghana", City: "Accra", Source: models.LocationSourceManual,
	}))

	res := newTestStore(t, kv).Load(ctx)
	require.Equal(t, StatusStored, res.Status)
	assert.Equal(t, "accra-gh", res.Settings.CommunityID)
	assert.Equal(t, "accra-labone", res.Settings.AreaID())
	assert.True(t, res.Settings.LocationConfirmed)
	require.NotNil(t, res.Settings.Location)
	assert.Equal(t, "Accra", res.Settings.Location.City)

	keys, err := kv.Keys(ctx, "diaspora.")
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = kv.Get(ctx, Key)
	assert.NoError(t, err)
}

func TestSubscribeReceivesChanges(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, newTestKV(t))

	var got []Change
	unsubscribe := s.Subscribe(func(c Change) {
		got = append(got, c)
		// reading state from inside a callback must not deadlock
		_ = s.Current()
	})

	_, err := s.SetCommunity(ctx, "accra-gh")
	require.NoError(t, err)
	_, err = s.SetArea(ctx, "nowhere")
	require.Error(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, ReasonCommunity, got[0].Reason)
	assert.Equal(t, registry.DefaultCommunityID, got[0].Previous.CommunityID)
	assert.Equal(t, "accra-gh", got[0].Current.CommunityID)

	unsubscribe()
	unsubscribe()
	_, err = s.SetArea(ctx, "accra-osu")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
