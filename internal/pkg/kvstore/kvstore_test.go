package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/diasporahub/internal/db"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return New(database)
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "profile")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "profile", []byte(`{"displayName":"Ama"}`)))
	require.NoError(t, s.Put(ctx, "profile", []byte(`{"displayName":"Kofi"}`)))

	got, err := s.Get(ctx, "profile")
	require.NoError(t, err)
	assert.JSONEq(t, `{"displayName":"Kofi"}`, string(got))
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "posts", []byte(`[]`)))
	require.NoError(t, s.Delete(ctx, "posts"))
	require.NoError(t, s.Delete(ctx, "posts"))

	_, err := s.Get(ctx, "posts")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeysByPrefix(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"diaspora.area.accra-gh", "diaspora.area.london-uk", "diaspora.location", "diaspora_areaX"} {
		require.NoError(t, s.Put(ctx, k, []byte(`"x"`)))
	}

	keys, err := s.Keys(ctx, "diaspora.area.")
	require.NoError(t, err)
	assert.Equal(t, []string{"diaspora.area.accra-gh", "diaspora.area.london-uk"}, keys)
}

func TestJSONRoundTripAndCorruption(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	type doc struct {
		Name string `json:"name"`
	}
	require.NoError(t, s.PutJSON(ctx, "doc", doc{Name: "Osu"}))

	var got doc
	require.NoError(t, s.GetJSON(ctx, "doc", &got))
	assert.Equal(t, "Osu", got.Name)

	require.NoError(t, s.Put(ctx, "doc", []byte(`{not json`)))
	err := s.GetJSON(ctx, "doc", &got)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "doc", decodeErr.Key)
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, "counter", func(cur []byte, exists bool) ([]byte, error) {
		assert.False(t, exists)
		return []byte("1"), nil
	})
	require.NoError(t, err)

	err = s.Update(ctx, "counter", func(cur []byte, exists bool) ([]byte, error) {
		assert.True(t, exists)
		assert.Equal(t, "1", string(cur))
		return []byte("2"), nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Update(ctx, "counter", func([]byte, bool) ([]byte, error) { return []byte("3"), boom })
	assert.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))

	require.NoError(t, s.Update(ctx, "counter", func([]byte, bool) ([]byte, error) { return nil, nil }))
	_, err = s.Get(ctx, "counter")
	assert.ErrorIs(t, err, ErrNotFound)
}
