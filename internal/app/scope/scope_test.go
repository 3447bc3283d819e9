package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/registry"
)

func sampleGroups() []models.Group {
	return []models.Group{
		{ID: "g1", Name: "Osu Book Club", Category: "culture", CommunityID: "accra-gh", AreaID: "accra-osu"},
		{ID: "g2", Name: "Labone Runners", Category: "sports", CommunityID: "accra-gh", AreaID: "accra-labone"},
		{ID: "g3", Name: "Accra Tech Meetup", Category: "professional", CommunityID: "accra-gh"},
		{ID: "g4", Name: "Osu Food Lovers", Category: "culture", CommunityID: "accra-gh", AreaID: "accra-osu"},
		{ID: "g5", Name: "London Ghanaians", Category: "culture", CommunityID: "london-uk"},
		{ID: "g6", Name: "Kumasi Church Choir", Description: "Sunday choir", Category: "faith", CommunityID: "kumasi-gh"},
	}
}

func ids(groups []models.Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.ID)
	}
	return out
}

func TestFilterByCommunityAndArea(t *testing.T) {
	reg := registry.Default()

	got := Filter(reg, sampleGroups(), Query{CommunityID: "accra-gh", AreaID: "accra-osu"}, Groups)

	require.Len(t, got, 2)
	for _, g := range got {
		assert.Equal(t, "accra-osu", g.AreaID)
	}
	assert.Equal(t, []string{"g1", "g4"}, ids(got))
}

func TestFilterAreaAllKeepsWholeCommunity(t *testing.T) {
	reg := registry.Default()

	got := Filter(reg, sampleGroups(), Query{CommunityID: "accra-gh", AreaID: models.AreaAll}, Groups)
	assert.Equal(t, []string{"g1", "g2", "g3", "g4"}, ids(got))
}

func TestFilterIgnoresAreaForCommunityWithoutAreas(t *testing.T) {
	reg := registry.Default()

	got := Filter(reg, sampleGroups(), Query{CommunityID: "london-uk", AreaID: "accra-osu"}, Groups)
	assert.Equal(t, []string{"g5"}, ids(got))
}

func TestFilterByCategory(t *testing.T) {
	reg := registry.Default()

	got := Filter(reg, sampleGroups(), Query{Category: "Culture"}, Groups)
	assert.Equal(t, []string{"g1", "g4", "g5"}, ids(got))

	got = Filter(reg, sampleGroups(), Query{Category: models.CategoryAll}, Groups)
	assert.Len(t, got, 6)
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	reg := registry.Default()

	got := Filter(reg, sampleGroups(), Query{Search: "  OSU "}, Groups)
	assert.Equal(t, []string{"g1", "g4"}, ids(got))

	got = Filter(reg, sampleGroups(), Query{Search: "sunday"}, Groups)
	assert.Equal(t, []string{"g6"}, ids(got))

	got = Filter(reg, sampleGroups(), Query{Search: "   "}, Groups)
	assert.Len(t, got, 6)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	reg := registry.Default()
	items := sampleGroups()

	_ = Filter(reg, items, Query{CommunityID: "london-uk"}, Groups)
	assert.Equal(t, sampleGroups(), items)
}

func TestFilterPostsIgnoresCategory(t *testing.T) {
	reg := registry.Default()
	posts := []models.Post{
		{ID: "p1", Body: "Jollof tonight", CommunityID: "accra-gh"},
		{ID: "p2", Body: "Anyone at the embassy?", CommunityID: "accra-gh"},
	}

	got := Filter(reg, posts, Query{CommunityID: "accra-gh", Category: "food", Search: "jollof"}, Posts)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}
