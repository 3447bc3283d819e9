// Package scope narrows feature lists to the selected community, area,
// category and search text.
package scope

import (
	"strings"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/app/registry"
	"github.com/yigit/diasporahub/internal/pkg/textsearch"
)

// Query is the user's current narrowing. Empty fields do not narrow.
type Query struct {
	CommunityID string `form:"community" json:"communityId,omitempty"`
	AreaID      string `form:"area" json:"areaId,omitempty"`
	Category    string `form:"category" json:"category,omitempty"`
	Search      string `form:"q" json:"q,omitempty"`
}

// Accessor tells Filter where an item keeps its scoping fields.
// Category and Text may be nil for items without them.
type Accessor[T any] struct {
	Community func(T) string
	Area      func(T) string
	Category  func(T) string
	Text      func(T) []string
}

// Filter returns the items matching q in their original order
func Filter[T any](reg *registry.Registry, items []T, q Query, acc Accessor[T]) []T {
	byArea := q.CommunityID != "" && q.AreaID != "" && q.AreaID != models.AreaAll &&
		reg.HasAreas(q.CommunityID)
	byCategory := q.Category != "" && q.Category != models.CategoryAll && acc.Category != nil
	needle := textsearch.Normalize(q.Search)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if q.CommunityID != "" && acc.Community(item) != q.CommunityID {
			continue
		}
		if byArea && acc.Area(item) != q.AreaID {
			continue
		}
		if byCategory && !strings.EqualFold(acc.Category(item), q.Category) {
			continue
		}
		if needle != "" && (acc.Text == nil || !textsearch.ContainsAny(needle, acc.Text(item)...)) {
			continue
		}
		out = append(out, item)
	}
	return out
}
