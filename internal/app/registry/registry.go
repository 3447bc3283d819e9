// Package registry is the read-only list of supported communities.
package registry

import (
	"strings"

	"github.com/yigit/diasporahub/internal/app/models"
	"github.com/yigit/diasporahub/internal/pkg/textsearch"
)

// Registry answers lookups over a fixed set of communities
type Registry struct {
	communities []models.Community
	byID        map[string]int
	defaultID   string
}

// New builds a registry. defaultID must name one of the communities.
func New(communities []models.Community, defaultID string) *Registry {
	r := &Registry{
		communities: make([]models.Community, len(communities)),
		byID:        make(map[string]int, len(communities)),
		defaultID:   defaultID,
	}
	copy(r.communities, communities)
	for i, c := range r.communities {
		r.byID[c.ID] = i
	}
	if _, ok := r.byID[defaultID]; !ok && len(r.communities) > 0 {
		r.defaultID = r.communities[0].ID
	}
	return r
}

// Default returns the built-in registry
func Default() *Registry {
	return New(builtin, DefaultCommunityID)
}

// All returns every community in registry order
func (r *Registry) All() []models.Community {
	out := make([]models.Community, len(r.communities))
	copy(out, r.communities)
	return out
}

// Get looks up a community by id
func (r *Registry) Get(id string) (models.Community, bool) {
	i, ok := r.byID[id]
	if !ok {
		return models.Community{}, false
	}
	return r.communities[i], true
}

// DefaultCommunity is the fallback community
func (r *Registry) DefaultCommunity() models.Community {
	c, _ := r.Get(r.defaultID)
	return c
}

// HasAreas reports whether the community exists and supports areas
func (r *Registry) HasAreas(communityID string) bool {
	c, ok := r.Get(communityID)
	return ok && c.HasAreas()
}

// AreaBelongs reports whether areaID is one of the community's areas.
// The "all" sentinel belongs to every known community.
func (r *Registry) AreaBelongs(communityID, areaID string) bool {
	c, ok := r.Get(communityID)
	if !ok {
		return false
	}
	if areaID == models.AreaAll {
		return true
	}
	_, ok = c.Area(areaID)
	return ok
}

// Search matches the query against name, city and country, ignoring case.
// An empty query returns all communities.
func (r *Registry) Search(query string) []models.Community {
	needle := textsearch.Normalize(query)
	if needle == "" {
		return r.All()
	}
	var out []models.Community
	for _, c := range r.communities {
		if textsearch.ContainsAny(needle, c.Name, c.City, c.Country) {
			out = append(out, c)
		}
	}
	return out
}

// FindByCity resolves a confirmed location to a community
func (r *Registry) FindByCity(country, city string) (models.Community, bool) {
	for _, c := range r.communities {
		if strings.EqualFold(c.City, strings.TrimSpace(city)) &&
			(country == "" || strings.EqualFold(c.Country, strings.TrimSpace(country))) {
			return c, true
		}
	}
	return models.Community{}, false
}
