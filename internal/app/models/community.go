package models

// Area is an optional sub-region of a community
type Area struct {
	ID   string `json:"id" example:"accra-osu"`
	Name string `json:"name" example:"Osu"`
}

// Community is a supported city/country location users scope their feed to.
// Communities are read-only at runtime.
type Community struct {
	ID      string `json:"id" example:"accra-gh"`
	Name    string `json:"name" example:"Accra"`
	Country string `json:"country" example:"Ghana"`
	City    string `json:"city" example:"Accra"`
	Areas   []Area `json:"areas,omitempty"`
}

// HasAreas reports whether the community supports area scoping
func (c Community) HasAreas() bool {
	return len(c.Areas) > 0
}

// Area looks up one of the community's areas by id
func (c Community) Area(id string) (Area, bool) {
	for _, a := range c.Areas {
		if a.ID == id {
			return a, true
		}
	}
	return Area{}, false
}
