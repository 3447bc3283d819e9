package scope

import "github.com/yigit/diasporahub/internal/app/models"

// Threads scopes message threads
var Threads = Accessor[models.MessageThread]{
	Community: func(t models.MessageThread) string { return t.CommunityID },
	Area:      func(t models.MessageThread) string { return t.AreaID },
	Category:  func(t models.MessageThread) string { return string(t.Kind) },
	Text: func(t models.MessageThread) []string {
		return append([]string{t.Title, t.Preview}, t.Participants...)
	},
}

var Groups = Accessor[models.Group]{
	Community: func(g models.Group) string { return g.CommunityID },
	Area:      func(g models.Group) string { return g.AreaID },
	Category:  func(g models.Group) string { return g.Category },
	Text:      func(g models.Group) []string { return []string{g.Name, g.Description} },
}

var HelpRequests = Accessor[models.HelpRequest]{
	Community: func(h models.HelpRequest) string { return h.CommunityID },
	Area:      func(h models.HelpRequest) string { return h.AreaID },
	Category:  func(h models.HelpRequest) string { return h.Category },
	Text:      func(h models.HelpRequest) []string { return []string{h.Title, h.Body, h.Author} },
}

var Listings = Accessor[models.Listing]{
	Community: func(l models.Listing) string { return l.CommunityID },
	Area:      func(l models.Listing) string { return l.AreaID },
	Category:  func(l models.Listing) string { return l.Category },
	Text:      func(l models.Listing) []string { return []string{l.Title, l.Description, l.Seller} },
}

var Events = Accessor[models.LocalEvent]{
	Community: func(e models.LocalEvent) string { return e.CommunityID },
	Area:      func(e models.LocalEvent) string { return e.AreaID },
	Category:  func(e models.LocalEvent) string { return e.Category },
	Text: func(e models.LocalEvent) []string {
		return []string{e.Title, e.Description, e.Venue, e.Organizer}
	},
}

// Posts have no category; a category in the query is ignored
var Posts = Accessor[models.Post]{
	Community: func(p models.Post) string { return p.CommunityID },
	Area:      func(p models.Post) string { return p.AreaID },
	Text:      func(p models.Post) []string { return []string{p.Author, p.Body} },
}
