package seed

import (
	"time"

	"github.com/yigit/diasporahub/internal/app/models"
)

// Groups is the built-in interest group catalogue
func Groups() []models.Group {
	return []models.Group{
		{ID: "grp-accra-osu-bookclub", Name: "Osu Book Club", Description: "Monthly reads by African and diaspora authors", Category: "culture", CommunityID: "accra-gh", AreaID: "accra-osu", MemberCount: 48},
		{ID: "grp-accra-returnees", Name: "Accra Returnees Network", Description: "Support for people relocating home from abroad", Category: "professional", CommunityID: "accra-gh", MemberCount: 312},
		{ID: "grp-accra-labone-runners", Name: "Labone Sunrise Runners", Description: "Saturday 6am runs along the coast", Category: "sports", CommunityID: "accra-gh", AreaID: "accra-labone", MemberCount: 67},
		{ID: "grp-accra-osu-parents", Name: "Osu Parents Circle", Description: "Playdates, school tips and weekend activities", Category: "family", CommunityID: "accra-gh", AreaID: "accra-osu", MemberCount: 91},
		{ID: "grp-accra-legon-students", Name: "East Legon Internationals", Description: "Students from abroad studying around Legon", Category: "students", CommunityID: "accra-gh", AreaID: "accra-east-legon", MemberCount: 154},
		{ID: "grp-kumasi-choir", Name: "Kumasi Diaspora Choir", Description: "Gospel and highlife rehearsals every Thursday", Category: "faith", CommunityID: "kumasi-gh", MemberCount: 39},
		{ID: "grp-london-ghana-pros", Name: "Ghanaian Professionals London", Description: "Networking evenings and mentoring", Category: "professional", CommunityID: "london-uk", MemberCount: 1240},
		{ID: "grp-london-naija-football", Name: "Sunday League Naija", Description: "Five-a-side every Sunday in Peckham", Category: "sports", CommunityID: "london-uk", MemberCount: 58},
		{ID: "grp-manchester-students", Name: "Manchester African Students", Description: "Freshers help, housing swaps and socials", Category: "students", CommunityID: "manchester-uk", MemberCount: 410},
		{ID: "grp-newyork-harlem-culture", Name: "Harlem Culture Collective", Description: "Art walks, film nights and food tours", Category: "culture", CommunityID: "newyork-us", MemberCount: 275},
		{ID: "grp-houston-faith", Name: "Houston Nigerian Fellowship", Description: "Weekly fellowship and community outreach", Category: "faith", CommunityID: "houston-us", MemberCount: 188},
		{ID: "grp-toronto-families", Name: "Toronto Diaspora Families", Description: "Heritage language classes for kids", Category: "family", CommunityID: "toronto-ca", MemberCount: 133},
		{ID: "grp-berlin-tech", Name: "Afro Tech Berlin", Description: "Engineers and founders from the continent", Category: "professional", CommunityID: "berlin-de", MemberCount: 320},
		{ID: "grp-lagos-returnees", Name: "Lagos Japa Returnees", Description: "Settling back into Lagos life", Category: "family", CommunityID: "lagos-ng", MemberCount: 97},
	}
}

// HelpRequests is the students hub board at a reference time
func HelpRequests(now time.Time) []models.HelpRequest {
	at := func(hoursAgo int) time.Time { return now.UTC().Truncate(time.Hour).Add(-time.Duration(hoursAgo) * time.Hour) }
	return []models.HelpRequest{
		{ID: "req-accra-osu-room", Title: "Room near Osu for one semester", Body: "Looking for a shared flat close to Oxford Street from September.", Category: "housing", CommunityID: "accra-gh", AreaID: "accra-osu", Author: "Efua", PostedAt: at(3)},
		{ID: "req-accra-legon-stats", Title: "Statistics tutor needed", Body: "Second year economics, need help with regression before exams.", Category: "academics", CommunityID: "accra-gh", AreaID: "accra-east-legon", Author: "Daniel", PostedAt: at(9)},
		{ID: "req-accra-osu-internship", Title: "Internship leads in Osu", Body: "Any startups around Osu taking product interns?", Category: "jobs", CommunityID: "accra-gh", AreaID: "accra-osu", Author: "Nana", PostedAt: at(26)},
		{ID: "req-accra-visa", Title: "Residence permit renewal", Body: "Which documents did you bring to the immigration office?", Category: "visa", CommunityID: "accra-gh", Author: "Chidi", PostedAt: at(40)},
		{ID: "req-london-visa", Title: "Graduate route visa questions", Body: "How long did your graduate visa decision take?", Category: "visa", CommunityID: "london-uk", Author: "Tolu", PostedAt: at(5)},
		{ID: "req-london-mentor", Title: "Mentor in finance", Body: "Final year student looking for a mentor in investment banking.", Category: "mentorship", CommunityID: "london-uk", Author: "Kwame", PostedAt: at(30)},
		{ID: "req-manchester-housing", Title: "Housemates for Fallowfield", Body: "Two rooms free in a four-bed house from January.", Category: "housing", CommunityID: "manchester-uk", Author: "Zainab", PostedAt: at(12)},
		{ID: "req-toronto-jobs", Title: "Part-time work with study permit", Body: "Anyone know campus jobs that are hiring?", Category: "jobs", CommunityID: "toronto-ca", Author: "Akua", PostedAt: at(50)},
		{ID: "req-berlin-academics", Title: "German B1 study partner", Body: "Practising twice a week, evenings.", Category: "academics", CommunityID: "berlin-de", Author: "Musa", PostedAt: at(72)},
	}
}

// Listings is the marketplace catalogue
func Listings() []models.Listing {
	return []models.Listing{
		{ID: "lst-accra-osu-kente", Title: "Handwoven kente stole", Description: "Bonwire weave, graduation colours", Category: "fashion", Price: 450, Currency: "GHS", Seller: "Abena's Loom", CommunityID: "accra-gh", AreaID: "accra-osu"},
		{ID: "lst-accra-osu-catering", Title: "Weekend jollof catering", Description: "Party trays for 20 to 100 guests", Category: "food", Price: 1200, Currency: "GHS", Seller: "Auntie Esi Kitchen", CommunityID: "accra-gh", AreaID: "accra-osu"},
		{ID: "lst-accra-cantonments-flat", Title: "Furnished one-bed flat", Description: "Short lets for returnees, generator included", Category: "housing", Price: 6500, Currency: "GHS", Seller: "Cantonments Homes", CommunityID: "accra-gh", AreaID: "accra-cantonments"},
		{ID: "lst-accra-spintex-phone", Title: "Used iPhone 13", Description: "128GB, battery 89%", Category: "electronics", Price: 5200, Currency: "GHS", Seller: "Yaw", CommunityID: "accra-gh", AreaID: "accra-spintex"},
		{ID: "lst-accra-relocation", Title: "Relocation paperwork help", Description: "Ghana card, bank accounts and car import", Category: "services", Price: 800, Currency: "GHS", Seller: "Settle Home GH", CommunityID: "accra-gh"},
		{ID: "lst-london-shito", Title: "Homemade shito jars", Description: "Mild and extra hot, collection in Lewisham", Category: "food", Price: 7.5, Currency: "GBP", Seller: "Mama Shito", CommunityID: "london-uk"},
		{ID: "lst-london-braids", Title: "Knotless braids", Description: "Mobile stylist across south London", Category: "services", Price: 120, Currency: "GBP", Seller: "Braids by Adwoa", CommunityID: "london-uk"},
		{ID: "lst-newyork-ankara", Title: "Ankara two-piece sets", Description: "Made to measure, two week turnaround", Category: "fashion", Price: 140, Currency: "USD", Seller: "Bronx Prints", CommunityID: "newyork-us"},
		{ID: "lst-houston-suya", Title: "Suya spice mix", Description: "Ships anywhere in Texas", Category: "food", Price: 12, Currency: "USD", Seller: "Mallam's Spice", CommunityID: "houston-us"},
		{ID: "lst-amsterdam-room", Title: "Room in Bijlmer", Description: "Available for students, registration possible", Category: "housing", Price: 750, Currency: "EUR", Seller: "Ruth", CommunityID: "amsterdam-nl"},
		{ID: "lst-johannesburg-laptop", Title: "ThinkPad X1 Carbon", Description: "Great for students, charger included", Category: "electronics", Price: 9500, Currency: "ZAR", Seller: "Sipho", CommunityID: "johannesburg-za"},
	}
}

// Threads are the initial conversations on a new device
func Threads(now time.Time) []models.StoredThread {
	base := now.UTC().Truncate(time.Minute)
	msg := func(threadID, id, author, body string, minutesAgo int) models.Message {
		return models.Message{ID: id, ThreadID: threadID, Author: author, Body: body, SentAt: base.Add(-time.Duration(minutesAgo) * time.Minute)}
	}
	thread := func(meta models.MessageThread, messages ...models.Message) models.StoredThread {
		if len(messages) > 0 {
			last := messages[len(messages)-1]
			meta.Preview = last.Body
			meta.UpdatedAt = last.SentAt
		} else {
			meta.UpdatedAt = base
		}
		return models.StoredThread{MessageThread: meta, Messages: messages}
	}

	return []models.StoredThread{
		thread(models.MessageThread{ID: "thr-accra-osu-neighbours", Title: "Osu Neighbours", Kind: models.ThreadKindCommunity, CommunityID: "accra-gh", AreaID: "accra-osu", Participants: []string{"Ama", "Kojo", "Efua"}},
			msg("thr-accra-osu-neighbours", "msg-1", "Kojo", "Power is back on along Oxford Street", 95),
			msg("thr-accra-osu-neighbours", "msg-2", "Ama", "Anyone know a good tailor nearby?", 12),
		),
		thread(models.MessageThread{ID: "thr-accra-returnees", Title: "Accra Returnees", Kind: models.ThreadKindGroup, CommunityID: "accra-gh", Participants: []string{"Nana", "Chidi", "Ama"}},
			msg("thr-accra-returnees", "msg-3", "Nana", "Shipping container cleared in 3 weeks, happy to share the agent", 240),
		),
		thread(models.MessageThread{ID: "thr-accra-kofi", Title: "Kofi Mensah", Kind: models.ThreadKindDirect, CommunityID: "accra-gh", AreaID: "accra-labone", Participants: []string{"Kofi"}},
			msg("thr-accra-kofi", "msg-4", "Kofi", "See you at the run on Saturday", 30),
		),
		thread(models.MessageThread{ID: "thr-london-ghana-pros", Title: "Ghanaian Professionals London", Kind: models.ThreadKindGroup, CommunityID: "london-uk", Participants: []string{"Kwame", "Adwoa"}},
			msg("thr-london-ghana-pros", "msg-5", "Adwoa", "Next meetup is at the Southbank Centre", 60),
		),
		thread(models.MessageThread{ID: "thr-toronto-families", Title: "Toronto Families", Kind: models.ThreadKindCommunity, CommunityID: "toronto-ca", Participants: []string{"Akua", "Femi"}}),
	}
}

// Events are the initial community calendar, scheduled relative to now
func Events(now time.Time) []models.LocalEvent {
	day := func(days, hour int) string {
		d := now.UTC().AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC).Format("2006-01-02T15:04:05")
	}
	created := now.UTC().Truncate(time.Hour)
	return []models.LocalEvent{
		{ID: "evt-accra-osu-night-market", Title: "Osu Night Market", Description: "Street food, crafts and live highlife", Category: "cultural", CommunityID: "accra-gh", AreaID: "accra-osu", Venue: "Oxford Street, Osu", StartISO: day(5, 18), EndISO: day(5, 23), Organizer: "Osu Traders", CreatedAt: created},
		{ID: "evt-accra-returnee-mixer", Title: "Returnee Mixer", Description: "Meet others who moved home this year", Category: "social", CommunityID: "accra-gh", AreaID: "accra-airport-residential", Venue: "Airport City", StartISO: day(9, 19), Organizer: "Accra Returnees Network", CreatedAt: created},
		{ID: "evt-accra-labone-5k", Title: "Labone Beach 5K", Category: "sports", CommunityID: "accra-gh", AreaID: "accra-labone", Venue: "Labadi Beach", StartISO: day(12, 6), EndISO: day(12, 8), Organizer: "Labone Sunrise Runners", CreatedAt: created},
		{ID: "evt-london-careers", Title: "Diaspora Careers Evening", Description: "Panels on finance, tech and law", Category: "professional", CommunityID: "london-uk", Venue: "Southbank Centre", StartISO: day(7, 18), Organizer: "Ghanaian Professionals London", CreatedAt: created},
		{ID: "evt-houston-service", Title: "Community Thanksgiving Service", Category: "religious", CommunityID: "houston-us", Venue: "Alief", StartISO: day(14, 10), Organizer: "Houston Nigerian Fellowship", CreatedAt: created},
	}
}

// Posts is the initial feed, newest first
func Posts(now time.Time) []models.Post {
	at := func(minutesAgo int) time.Time { return now.UTC().Truncate(time.Minute).Add(-time.Duration(minutesAgo) * time.Minute) }
	return []models.Post{
		{ID: "pst-accra-osu-tailor", Author: "Ama", Body: "Found a brilliant tailor behind Danquah Circle, message me for the number", CommunityID: "accra-gh", AreaID: "accra-osu", Likes: 14, CreatedAt: at(20)},
		{ID: "pst-accra-ecg", Author: "Kojo", Body: "ECG says maintenance in East Legon tomorrow 9 to 5", CommunityID: "accra-gh", AreaID: "accra-east-legon", Likes: 6, CreatedAt: at(80)},
		{ID: "pst-accra-osu-brunch", Author: "Efua", Body: "New brunch place on Oxford Street does proper kelewele", CommunityID: "accra-gh", AreaID: "accra-osu", Likes: 22, CreatedAt: at(190)},
		{ID: "pst-london-jollof", Author: "Tolu", Body: "Jollof cook-off in Peckham this Saturday, bring your best pot", CommunityID: "london-uk", Likes: 41, CreatedAt: at(45)},
		{ID: "pst-newyork-passport", Author: "Femi", Body: "Consulate passport queue was under an hour today", CommunityID: "newyork-us", Likes: 9, CreatedAt: at(300)},
	}
}
