package models

import "time"

// LocalEvent is a community event, either seeded or created on the device
type LocalEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"` // social, cultural, professional, religious, sports
	CommunityID string    `json:"communityId"`
	AreaID      string    `json:"areaId,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	StartISO    string    `json:"startISO"`
	EndISO      string    `json:"endISO,omitempty"`
	Organizer   string    `json:"organizer,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
