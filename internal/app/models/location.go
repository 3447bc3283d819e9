package models

import "time"

// UserLocation is the location the user confirmed, either detected or picked
type UserLocation struct {
	Country     string         `json:"country" example:"Ghana"`
	City        string         `json:"city" example:"Accra"`
	Area        string         `json:"area,omitempty" example:"accra-osu"`
	ConfirmedAt time.Time      `json:"confirmedAt" example:"2026-01-15T18:00:00Z"`
	Source      LocationSource `json:"source" example:"manual"`
}
