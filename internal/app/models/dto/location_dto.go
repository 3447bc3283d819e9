package dto

import "github.com/yigit/diasporahub/internal/app/models"

// SaveLocationRequest confirms the user's location
type SaveLocationRequest struct {
	Country string                `json:"country" binding:"required,max=80"`
	City    string                `json:"city" binding:"required,max=80"`
	Area    string                `json:"area" binding:"omitempty,max=80"`
	Source  models.LocationSource `json:"source" binding:"omitempty,oneof=ip manual"`
}

// SetCommunityRequest selects a community
type SetCommunityRequest struct {
	CommunityID string `json:"communityId" binding:"required"`
}

// SetAreaRequest selects an area of the current community; "all" clears it
type SetAreaRequest struct {
	AreaID string `json:"areaId" binding:"required"`
}

// LocationResponse is the location state with the resolved community
type LocationResponse struct {
	CommunityID string               `json:"communityId" example:"accra-gh"`
	AreaID      string               `json:"areaId" example:"accra-osu"`
	Location    *models.UserLocation `json:"location,omitempty"`
	Confirmed   bool                 `json:"locationConfirmed"`
	Community   models.Community     `json:"community"`
	LoadStatus  string               `json:"loadStatus,omitempty" example:"stored"`
}
