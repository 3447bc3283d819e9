package models

import "time"

// HelpRequest is a students hub post asking for help
type HelpRequest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    string    `json:"category"` // housing, visa, academics, jobs, mentorship
	CommunityID string    `json:"communityId"`
	AreaID      string    `json:"areaId,omitempty"`
	Author      string    `json:"author"`
	PostedAt    time.Time `json:"postedAt"`
}
