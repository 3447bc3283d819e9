package models

import "time"

// Post is a feed entry
type Post struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Body        string    `json:"body"`
	CommunityID string    `json:"communityId"`
	AreaID      string    `json:"areaId,omitempty"`
	Likes       int       `json:"likes"`
	LikedByMe   bool      `json:"likedByMe"`
	CreatedAt   time.Time `json:"createdAt"`
}
