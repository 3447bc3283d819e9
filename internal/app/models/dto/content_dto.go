package dto

import "github.com/yigit/diasporahub/internal/app/models"

// CreateThreadRequest starts a conversation. Community and area default to
// the current location state.
type CreateThreadRequest struct {
	Title        string            `json:"title" binding:"required,notblank,max=120"`
	Kind         models.ThreadKind `json:"kind" binding:"required,oneof=direct group community"`
	CommunityID  string            `json:"communityId" binding:"omitempty,max=64"`
	AreaID       string            `json:"areaId" binding:"omitempty,max=64"`
	Participants []string          `json:"participants" binding:"omitempty,max=50,dive,required,max=80"`
}

// SendMessageRequest appends a message to a thread
type SendMessageRequest struct {
	Author string `json:"author" binding:"required,notblank,max=80"`
	Body   string `json:"body" binding:"required,notblank,max=2000"`
}

// ListResponse pairs a filtered list with the scope that produced it
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Scope Scope `json:"scope"`
}

// Scope echoes the narrowing that produced a list
type Scope struct {
	CommunityID string `json:"communityId"`
	AreaID      string `json:"areaId"`
	Category    string `json:"category,omitempty"`
	Search      string `json:"q,omitempty"`
}

// CreateEventRequest adds a local event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=120"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Category    string `json:"category" binding:"required,oneof=social cultural professional religious sports"`
	CommunityID string `json:"communityId" binding:"omitempty,max=64"`
	AreaID      string `json:"areaId" binding:"omitempty,max=64"`
	Venue       string `json:"venue" binding:"omitempty,max=160"`
	StartISO    string `json:"startISO" binding:"required"`
	EndISO      string `json:"endISO"`
	Organizer   string `json:"organizer" binding:"omitempty,max=80"`
}

// CreatePostRequest publishes to the community feed
type CreatePostRequest struct {
	Author      string `json:"author" binding:"required,notblank,max=80"`
	Body        string `json:"body" binding:"required,notblank,max=1000"`
	CommunityID string `json:"communityId" binding:"omitempty,max=64"`
	AreaID      string `json:"areaId" binding:"omitempty,max=64"`
}

// UpdateProfileRequest replaces the on-device profile
type UpdateProfileRequest struct {
	DisplayName   string   `json:"displayName" binding:"omitempty,max=60"`
	Bio           string   `json:"bio" binding:"omitempty,max=280"`
	Interests     []string `json:"interests" binding:"omitempty,max=20,dive,required,max=40"`
	AvatarDataURL string   `json:"avatarDataUrl" binding:"omitempty,dataurl"`
}

// RemoteProfileRequest upserts the backend profile
type RemoteProfileRequest struct {
	DisplayName        string   `json:"displayName" binding:"required,notblank,max=60"`
	FirstName          string   `json:"firstName" binding:"omitempty,max=60"`
	LastName           string   `json:"lastName" binding:"omitempty,max=60"`
	Handle             string   `json:"handle" binding:"omitempty,handle"`
	AvatarURL          string   `json:"avatarUrl" binding:"omitempty,url"`
	Interests          []string `json:"interests" binding:"omitempty,max=20,dive,required,max=40"`
	OnboardingComplete bool     `json:"onboardingComplete"`
}
