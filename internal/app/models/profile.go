package models

import "time"

// Profile is the on-device profile, stored wholesale
type Profile struct {
	DisplayName   string    `json:"displayName"`
	Bio           string    `json:"bio"`
	Interests     []string  `json:"interests"`
	AvatarDataURL string    `json:"avatarDataUrl,omitempty"` // data:image/...;base64,...
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RemoteProfile mirrors the backend 'profiles' table
type RemoteProfile struct {
	UserID             string    `json:"userId" db:"user_id"`
	DisplayName        string    `json:"displayName" db:"display_name"`
	AvatarURL          *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	FirstName          *string   `json:"firstName,omitempty" db:"first_name"`
	LastName           *string   `json:"lastName,omitempty" db:"last_name"`
	Handle             *string   `json:"handle,omitempty" db:"handle"`
	Interests          []string  `json:"interests" db:"interests"`
	OnboardingComplete bool      `json:"onboardingComplete" db:"onboarding_complete"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}
