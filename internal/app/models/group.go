package models

// Group is a community interest group
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"` // culture, professional, faith, sports, students, family
	CommunityID string `json:"communityId"`
	AreaID      string `json:"areaId,omitempty"`
	MemberCount int    `json:"memberCount"`
}
