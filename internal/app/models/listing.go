package models

// Listing is a marketplace offer
type Listing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"` // food, fashion, services, housing, electronics
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Seller      string  `json:"seller"`
	CommunityID string  `json:"communityId"`
	AreaID      string  `json:"areaId,omitempty"`
}
