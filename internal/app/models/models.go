package models

// AreaAll is the sentinel area id meaning "no area narrowing"
const AreaAll = "all"

// CategoryAll disables category narrowing in scoped queries
const CategoryAll = "all"

// LocationSource records how a UserLocation was obtained
type LocationSource string

const (
	LocationSourceIP     LocationSource = "ip"
	LocationSourceManual LocationSource = "manual"
)

// Valid reports whether s is a known source
func (s LocationSource) Valid() bool {
	return s == LocationSourceIP || s == LocationSourceManual
}
