package registry

import "github.com/yigit/diasporahub/internal/app/models"

// DefaultCommunityID is used on first run and when a stored id is not recognised
const DefaultCommunityID = "london-uk"

// builtin is the list of supported communities. Only Accra has areas today.
var builtin = []models.Community{
	{ID: "london-uk", Name: "London", Country: "United Kingdom", City: "London"},
	{ID: "manchester-uk", Name: "Manchester", Country: "United Kingdom", City: "Manchester"},
	{ID: "newyork-us", Name: "New York", Country: "United States", City: "New York"},
	{ID: "houston-us", Name: "Houston", Country: "United States", City: "Houston"},
	{ID: "toronto-ca", Name: "Toronto", Country: "Canada", City: "Toronto"},
	{ID: "amsterdam-nl", Name: "Amsterdam", Country: "Netherlands", City: "Amsterdam"},
	{ID: "berlin-de", Name: "Berlin", Country: "Germany", City: "Berlin"},
	{ID: "johannesburg-za", Name: "Johannesburg", Country: "South Africa", City: "Johannesburg"},
	{
		ID: "accra-gh", Name: "Accra", Country: "Ghana", City: "Accra",
		Areas: []models.Area{
			{ID: "accra-osu", Name: "Osu"},
			{ID: "accra-east-legon", Name: "East Legon"},
			{ID: "accra-cantonments", Name: "Cantonments"},
			{ID: "accra-airport-residential", Name: "Airport Residential"},
			{ID: "accra-labone", Name: "Labone"},
			{ID: "accra-spintex", Name: "Spintex"},
		},
	},
	{ID: "kumasi-gh", Name: "Kumasi", Country: "Ghana", City: "Kumasi"},
	{ID: "lagos-ng", Name: "Lagos", Country: "Nigeria", City: "Lagos"},
}
