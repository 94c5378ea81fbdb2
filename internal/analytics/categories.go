package analytics

// Region is one fixed geographic bucket of the viewer map
type Region struct {
	Name   string
	Code   string
	Weight float64 // percentage points
}

// Channel is one fixed referral channel
type Channel struct {
	Name   string
	Icon   string
	Weight float64 // percentage points
	Color  string
}

// Regions is the closed list of Malaysian states and territories on the map
var Regions = []Region{
	{Name: "Selangor", Code: "SGR", Weight: 25},
	{Name: "Johor", Code: "JHR", Weight: 15},
	{Name: "Sabah", Code: "SBH", Weight: 10},
	{Name: "Sarawak", Code: "SWK", Weight: 10},
	{Name: "Perak", Code: "PRK", Weight: 8},
	{Name: "Pulau Pinang", Code: "PNG", Weight: 8},
	{Name: "Kedah", Code: "KDH", Weight: 6},
	{Name: "Kelantan", Code: "KTN", Weight: 5},
	{Name: "Pahang", Code: "PHG", Weight: 4},
	{Name: "Terengganu", Code: "TRG", Weight: 3},
	{Name: "Negeri Sembilan", Code: "NSN", Weight: 2},
	{Name: "Melaka", Code: "MLK", Weight: 2},
	{Name: "Perlis", Code: "PLS", Weight: 1},
	{Name: "WP Kuala Lumpur", Code: "KUL", Weight: 1},
}

// Channels is the closed list of traffic sources
var Channels = []Channel{
	{Name: "WhatsApp", Icon: "whatsapp", Weight: 32, Color: "#25D366"},
	{Name: "Facebook", Icon: "facebook", Weight: 18, Color: "#1877F2"},
	{Name: "Twitter / X", Icon: "twitter", Weight: 14, Color: "#000000"},
	{Name: "Discord", Icon: "discord", Weight: 12, Color: "#5865F2"},
	{Name: "Reddit", Icon: "reddit", Weight: 8, Color: "#FF4500"},
	{Name: "LinkedIn", Icon: "linkedin", Weight: 6, Color: "#0A66C2"},
	{Name: "GitHub", Icon: "github", Weight: 4, Color: "#6e5494"},
	{Name: "Medium", Icon: "medium", Weight: 3, Color: "#00ab6c"},
	{Name: "Direct", Icon: "direct", Weight: 3, Color: "#8B8B8B"},
}
