// Package models defines the records persisted in the TripWise store:
// destinations, hotels, vehicles, community posts and users.
package models

// Region is one of the provinces or territories a destination belongs to.
type Region string

const (
	NorthernAreas     Region = "Northern Areas"
	Punjab            Region = "Punjab"
	Sindh             Region = "Sindh"
	KhyberPakhtunkhwa Region = "Khyber Pakhtunkhwa"
	Balochistan       Region = "Balochistan"
	AzadKashmir       Region = "Azad Kashmir"
	GilgitBaltistan   Region = "Gilgit-Baltistan"
)

// Regions lists every known region in display order.
var Regions = []Region{
	NorthernAreas,
	Punjab,
	Sindh,
	KhyberPakhtunkhwa,
	Balochistan,
	AzadKashmir,
	GilgitBaltistan,
}

// Valid reports whether r is one of the known regions.
func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Spot is a travel destination. Spots are written once by seeding and never
// mutated afterwards. Tags are always lowercase.
type Spot struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Region      Region      `json:"region"`
	Description string      `json:"description"`
	ImageURL    string      `json:"imageUrl"`
	Tags        []string    `json:"tags"`
	Rating      float64     `json:"rating"`
	Coordinates Coordinates `json:"coordinates"`
	Amenities   []string    `json:"amenities"`
	Reviews     int         `json:"reviews"`
}

// Hotel is a bookable hotel. PricePerNight is edited by administrators.
type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	PricePerNight float64  `json:"pricePerNight"`
	Rating        float64  `json:"rating"`
	ImageURL      string   `json:"imageUrl"`
	Amenities     []string `json:"amenities"`
}

// CarType is the vehicle category.
type CarType string

const (
	SUV        CarType = "SUV"
	Sedan      CarType = "Sedan"
	FourByFour CarType = "4x4"
	Van        CarType = "Van"
)

// Valid reports whether t is one of the known vehicle categories.
func (t CarType) Valid() bool {
	switch t {
	case SUV, Sedan, FourByFour, Van:
		return true
	}
	return false
}

// Car is a rental vehicle. PricePerDay is edited by administrators.
type Car struct {
	ID          string   `json:"id"`
	Model       string   `json:"model"`
	Type        CarType  `json:"type"`
	PricePerDay float64  `json:"pricePerDay"`
	ImageURL    string   `json:"imageUrl"`
	Features    []string `json:"features"`
}

// Post is a community feed entry.
type Post struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Content  string `json:"content"`
	// Image is an optional base64 payload.
	Image string `json:"image,omitempty"`
	Likes int    `json:"likes"`
	// Timestamp is the creation time in unix milliseconds.
	Timestamp   int64  `json:"timestamp"`
	LocationTag string `json:"locationTag,omitempty"`
}

// Role distinguishes administrators from regular travellers.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an entry of the simulated user directory. Email is the lookup key.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Budget is the spending tier of a trip request.
type Budget string

const (
	BudgetLow      Budget = "budget"
	BudgetStandard Budget = "standard"
	BudgetLuxury   Budget = "luxury"
)

// RecommendationRequest describes what a traveller is looking for.
// Duration and Budget are carried for the planner UI; scoring only uses
// Interests and Region.
type RecommendationRequest struct {
	Duration  int      `json:"duration"`
	Budget    Budget   `json:"budget"`
	Interests []string `json:"interests"`
	Region    Region   `json:"region,omitempty"`
}

// Recommendation is a destination together with its ranking score.
type Recommendation struct {
	Spot
	Score float64 `json:"score"`
}
