package seed

import (
	"time"

	"github.com/atinyakov/tripwise/internal/models"
)

// AdminEmail is the address of the administrator created on first run.
const AdminEmail = "admin@tripwise.pk"

// DefaultAdmin is the only record of a freshly seeded user directory.
var DefaultAdmin = models.User{
	ID:    "admin1",
	Name:  "Admin User",
	Email: AdminEmail,
	Role:  models.RoleAdmin,
}

// DefaultSpots returns the destination catalogue. Every region has at least
// one entry.
func DefaultSpots() []models.Spot {
	return []models.Spot{
		{
			ID:          "s1",
			Name:        "Hunza Valley",
			Region:      models.GilgitBaltistan,
			Description: "A mountain valley of apricot orchards, ancient forts and views of Rakaposhi and Ladyfinger peaks.",
			ImageURL:    "https://images.tripwise.pk/spots/hunza.jpg",
			Tags:        []string{"mountains", "culture", "trekking", "photography"},
			Rating:      4.9,
			Coordinates: models.Coordinates{Lat: 36.3167, Lng: 74.65},
			Amenities:   []string{"hotels", "restaurants", "guides"},
			Reviews:     1240,
		},
		{
			ID:          "s2",
			Name:        "Fairy Meadows",
			Region:      models.GilgitBaltistan,
			Description: "Alpine grassland at the foot of Nanga Parbat, reached by jeep track and a short trek.",
			ImageURL:    "https://images.tripwise.pk/spots/fairy-meadows.jpg",
			Tags:        []string{"mountains", "trekking", "camping", "nature"},
			Rating:      4.8,
			Coordinates: models.Coordinates{Lat: 35.3869, Lng: 74.5786},
			Amenities:   []string{"camping", "guides"},
			Reviews:     860,
		},
		{
			ID:          "s3",
			Name:        "Naran Kaghan",
			Region:      models.KhyberPakhtunkhwa,
			Description: "A river valley with Saif ul Malook lake, pine forests and cool summer weather.",
			ImageURL:    "https://images.tripwise.pk/spots/naran.jpg",
			Tags:        []string{"lakes", "mountains", "family", "nature"},
			Rating:      4.6,
			Coordinates: models.Coordinates{Lat: 34.9093, Lng: 73.6505},
			Amenities:   []string{"hotels", "restaurants", "parking"},
			Reviews:     1530,
		},
		{
			ID:          "s4",
			Name:        "Swat Valley",
			Region:      models.KhyberPakhtunkhwa,
			Description: "Green valley of rivers and Buddhist heritage, with skiing at Malam Jabba in winter.",
			ImageURL:    "https://images.tripwise.pk/spots/swat.jpg",
			Tags:        []string{"history", "skiing", "nature", "family"},
			Rating:      4.5,
			Coordinates: models.Coordinates{Lat: 35.2227, Lng: 72.4258},
			Amenities:   []string{"hotels", "restaurants"},
			Reviews:     990,
		},
		{
			ID:          "s5",
			Name:        "Badshahi Mosque",
			Region:      models.Punjab,
			Description: "Mughal-era mosque in Lahore's walled city, next to the fort and the famous food street.",
			ImageURL:    "https://images.tripwise.pk/spots/badshahi.jpg",
			Tags:        []string{"history", "culture", "architecture", "food"},
			Rating:      4.8,
			Coordinates: models.Coordinates{Lat: 31.5881, Lng: 74.3097},
			Amenities:   []string{"guides", "restaurants", "parking"},
			Reviews:     2100,
		},
		{
			ID:          "s6",
			Name:        "Murree",
			Region:      models.Punjab,
			Description: "Hill station near Islamabad with colonial architecture and snowfall in winter.",
			ImageURL:    "https://images.tripwise.pk/spots/murree.jpg",
			Tags:        []string{"mountains", "family", "shopping"},
			Rating:      4.2,
			Coordinates: models.Coordinates{Lat: 33.9070, Lng: 73.3943},
			Amenities:   []string{"hotels", "restaurants", "parking"},
			Reviews:     1800,
		},
		{
			ID:          "s7",
			Name:        "Mohenjo-daro",
			Region:      models.Sindh,
			Description: "Ruins of a planned Indus Valley city more than four thousand years old.",
			ImageURL:    "https://images.tripwise.pk/spots/mohenjo-daro.jpg",
			Tags:        []string{"history", "archaeology", "culture"},
			Rating:      4.7,
			Coordinates: models.Coordinates{Lat: 27.3246, Lng: 68.1357},
			Amenities:   []string{"museum", "guides"},
			Reviews:     640,
		},
		{
			ID:          "s8",
			Name:        "Clifton Beach",
			Region:      models.Sindh,
			Description: "Karachi's busy seafront with camel rides, street food and sunset walks.",
			ImageURL:    "https://images.tripwise.pk/spots/clifton.jpg",
			Tags:        []string{"beach", "food", "city"},
			Rating:      4.0,
			Coordinates: models.Coordinates{Lat: 24.8006, Lng: 67.0300},
			Amenities:   []string{"restaurants", "parking"},
			Reviews:     1320,
		},
		{
			ID:          "s9",
			Name:        "Gwadar Port",
			Region:      models.Balochistan,
			Description: "Hammerhead cliffs over the Arabian Sea and quiet beaches with an unbeatable sunset.",
			ImageURL:    "https://images.tripwise.pk/spots/gwadar.jpg",
			Tags:        []string{"beach", "sea", "photography"},
			Rating:      4.4,
			Coordinates: models.Coordinates{Lat: 25.1264, Lng: 62.3225},
			Amenities:   []string{"hotels"},
			Reviews:     410,
		},
		{
			ID:          "s10",
			Name:        "Kund Malir",
			Region:      models.Balochistan,
			Description: "Desert coastline along the Makran highway where the Hingol hills meet the sea.",
			ImageURL:    "https://images.tripwise.pk/spots/kund-malir.jpg",
			Tags:        []string{"beach", "desert", "roadtrip"},
			Rating:      4.6,
			Coordinates: models.Coordinates{Lat: 25.3960, Lng: 65.4570},
			Amenities:   []string{"parking"},
			Reviews:     380,
		},
		{
			ID:          "s11",
			Name:        "Neelum Valley",
			Region:      models.AzadKashmir,
			Description: "Forested valley of streams and villages such as Keran, Sharda and Arang Kel.",
			ImageURL:    "https://images.tripwise.pk/spots/neelum.jpg",
			Tags:        []string{"nature", "rivers", "trekking"},
			Rating:      4.7,
			Coordinates: models.Coordinates{Lat: 34.5857, Lng: 73.9073},
			Amenities:   []string{"guest houses", "guides"},
			Reviews:     720,
		},
		{
			ID:          "s12",
			Name:        "Deosai Plains",
			Region:      models.NorthernAreas,
			Description: "High-altitude plateau of wildflowers and brown bears, open only in summer.",
			ImageURL:    "https://images.tripwise.pk/spots/deosai.jpg",
			Tags:        []string{"wildlife", "camping", "nature", "photography"},
			Rating:      4.8,
			Coordinates: models.Coordinates{Lat: 35.0300, Lng: 75.4000},
			Amenities:   []string{"camping"},
			Reviews:     530,
		},
	}
}

// DefaultHotels returns the hotel catalogue.
func DefaultHotels() []models.Hotel {
	return []models.Hotel{
		{ID: "h1", Name: "Serena Hunza", Location: "Hunza", PricePerNight: 28000, Rating: 4.8,
			ImageURL: "https://images.tripwise.pk/hotels/serena-hunza.jpg", Amenities: []string{"wifi", "breakfast", "mountain view"}},
		{ID: "h2", Name: "Luxus Hunza", Location: "Hunza", PricePerNight: 35000, Rating: 4.9,
			ImageURL: "https://images.tripwise.pk/hotels/luxus.jpg", Amenities: []string{"wifi", "lake view", "spa"}},
		{ID: "h3", Name: "Pearl Continental Bhurban", Location: "Murree", PricePerNight: 35000, Rating: 4.7,
			ImageURL: "https://images.tripwise.pk/hotels/pc-bhurban.jpg", Amenities: []string{"wifi", "pool", "golf"}},
		{ID: "h4", Name: "Arcadian Riverside", Location: "Naran", PricePerNight: 12000, Rating: 4.3,
			ImageURL: "https://images.tripwise.pk/hotels/arcadian.jpg", Amenities: []string{"wifi", "river view"}},
		{ID: "h5", Name: "Avari Lahore", Location: "Lahore", PricePerNight: 22000, Rating: 4.5,
			ImageURL: "https://images.tripwise.pk/hotels/avari.jpg", Amenities: []string{"wifi", "pool", "gym"}},
		{ID: "h6", Name: "Sadaf Resort", Location: "Gwadar", PricePerNight: 8000, Rating: 4.0,
			ImageURL: "https://images.tripwise.pk/hotels/sadaf.jpg", Amenities: []string{"sea view", "breakfast"}},
	}
}

// DefaultCars returns the rental fleet, one or more per vehicle category.
func DefaultCars() []models.Car {
	return []models.Car{
		{ID: "c1", Model: "Toyota Land Cruiser Prado", Type: models.FourByFour, PricePerDay: 18000,
			ImageURL: "https://images.tripwise.pk/cars/prado.jpg", Features: []string{"4WD", "7 seats", "driver included"}},
		{ID: "c2", Model: "Toyota Fortuner", Type: models.SUV, PricePerDay: 14000,
			ImageURL: "https://images.tripwise.pk/cars/fortuner.jpg", Features: []string{"AC", "7 seats"}},
		{ID: "c3", Model: "Honda Civic", Type: models.Sedan, PricePerDay: 8000,
			ImageURL: "https://images.tripwise.pk/cars/civic.jpg", Features: []string{"AC", "automatic"}},
		{ID: "c4", Model: "Suzuki Alto", Type: models.Sedan, PricePerDay: 4000,
			ImageURL: "https://images.tripwise.pk/cars/alto.jpg", Features: []string{"economy", "city"}},
		{ID: "c5", Model: "Toyota Hiace", Type: models.Van, PricePerDay: 15000,
			ImageURL: "https://images.tripwise.pk/cars/hiace.jpg", Features: []string{"14 seats", "AC", "luggage rack"}},
	}
}

// DefaultPosts returns the opening community feed with timestamps relative
// to now.
func DefaultPosts(now time.Time) []models.Post {
	return []models.Post{
		{ID: "1", UserID: "u1", UserName: "Ali Khan", Content: "Just visited Hunza! The apricots are amazing.",
			Likes: 12, Timestamp: now.Add(-100 * time.Second).UnixMilli(), LocationTag: "Hunza Valley"},
		{ID: "2", UserID: "u2", UserName: "Sara Ahmed", Content: "Gwadar sunset is unbeatable.",
			Likes: 45, Timestamp: now.Add(-5000 * time.Second).UnixMilli(), LocationTag: "Gwadar Port"},
	}
}
