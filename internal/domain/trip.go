package domain

import "time"

// Roadmap is the trip plan the planning tools attach their records to.
type Roadmap struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ticket is a summarized flight option persisted against a roadmap.
// Departure and Arrival keep the provider's local "YYYY-MM-DD HH:MM" form.
type Ticket struct {
	ID          int64  `json:"id"`
	RoadmapID   int64  `json:"roadmap_id"`
	Type        string `json:"type"`
	From        string `json:"from"`
	To          string `json:"to"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Price       int64  `json:"price"`
	ProviderURL string `json:"provider_url"`
}

// Accommodation is a hotel booking stub persisted against a roadmap.
type Accommodation struct {
	ID          int64     `json:"id"`
	RoadmapID   int64     `json:"roadmap_id"`
	Name        string    `json:"name"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	PriceTotal  int64     `json:"price_total"`
	Location    string    `json:"location"`
	ProviderURL string    `json:"provider_url"`
}

// Place is an activity suggestion persisted against a roadmap.
type Place struct {
	ID          int64   `json:"id"`
	RoadmapID   int64   `json:"roadmap_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	DurationMin int64   `json:"duration_min"`
	Rating      float64 `json:"rating"`
	URL         string  `json:"url"`
}
