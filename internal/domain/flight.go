package domain

import (
	"bytes"
	"strconv"
)

// Direction tags which leg of a round trip a segment belongs to.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionReturn   Direction = "return"
	DirectionUnknown  Direction = "unknown"
)

// Airport identifies one endpoint of a segment. Time is the provider's
// local timestamp in "YYYY-MM-DD HH:MM" form.
type Airport struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Time string `json:"time"`
}

// Segment is one directional flight leg.
type Segment struct {
	From         Airport   `json:"from_airport"`
	To           Airport   `json:"to_airport"`
	Airline      string    `json:"airline"`
	FlightNumber string    `json:"flight_number"`
	TravelClass  string    `json:"travel_class"`
	Airplane     string    `json:"airplane"`
	Duration     int64     `json:"duration"` // minutes
	Direction    Direction `json:"direction"`
}

// Price is either a known integer amount or the literal "Unknown".
type Price struct {
	Amount int64
	Known  bool
}

// KnownPrice returns a price with a resolved integer amount.
func KnownPrice(amount int64) Price {
	return Price{Amount: amount, Known: true}
}

// UnknownPrice returns the unresolved price sentinel.
func UnknownPrice() Price {
	return Price{}
}

var unknownLiteral = []byte(`"Unknown"`)

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return unknownLiteral, nil
	}
	return []byte(strconv.FormatInt(p.Amount, 10)), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, unknownLiteral) {
		*p = UnknownPrice()
		return nil
	}
	amount, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		*p = UnknownPrice()
		return nil
	}
	*p = KnownPrice(amount)
	return nil
}

// Itinerary is a priced round-trip or one-way travel option composed of one
// or two segments. Itineraries are transient: computed per request, never
// persisted as-is (only summarized ticket rows are written).
type Itinerary struct {
	Segments     []Segment `json:"segments"`
	Price        Price     `json:"price"`
	Currency     string    `json:"currency"`
	FareType     string    `json:"type"`
	BuyURL       string    `json:"buy_url"`
	NumStops     int       `json:"num_stops"`
	StopAirports []string  `json:"stop_airports"`
}
