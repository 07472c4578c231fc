package tools

import (
	"context"

	"github.com/voyago/tripagent/internal/adapter/llm"
	"github.com/voyago/tripagent/internal/adapter/serpapi"
	store "github.com/voyago/tripagent/internal/repository"
)

// FlightSearcher is the slice of the flight provider client the ticket
// adapter depends on.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, q serpapi.FlightQuery) (*serpapi.SearchResult, error)
}

// Belt bundles the dependencies shared by the three travel tools and
// registers their adapters.
type Belt struct {
	store    store.Store
	flights  FlightSearcher
	currency string
}

// NewBelt creates a tool belt over the given store and flight client.
func NewBelt(st store.Store, flights FlightSearcher, currency string) *Belt {
	return &Belt{store: st, flights: flights, currency: currency}
}

// RegisterAll registers the three travel tools on the registry.
func (b *Belt) RegisterAll(r *Registry) {
	r.MustRegister(ticketSearchDef(), b.findTickets)
	r.MustRegister(hotelSearchDef(), b.findHotels)
	r.MustRegister(activitySearchDef(), b.findActivities)
}

func objectSchema(required []string, props map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func ticketSearchDef() llm.Tool {
	return llm.Tool{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        TicketSearch,
			Description: "Find round-trip flight tickets for a given departure and destination and dates and save them to the trip. departure_id and destination_id are IATA codes. start_date and end_date are dates in the format YYYY-MM-DD.",
			Parameters: objectSchema(
				[]string{"departure_id", "destination_id", "start_date", "end_date"},
				map[string]interface{}{
					"departure_id":   map[string]interface{}{"type": "string", "description": "IATA code of the departure airport"},
					"destination_id": map[string]interface{}{"type": "string", "description": "IATA code of the destination airport"},
					"start_date":     map[string]interface{}{"type": "string", "description": "Outbound date, YYYY-MM-DD"},
					"end_date":       map[string]interface{}{"type": "string", "description": "Return date, YYYY-MM-DD"},
				},
			),
		},
	}
}

func hotelSearchDef() llm.Tool {
	return llm.Tool{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        HotelSearch,
			Description: "Find a hotel for a given destination, date range, and preference, and save it to the trip.",
			Parameters: objectSchema(
				[]string{"destination", "check_in_date", "check_out_date", "preference"},
				map[string]interface{}{
					"destination":    map[string]interface{}{"type": "string"},
					"check_in_date":  map[string]interface{}{"type": "string", "description": "YYYY-MM-DD"},
					"check_out_date": map[string]interface{}{"type": "string", "description": "YYYY-MM-DD"},
					"preference":     map[string]interface{}{"type": "string", "description": "e.g. budget, boutique, luxury"},
				},
			),
		},
	}
}

func activitySearchDef() llm.Tool {
	return llm.Tool{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        ActivitySearch,
			Description: "Find activities for a given destination and list of interests, and save them to the trip.",
			Parameters: objectSchema(
				[]string{"destination", "interests"},
				map[string]interface{}{
					"destination": map[string]interface{}{"type": "string"},
					"interests":   map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				},
			),
		},
	}
}
