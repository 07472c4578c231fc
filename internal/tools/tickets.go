package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/voyago/tripagent/internal/adapter/serpapi"
	"github.com/voyago/tripagent/internal/domain"
	"github.com/voyago/tripagent/internal/flights"
)

type ticketArgs struct {
	DepartureID   string `json:"departure_id"`
	DestinationID string `json:"destination_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

// findTickets searches the flight provider, normalizes the raw options into
// paired itineraries, and persists one summarized ticket row per itinerary.
// Any failure rolls back the rows and degrades to an error string.
func (b *Belt) findTickets(ctx context.Context, roadmapID int64, rawArgs json.RawMessage) domain.ToolResult {
	var args ticketArgs
	if err := json.Unmarshal(rawArgs, &args); err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding tickets: %v", err))
	}

	log.Printf("[TOOL] %s called with: roadmap_id=%d, departure_id=%s, destination_id=%s, start_date=%s, end_date=%s",
		TicketSearch, roadmapID, args.DepartureID, args.DestinationID, args.StartDate, args.EndDate)

	result, err := b.flights.SearchFlights(ctx, serpapi.FlightQuery{
		DepartureID:  args.DepartureID,
		ArrivalID:    args.DestinationID,
		OutboundDate: args.StartDate,
		ReturnDate:   args.EndDate,
		Currency:     b.currency,
	})
	if err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding tickets: %v", err))
	}

	itineraries := flights.Normalize(result, args.StartDate, args.EndDate)

	tx, err := b.store.BeginTx(ctx)
	if err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding tickets: %v", err))
	}
	for _, itin := range itineraries {
		if err := b.store.InsertTicket(ctx, tx, summarizeTicket(roadmapID, itin)); err != nil {
			tx.Rollback()
			return domain.ErrorResult(fmt.Sprintf("An error occurred while finding tickets: %v", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding tickets: %v", err))
	}

	return domain.ItinerariesResult(itineraries)
}

// summarizeTicket flattens an itinerary into one ticket row: departure of the
// first segment, arrival of the last.
func summarizeTicket(roadmapID int64, itin domain.Itinerary) *domain.Ticket {
	ticket := &domain.Ticket{
		RoadmapID:   roadmapID,
		Type:        itin.FareType,
		ProviderURL: itin.BuyURL,
	}
	if itin.Price.Known {
		ticket.Price = itin.Price.Amount
	}
	if len(itin.Segments) > 0 {
		first := itin.Segments[0]
		last := itin.Segments[len(itin.Segments)-1]
		ticket.From = first.From.Code
		ticket.To = first.To.Code
		ticket.Departure = first.From.Time
		ticket.Arrival = last.To.Time
	}
	return ticket
}
