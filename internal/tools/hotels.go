package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/voyago/tripagent/internal/domain"
)

type hotelArgs struct {
	Destination  string `json:"destination"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Preference   string `json:"preference"`
}

// titleCase title-cases a phrase. cases.Caser carries transform state, so a
// fresh one is built per call rather than shared across requests.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// findHotels saves a single accommodation stub matching the user's
// preference. The provider lookup is mocked; only the persistence side
// effect is real.
func (b *Belt) findHotels(ctx context.Context, roadmapID int64, rawArgs json.RawMessage) domain.ToolResult {
	var args hotelArgs
	if err := json.Unmarshal(rawArgs, &args); err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding hotels: %v", err))
	}

	log.Printf("[TOOL] %s called with: roadmap_id=%d, destination=%s, check_in_date=%s, check_out_date=%s, preference=%s",
		HotelSearch, roadmapID, args.Destination, args.CheckInDate, args.CheckOutDate, args.Preference)

	checkIn, err := time.Parse("2006-01-02", args.CheckInDate)
	if err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding hotels: %v", err))
	}
	checkOut, err := time.Parse("2006-01-02", args.CheckOutDate)
	if err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding hotels: %v", err))
	}

	hotel := &domain.Accommodation{
		RoadmapID:   roadmapID,
		Name:        fmt.Sprintf("%s Hotel in %s", titleCase(args.Preference), args.Destination),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		PriceTotal:  500,
		Location:    args.Destination,
		ProviderURL: "https://example.com/hotel",
	}

	tx, err := b.store.BeginTx(ctx)
	if err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding hotels: %v", err))
	}
	if err := b.store.InsertAccommodation(ctx, tx, hotel); err != nil {
		tx.Rollback()
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding hotels: %v", err))
	}
	if err := tx.Commit(); err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding hotels: %v", err))
	}

	return domain.StatusResult(fmt.Sprintf("Found and saved a '%s' hotel in %s.", args.Preference, args.Destination))
}
