package flights

import (
	"encoding/json"
	"testing"

	"github.com/voyago/tripagent/internal/adapter/serpapi"
	"github.com/voyago/tripagent/internal/domain"
)

const (
	startDate = "2024-07-10"
	endDate   = "2024-07-15"
)

func leg(from, to, timeStr string) serpapi.Leg {
	return serpapi.Leg{
		DepartureAirport: &serpapi.AirportInfo{Name: from + " Airport", ID: from, Time: timeStr},
		ArrivalAirport:   &serpapi.AirportInfo{Name: to + " Airport", ID: to, Time: "2024-07-10 12:00"},
		Airline:          "TestAir",
		FlightNumber:     "TA 100",
		TravelClass:      "Economy",
		Airplane:         "A320",
		Duration:         180,
	}
}

func option(from, to, timeStr string, price string) serpapi.Option {
	opt := serpapi.Option{
		Flights: []serpapi.Leg{leg(from, to, timeStr)},
		Type:    "Round trip",
		Link:    "https://example.com/buy",
	}
	if price != "" {
		opt.Price = json.RawMessage(price)
	}
	return opt
}

func result(best ...serpapi.Option) *serpapi.SearchResult {
	return &serpapi.SearchResult{
		BestFlights:      best,
		SearchParameters: serpapi.SearchParameters{Currency: "KZT"},
	}
}

func TestNormalizePairsByConnectingAirport(t *testing.T) {
	out := option("ALA", "CDG", startDate+" 08:00", "100")
	ret := option("CDG", "ALA", endDate+" 18:00", "120")

	itins := Normalize(result(out, ret), startDate, endDate)
	if len(itins) != 1 {
		t.Fatalf("expected 1 itinerary, got %d", len(itins))
	}

	itin := itins[0]
	if len(itin.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(itin.Segments))
	}
	if itin.Segments[0].Direction != domain.DirectionOutbound {
		t.Errorf("first segment direction = %s, want outbound", itin.Segments[0].Direction)
	}
	if itin.Segments[1].Direction != domain.DirectionReturn {
		t.Errorf("second segment direction = %s, want return", itin.Segments[1].Direction)
	}
	if !itin.Price.Known || itin.Price.Amount != 220 {
		t.Errorf("price = %+v, want known 220", itin.Price)
	}
	if itin.Currency != "KZT" {
		t.Errorf("currency = %s, want KZT", itin.Currency)
	}
}

func TestNormalizeNoMatchFallsBackToSingles(t *testing.T) {
	// Return departs from a different airport than the outbound arrives at.
	out := option("ALA", "CDG", startDate+" 08:00", "100")
	ret := option("ORY", "ALA", endDate+" 18:00", "120")

	itins := Normalize(result(out, ret), startDate, endDate)
	if len(itins) != 2 {
		t.Fatalf("expected 2 single-segment itineraries, got %d", len(itins))
	}
	for _, itin := range itins {
		if len(itin.Segments) != 1 {
			t.Fatalf("expected 1 segment, got %d", len(itin.Segments))
		}
	}
	if itins[0].Segments[0].Direction != domain.DirectionOutbound {
		t.Errorf("first fallback direction = %s, want outbound", itins[0].Segments[0].Direction)
	}
	if itins[1].Segments[0].Direction != domain.DirectionReturn {
		t.Errorf("second fallback direction = %s, want return", itins[1].Segments[0].Direction)
	}
}

func TestNormalizeEmptyAndNil(t *testing.T) {
	if itins := Normalize(nil, startDate, endDate); len(itins) != 0 {
		t.Errorf("nil result: got %d itineraries", len(itins))
	}
	if itins := Normalize(&serpapi.SearchResult{}, startDate, endDate); len(itins) != 0 {
		t.Errorf("empty result: got %d itineraries", len(itins))
	}
}

func TestNormalizeUsesOtherFlightsWhenBestEmpty(t *testing.T) {
	raw := &serpapi.SearchResult{
		OtherFlights:     []serpapi.Option{option("ALA", "CDG", startDate+" 08:00", "100"), option("CDG", "ALA", endDate+" 18:00", "50")},
		SearchParameters: serpapi.SearchParameters{Currency: "USD"},
	}
	itins := Normalize(raw, startDate, endDate)
	if len(itins) != 1 {
		t.Fatalf("expected 1 itinerary from other_flights, got %d", len(itins))
	}
	if itins[0].Currency != "USD" {
		t.Errorf("currency = %s, want USD", itins[0].Currency)
	}
}

func TestNormalizeItineraryCap(t *testing.T) {
	// 3 matching outbounds x 3 returns = 9 pairs, capped at 8.
	var opts []serpapi.Option
	for i := 0; i < 3; i++ {
		opts = append(opts, option("ALA", "CDG", startDate+" 08:00", "100"))
	}
	for i := 0; i < 3; i++ {
		opts = append(opts, option("CDG", "ALA", endDate+" 18:00", "100"))
	}

	itins := Normalize(result(opts...), startDate, endDate)
	if len(itins) != 8 {
		t.Fatalf("expected cap of 8 itineraries, got %d", len(itins))
	}
}

func TestNormalizeCandidateCap(t *testing.T) {
	// 25 outbound options beyond position 20 must not participate. Put the
	// only return candidate past the cap: pairing then fails entirely and
	// the fallback emits singles from the first 20 options.
	var opts []serpapi.Option
	for i := 0; i < 24; i++ {
		opts = append(opts, option("ALA", "CDG", startDate+" 08:00", "100"))
	}
	opts = append(opts, option("CDG", "ALA", endDate+" 18:00", "100"))

	itins := Normalize(result(opts...), startDate, endDate)
	for _, itin := range itins {
		if len(itin.Segments) != 1 {
			t.Fatalf("expected single-segment fallback, got %d segments", len(itin.Segments))
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		depDate string
		want    domain.Direction
	}{
		{"2024-07-10", domain.DirectionOutbound}, // equals start
		{"2024-07-15", domain.DirectionReturn},   // equals end
		{"2024-07-12", domain.DirectionOutbound}, // mid-window, before end
		{"2024-07-20", domain.DirectionReturn},   // after end
		{"2024-07-01", domain.DirectionOutbound}, // before start, still before end
	}
	for _, tc := range cases {
		if got := classify(tc.depDate, startDate, endDate); got != tc.want {
			t.Errorf("classify(%s) = %s, want %s", tc.depDate, got, tc.want)
		}
	}
}

func TestCombinePrices(t *testing.T) {
	cases := []struct {
		name      string
		out, ret  string
		want      int64
		wantKnown bool
	}{
		{"both ints", "100", "120", 220, true},
		{"invalid return ignored", "100", `"n/a"`, 100, true},
		{"absent outbound counts as zero", "", "120", 120, true},
		{"invalid outbound unknown", `"n/a"`, "120", 0, false},
		{"float truncated", "100.9", "0", 100, true},
		{"quoted numeric", `"100"`, `"20"`, 120, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out, ret json.RawMessage
			if tc.out != "" {
				out = json.RawMessage(tc.out)
			}
			if tc.ret != "" {
				ret = json.RawMessage(tc.ret)
			}
			got := combinePrices(out, ret)
			if got.Known != tc.wantKnown {
				t.Fatalf("known = %v, want %v", got.Known, tc.wantKnown)
			}
			if got.Known && got.Amount != tc.want {
				t.Errorf("amount = %d, want %d", got.Amount, tc.want)
			}
		})
	}
}

func TestNormalizeDefaultsForMissingFields(t *testing.T) {
	opt := serpapi.Option{
		Flights: []serpapi.Leg{{
			DepartureAirport: &serpapi.AirportInfo{ID: "ALA", Time: startDate + " 08:00"},
			ArrivalAirport:   &serpapi.AirportInfo{ID: "CDG"},
		}},
	}

	itins := Normalize(result(opt), startDate, endDate)
	if len(itins) != 1 {
		t.Fatalf("expected 1 itinerary, got %d", len(itins))
	}

	itin := itins[0]
	seg := itin.Segments[0]
	if seg.Airline != "Unknown" || seg.FlightNumber != "Unknown" || seg.TravelClass != "Unknown" || seg.Airplane != "Unknown" {
		t.Errorf("missing segment fields not defaulted: %+v", seg)
	}
	if itin.FareType != "Unknown" {
		t.Errorf("fare type = %s, want Unknown", itin.FareType)
	}
	if itin.BuyURL != "Not available" {
		t.Errorf("buy url = %s, want Not available", itin.BuyURL)
	}
	if itin.Price.Known {
		t.Errorf("price should be unknown, got %+v", itin.Price)
	}
}

func TestPriceJSONRendering(t *testing.T) {
	known, err := json.Marshal(domain.KnownPrice(220))
	if err != nil {
		t.Fatalf("marshal known price: %v", err)
	}
	if string(known) != "220" {
		t.Errorf("known price = %s, want 220", known)
	}

	unknown, err := json.Marshal(domain.UnknownPrice())
	if err != nil {
		t.Fatalf("marshal unknown price: %v", err)
	}
	if string(unknown) != `"Unknown"` {
		t.Errorf("unknown price = %s, want \"Unknown\"", unknown)
	}
}

func TestNormalizeSkipsOptionsWithoutSegments(t *testing.T) {
	raw := result(
		serpapi.Option{Price: json.RawMessage("100")},
		option("ALA", "CDG", startDate+" 08:00", "100"),
		option("CDG", "ALA", endDate+" 18:00", "100"),
	)
	itins := Normalize(raw, startDate, endDate)
	if len(itins) != 1 {
		t.Fatalf("expected 1 itinerary, got %d", len(itins))
	}
}
