// Package flights turns raw provider search results into paired, directional,
// priced itineraries. Everything here is pure: no I/O and no errors. Malformed
// provider data degrades to defaults or a shorter result list.
package flights

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/voyago/tripagent/internal/adapter/serpapi"
	"github.com/voyago/tripagent/internal/domain"
)

const (
	// maxCandidates bounds the pairing cost before any matching happens.
	maxCandidates = 20
	// maxItineraries caps the returned list.
	maxItineraries = 8

	unknownField = "Unknown"
	noLink       = "Not available"
)

type candidate struct {
	opt serpapi.Option
	seg serpapi.Leg
}

// Normalize converts a raw search result into at most 8 itineraries for a
// round trip between departureID and arrivalID on startDate/endDate (both
// "YYYY-MM-DD"). Outbound and return candidates are paired whenever the
// outbound's arrival airport equals the return's departure airport; a
// candidate may appear in several pairs. When no pair matches, the first
// candidates are emitted as single-segment itineraries so the caller still
// sees one-way availability.
func Normalize(raw *serpapi.SearchResult, startDate, endDate string) []domain.Itinerary {
	if raw == nil {
		return []domain.Itinerary{}
	}

	options := raw.BestFlights
	if len(options) == 0 {
		options = raw.OtherFlights
	}
	if len(options) > maxCandidates {
		options = options[:maxCandidates]
	}

	currency := raw.SearchParameters.Currency
	if currency == "" {
		currency = unknownField
	}

	// Split candidates by direction. Options without any segment are skipped
	// entirely and do not count toward any cap.
	var outbound, returns []candidate
	for _, opt := range options {
		if len(opt.Flights) == 0 {
			continue
		}
		seg := opt.Flights[0]
		switch classify(departureDate(seg), startDate, endDate) {
		case domain.DirectionOutbound:
			outbound = append(outbound, candidate{opt: opt, seg: seg})
		default:
			returns = append(returns, candidate{opt: opt, seg: seg})
		}
	}

	paired := pair(outbound, returns, currency)
	if len(paired) > 0 {
		return paired
	}
	return unpaired(options, currency, startDate, endDate)
}

// pair matches every outbound candidate against every return candidate whose
// departure airport equals the outbound's arrival airport, in list order,
// stopping at the cap.
func pair(outbound, returns []candidate, currency string) []domain.Itinerary {
	var itineraries []domain.Itinerary
	for _, out := range outbound {
		for _, ret := range returns {
			if airportCode(out.seg.ArrivalAirport) != airportCode(ret.seg.DepartureAirport) {
				continue
			}
			itineraries = append(itineraries, domain.Itinerary{
				Segments: []domain.Segment{
					buildSegment(out.seg, domain.DirectionOutbound),
					buildSegment(ret.seg, domain.DirectionReturn),
				},
				Price:        combinePrices(out.opt.Price, ret.opt.Price),
				Currency:     currency,
				FareType:     fareType(out.opt),
				BuyURL:       firstLink(out.opt.Link, ret.opt.Link),
				NumStops:     0,
				StopAirports: []string{},
			})
			if len(itineraries) == maxItineraries {
				return itineraries
			}
		}
	}
	return itineraries
}

// unpaired emits one single-segment itinerary per usable option, direction
// classified per candidate, so a failed pairing never yields an empty set
// when the provider returned anything usable.
func unpaired(options []serpapi.Option, currency, startDate, endDate string) []domain.Itinerary {
	itineraries := []domain.Itinerary{}
	for _, opt := range options {
		if len(itineraries) == maxItineraries {
			break
		}
		if len(opt.Flights) == 0 {
			continue
		}
		seg := opt.Flights[0]

		direction := domain.DirectionUnknown
		if date := departureDate(seg); date != "" {
			direction = classify(date, startDate, endDate)
		}

		itineraries = append(itineraries, domain.Itinerary{
			Segments:     []domain.Segment{buildSegment(seg, direction)},
			Price:        parsePrice(opt.Price),
			Currency:     currency,
			FareType:     fareType(opt),
			BuyURL:       firstLink(opt.Link),
			NumStops:     0,
			StopAirports: []string{},
		})
	}
	return itineraries
}

// classify maps a departure date onto a direction. Dates matching neither
// endpoint fall back to a lexical comparison against the return date; this
// mirrors provider behavior for mid-window departures and is intentionally
// not corrected.
func classify(depDate, startDate, endDate string) domain.Direction {
	switch {
	case depDate == startDate:
		return domain.DirectionOutbound
	case depDate == endDate:
		return domain.DirectionReturn
	case depDate < endDate:
		return domain.DirectionOutbound
	default:
		return domain.DirectionReturn
	}
}

func buildSegment(seg serpapi.Leg, direction domain.Direction) domain.Segment {
	return domain.Segment{
		From:         buildAirport(seg.DepartureAirport),
		To:           buildAirport(seg.ArrivalAirport),
		Airline:      orUnknown(seg.Airline),
		FlightNumber: orUnknown(seg.FlightNumber),
		TravelClass:  orUnknown(seg.TravelClass),
		Airplane:     orUnknown(seg.Airplane),
		Duration:     seg.Duration,
		Direction:    direction,
	}
}

func buildAirport(info *serpapi.AirportInfo) domain.Airport {
	if info == nil {
		return domain.Airport{}
	}
	return domain.Airport{Name: info.Name, Code: info.ID, Time: info.Time}
}

// combinePrices sums the two leg prices when both coerce to integers. A
// non-coercible return price is ignored; the outbound price stands alone. An
// absent outbound price counts as zero in paired mode.
func combinePrices(outPrice, retPrice json.RawMessage) domain.Price {
	out, outOK := coercePrice(outPrice)
	if !outOK {
		if len(outPrice) != 0 {
			return domain.UnknownPrice()
		}
		out = 0
	}
	if ret, retOK := coercePrice(retPrice); retOK {
		return domain.KnownPrice(out + ret)
	}
	return domain.KnownPrice(out)
}

// parsePrice resolves a standalone option price, defaulting to Unknown.
func parsePrice(raw json.RawMessage) domain.Price {
	if v, ok := coercePrice(raw); ok {
		return domain.KnownPrice(v)
	}
	return domain.UnknownPrice()
}

// coercePrice accepts integers, floats (truncated), and quoted numerics.
func coercePrice(raw json.RawMessage) (int64, bool) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

func departureDate(seg serpapi.Leg) string {
	if seg.DepartureAirport == nil {
		return ""
	}
	date, _, _ := strings.Cut(seg.DepartureAirport.Time, " ")
	return date
}

func airportCode(info *serpapi.AirportInfo) string {
	if info == nil {
		return ""
	}
	return info.ID
}

func fareType(opt serpapi.Option) string {
	return orUnknown(opt.Type)
}

func orUnknown(s string) string {
	if s == "" {
		return unknownField
	}
	return s
}

func firstLink(links ...string) string {
	for _, link := range links {
		if link != "" {
			return link
		}
	}
	return noLink
}
