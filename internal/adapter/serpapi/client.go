// Package serpapi provides a client for the SerpAPI Google Flights engine.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Client is the flight search client. Responses are cached per query so a
// user refining other parts of the trip does not re-spend provider quota.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *gocache.Cache
}

// NewClient creates a new flight search client.
func NewClient(baseURL, apiKey string, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// FlightQuery identifies one round-trip search.
type FlightQuery struct {
	DepartureID  string
	ArrivalID    string
	OutboundDate string
	ReturnDate   string
	Currency     string
}

func (q FlightQuery) cacheKey() string {
	return strings.Join([]string{q.DepartureID, q.ArrivalID, q.OutboundDate, q.ReturnDate, q.Currency}, "|")
}

// SearchResult is the raw provider payload. The provider owns this shape;
// every field may be absent, so defaults are resolved downstream.
type SearchResult struct {
	BestFlights      []Option         `json:"best_flights"`
	OtherFlights     []Option         `json:"other_flights"`
	SearchParameters SearchParameters `json:"search_parameters"`
}

// SearchParameters echoes the parameters the provider resolved the search with.
type SearchParameters struct {
	Currency string `json:"currency"`
}

// Option is one raw flight option. Price is kept raw: the provider is not
// consistent about emitting a number there.
type Option struct {
	Flights []Leg           `json:"flights"`
	Price   json.RawMessage `json:"price"`
	Type    string          `json:"type"`
	Link    string          `json:"link"`
}

// Leg is one raw flight segment within an option.
type Leg struct {
	DepartureAirport *AirportInfo `json:"departure_airport"`
	ArrivalAirport   *AirportInfo `json:"arrival_airport"`
	Airline          string       `json:"airline"`
	FlightNumber     string       `json:"flight_number"`
	TravelClass      string       `json:"travel_class"`
	Airplane         string       `json:"airplane"`
	Duration         int64        `json:"duration"`
}

// AirportInfo carries the provider's airport identity and local "YYYY-MM-DD
// HH:MM" timestamp.
type AirportInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

// SearchFlights runs a google_flights search, serving repeats from cache.
func (c *Client) SearchFlights(ctx context.Context, q FlightQuery) (*SearchResult, error) {
	if cached, ok := c.cache.Get(q.cacheKey()); ok {
		return cached.(*SearchResult), nil
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", q.DepartureID)
	params.Set("arrival_id", q.ArrivalID)
	params.Set("outbound_date", q.OutboundDate)
	params.Set("return_date", q.ReturnDate)
	params.Set("currency", q.Currency)
	params.Set("hl", "en")
	params.Set("api_key", c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight search error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result SearchResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	c.cache.SetDefault(q.cacheKey(), &result)
	return &result, nil
}
