package domain

import "encoding/json"

// ToolResultKind discriminates the variants of a ToolResult.
type ToolResultKind string

const (
	ToolResultStatus      ToolResultKind = "status"
	ToolResultItineraries ToolResultKind = "itineraries"
	ToolResultError       ToolResultKind = "error"
)

// ToolResult is the tagged outcome of one tool invocation: a human-readable
// status line, a structured itinerary list, or an error description. Tool
// failures are values here, not raised faults, so the reasoning model always
// receives text it can relay.
type ToolResult struct {
	Kind        ToolResultKind
	Status      string
	Itineraries []Itinerary
	Err         string
}

// StatusResult wraps a confirmation string.
func StatusResult(status string) ToolResult {
	return ToolResult{Kind: ToolResultStatus, Status: status}
}

// ItinerariesResult wraps a structured flight-option list.
func ItinerariesResult(itineraries []Itinerary) ToolResult {
	return ToolResult{Kind: ToolResultItineraries, Itineraries: itineraries}
}

// ErrorResult wraps a tool-local failure description.
func ErrorResult(message string) ToolResult {
	return ToolResult{Kind: ToolResultError, Err: message}
}

// Text renders the result as the observation fed back to the reasoning model.
func (r ToolResult) Text() string {
	switch r.Kind {
	case ToolResultItineraries:
		data, err := json.Marshal(r.Itineraries)
		if err != nil {
			return "[]"
		}
		return string(data)
	case ToolResultError:
		return r.Err
	default:
		return r.Status
	}
}
