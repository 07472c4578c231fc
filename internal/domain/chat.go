package domain

// ChatRequest carries one conversational turn into the agent loop. Messages
// is the bounded recent context in chronological order; the newest entry is
// the current user input, the rest is history. RoadmapID scopes tool writes
// and is threaded explicitly so concurrent turns cannot observe each other's
// target.
type ChatRequest struct {
	Messages  []Message `json:"messages"`
	RoadmapID int64     `json:"roadmap_id"`
}

// ChatResponse is the agent loop's reply for one turn. ToolOutput is the raw
// tool outcome when one of the planning tools ran ([]Itinerary or a status
// string); nil when the model answered without a tool.
type ChatResponse struct {
	Reply      string `json:"response"`
	ToolOutput any    `json:"tool_output,omitempty"`
}
