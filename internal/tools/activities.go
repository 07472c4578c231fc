package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/voyago/tripagent/internal/domain"
)

type activityArgs struct {
	Destination string   `json:"destination"`
	Interests   []string `json:"interests"`
}

// findActivities saves one place stub per interest. The provider lookup is
// mocked; only the persistence side effect is real.
func (b *Belt) findActivities(ctx context.Context, roadmapID int64, rawArgs json.RawMessage) domain.ToolResult {
	var args activityArgs
	if err := json.Unmarshal(rawArgs, &args); err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding activities: %v", err))
	}

	log.Printf("[TOOL] %s called with: roadmap_id=%d, destination=%s, interests=%v",
		ActivitySearch, roadmapID, args.Destination, args.Interests)

	tx, err := b.store.BeginTx(ctx)
	if err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding activities: %v", err))
	}
	for _, interest := range args.Interests {
		place := &domain.Place{
			RoadmapID:   roadmapID,
			Name:        fmt.Sprintf("%s Spot", titleCase(interest)),
			Category:    interest,
			Location:    args.Destination,
			DurationMin: 120,
			Rating:      4.5,
			URL:         fmt.Sprintf("https://example.com/activity/%s", interest),
		}
		if err := b.store.InsertPlace(ctx, tx, place); err != nil {
			tx.Rollback()
			return domain.ErrorResult(fmt.Sprintf("An error occurred while finding activities: %v", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.ErrorResult(fmt.Sprintf("An error occurred while finding activities: %v", err))
	}

	return domain.StatusResult(fmt.Sprintf("Found and saved %d activities in %s based on your interests.", len(args.Interests), args.Destination))
}
