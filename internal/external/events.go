package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"trainmice/internal/models"
)

// ListEvents fetches events, optionally scoped to a trainer and date window.
func (c *CoreClient) ListEvents(ctx context.Context, trainerID, from, to string) ([]models.Event, error) {
	q := url.Values{}
	if trainerID != "" {
		q.Set("trainerId", trainerID)
	}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := "/api/v1/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var wire []wireEvent
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return eventsToModel(wire), nil
}

// CompleteExpiredEvents triggers the core API batch that moves ACTIVE events
// whose end date has passed to COMPLETED, and returns how many it moved.
func (c *CoreClient) CompleteExpiredEvents(ctx context.Context) (int, error) {
	var resp struct {
		CompletedCount int `json:"completedCount"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/events/complete-expired", nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to complete expired events: %w", err)
	}
	return resp.CompletedCount, nil
}
