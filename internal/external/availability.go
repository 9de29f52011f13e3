package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"trainmice/internal/models"
)

// CreateAvailabilityParams is the bulk upsert payload: every date in the
// list gets the same status, existing records are overwritten.
type CreateAvailabilityParams struct {
	Dates  []string `json:"dates"`
	Status string   `json:"status"`
}

// GetTrainerAvailability fetches a trainer's slots inside [from, to].
func (c *CoreClient) GetTrainerAvailability(ctx context.Context, trainerID, from, to string) ([]models.AvailabilitySlot, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := "/api/v1/trainers/" + url.PathEscape(trainerID) + "/availability"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var wire []wireSlot
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to get trainer availability: %w", err)
	}
	return slotsToModel(wire), nil
}

// GetBlockedWeekdays fetches a trainer's recurring blocked weekdays. The
// endpoint is feature-optional: a 404 means the deployment does not have it,
// which is reported as Known=false rather than an error.
func (c *CoreClient) GetBlockedWeekdays(ctx context.Context, trainerID string) (models.BlockedWeekdays, error) {
	var resp struct {
		Days []int `json:"days"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/trainers/"+url.PathEscape(trainerID)+"/blocked-days", nil, &resp)
	if err != nil {
		if IsNotFound(err) {
			return models.BlockedWeekdays{Known: false}, nil
		}
		return models.BlockedWeekdays{}, fmt.Errorf("failed to get blocked weekdays: %w", err)
	}
	return models.BlockedWeekdays{Days: resp.Days, Known: true}, nil
}

// CreateTrainerAvailability bulk-upserts availability records.
func (c *CoreClient) CreateTrainerAvailability(ctx context.Context, trainerID string, params CreateAvailabilityParams) ([]models.AvailabilitySlot, error) {
	var wire []wireSlot
	if err := c.do(ctx, http.MethodPost, "/api/v1/trainers/"+url.PathEscape(trainerID)+"/availability", params, &wire); err != nil {
		return nil, fmt.Errorf("failed to create trainer availability: %w", err)
	}
	return slotsToModel(wire), nil
}
