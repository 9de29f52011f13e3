package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"trainmice/internal/models"
)

type approveRegistrationParams struct {
	NumberOfParticipants int `json:"numberOfParticipants"`
}

// ListRegistrations fetches event registrations, optionally for one event.
func (c *CoreClient) ListRegistrations(ctx context.Context, eventID string) ([]models.EventRegistration, error) {
	path := "/api/v1/registrations"
	if eventID != "" {
		path += "?eventId=" + url.QueryEscape(eventID)
	}

	var wire []wireRegistration
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrationsToModel(wire), nil
}

// ApproveRegistration approves a registration; the core API assigns the pack
// number.
func (c *CoreClient) ApproveRegistration(ctx context.Context, registrationID string, numberOfParticipants int) (*models.EventRegistration, error) {
	var wire wireRegistration
	params := approveRegistrationParams{NumberOfParticipants: numberOfParticipants}
	if err := c.do(ctx, http.MethodPost, "/api/v1/registrations/"+url.PathEscape(registrationID)+"/approve", params, &wire); err != nil {
		return nil, fmt.Errorf("failed to approve registration: %w", err)
	}
	reg := wire.toModel()
	return &reg, nil
}

// CancelRegistration cancels a registration.
func (c *CoreClient) CancelRegistration(ctx context.Context, registrationID string) (*models.EventRegistration, error) {
	var wire wireRegistration
	if err := c.do(ctx, http.MethodPost, "/api/v1/registrations/"+url.PathEscape(registrationID)+"/cancel", nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to cancel registration: %w", err)
	}
	reg := wire.toModel()
	return &reg, nil
}
