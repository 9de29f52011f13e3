package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"trainmice/internal/models"
)

// ConfirmBookingParams is the confirm payload. EventDate is set only for
// PUBLIC bookings and always comes from the selected slot, never free-typed.
type ConfirmBookingParams struct {
	TotalSlots             int    `json:"totalSlots"`
	AvailabilityID         string `json:"availabilityId"`
	RegisteredParticipants int    `json:"registeredParticipants"`
	EventDate              string `json:"eventDate,omitempty"`
}

type confirmBookingResponse struct {
	Booking      wireBooking `json:"booking"`
	CreatedEvent *wireEvent  `json:"createdEvent"`
}

// ListBookings fetches booking requests, optionally filtered by status and
// request type.
func (c *CoreClient) ListBookings(ctx context.Context, status, requestType string) ([]models.BookingRequest, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if requestType != "" {
		q.Set("type", requestType)
	}
	path := "/api/v1/bookings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var wire []wireBooking
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookingsToModel(wire), nil
}

// GetBooking fetches one booking request by id.
func (c *CoreClient) GetBooking(ctx context.Context, bookingID string) (*models.BookingRequest, error) {
	var wire wireBooking
	if err := c.do(ctx, http.MethodGet, "/api/v1/bookings/"+url.PathEscape(bookingID), nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	booking := wire.toModel()
	return &booking, nil
}

// GetConflictingBookings returns the other approved-but-unconfirmed bookings
// the core API flags as colliding with the given one.
func (c *CoreClient) GetConflictingBookings(ctx context.Context, bookingID string) ([]models.BookingRequest, error) {
	var wire []wireBooking
	if err := c.do(ctx, http.MethodGet, "/api/v1/bookings/"+url.PathEscape(bookingID)+"/conflicts", nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to get conflicting bookings: %w", err)
	}
	return bookingsToModel(wire), nil
}

// ConfirmBooking materializes an approved booking into an event, claiming the
// availability slot named in params.
func (c *CoreClient) ConfirmBooking(ctx context.Context, bookingID string, params ConfirmBookingParams) (*models.BookingRequest, *models.Event, error) {
	var resp confirmBookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings/"+url.PathEscape(bookingID)+"/confirm", params, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	booking := resp.Booking.toModel()
	var created *models.Event
	if resp.CreatedEvent != nil {
		e := resp.CreatedEvent.toModel()
		created = &e
	}
	return &booking, created, nil
}

// CancelBooking aborts a booking request.
func (c *CoreClient) CancelBooking(ctx context.Context, bookingID string) (*models.BookingRequest, error) {
	var wire wireBooking
	if err := c.do(ctx, http.MethodPost, "/api/v1/bookings/"+url.PathEscape(bookingID)+"/cancel", nil, &wire); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	booking := wire.toModel()
	return &booking, nil
}
