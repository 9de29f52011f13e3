package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"trainmice/internal/models"
)

// TestClient drives the admin gateway the way the dashboard would.
type TestClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewTestClient creates a new test client
func NewTestClient(baseURL, token string) *TestClient {
	return &TestClient{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

func (c *TestClient) decode(t *testing.T, resp *http.Response, expectedStatus int, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(body))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
}

// ListBookings lists booking requests
func (c *TestClient) ListBookings(t *testing.T) []models.BookingRequest {
	resp := c.makeRequest(t, "GET", "/api/bookings", nil)
	var bookings []models.BookingRequest
	c.decode(t, resp, http.StatusOK, &bookings)
	return bookings
}

// ListBookingsGrouped lists bookings in the trainer/date grouping
func (c *TestClient) ListBookingsGrouped(t *testing.T) []models.TrainerBookingGroup {
	resp := c.makeRequest(t, "GET", "/api/bookings?groupBy=trainer", nil)
	var groups []models.TrainerBookingGroup
	c.decode(t, resp, http.StatusOK, &groups)
	return groups
}

// StartConfirmation opens a confirmation workflow session
func (c *TestClient) StartConfirmation(t *testing.T, bookingID string) *models.StartConfirmationResponse {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/bookings/%s/confirmation", bookingID), nil)
	var out models.StartConfirmationResponse
	c.decode(t, resp, http.StatusCreated, &out)
	return &out
}

// NotifyConflicts emails the clients of conflicting bookings
func (c *TestClient) NotifyConflicts(t *testing.T, bookingID, sessionID, title, message string) *models.NotifyConflictsResponse {
	req := models.NotifyConflictsRequest{SessionID: sessionID, Title: title, Message: message}
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/bookings/%s/notify", bookingID), req)
	var out models.NotifyConflictsResponse
	c.decode(t, resp, http.StatusOK, &out)
	return &out
}

// OverrideConflicts acknowledges conflicts and unlocks the form
func (c *TestClient) OverrideConflicts(t *testing.T, bookingID, sessionID string) *models.OverrideConflictsResponse {
	req := models.OverrideConflictsRequest{SessionID: sessionID}
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/bookings/%s/override", bookingID), req)
	var out models.OverrideConflictsResponse
	c.decode(t, resp, http.StatusOK, &out)
	return &out
}

// ConfirmBooking submits the confirmation form
func (c *TestClient) ConfirmBooking(t *testing.T, bookingID string, req models.ConfirmBookingRequest) *models.ConfirmBookingResponse {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/bookings/%s/confirm", bookingID), req)
	var out models.ConfirmBookingResponse
	c.decode(t, resp, http.StatusOK, &out)
	return &out
}

// ConfirmBookingExpectingStatus submits the form expecting a failure status
func (c *TestClient) ConfirmBookingExpectingStatus(t *testing.T, bookingID string, req models.ConfirmBookingRequest, expectedStatus int) {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/bookings/%s/confirm", bookingID), req)
	c.decode(t, resp, expectedStatus, nil)
}

// CancelBooking cancels a booking request
func (c *TestClient) CancelBooking(t *testing.T, bookingID string) *models.BookingRequest {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/bookings/%s/cancel", bookingID), nil)
	var out models.BookingRequest
	c.decode(t, resp, http.StatusOK, &out)
	return &out
}

// GetMonthView fetches a trainer's calendar month
func (c *TestClient) GetMonthView(t *testing.T, trainerID string, year, month int) *models.MonthViewResponse {
	path := fmt.Sprintf("/api/trainers/%s/calendar?year=%d&month=%d", trainerID, year, month)
	resp := c.makeRequest(t, "GET", path, nil)
	var out models.MonthViewResponse
	c.decode(t, resp, http.StatusOK, &out)
	return &out
}

// CreateAvailability bulk-creates availability for a trainer
func (c *TestClient) CreateAvailability(t *testing.T, trainerID string, req models.CreateAvailabilityRequest) *models.CreateAvailabilityResponse {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/trainers/%s/availability", trainerID), req)
	var out models.CreateAvailabilityResponse
	c.decode(t, resp, http.StatusCreated, &out)
	return &out
}

// CreateAvailabilityExpectingStatus submits availability expecting a failure
func (c *TestClient) CreateAvailabilityExpectingStatus(t *testing.T, trainerID string, req models.CreateAvailabilityRequest, expectedStatus int) {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/api/trainers/%s/availability", trainerID), req)
	c.decode(t, resp, expectedStatus, nil)
}

// ListEvents lists events
func (c *TestClient) ListEvents(t *testing.T, trainerID string) []models.Event {
	path := "/api/events"
	if trainerID != "" {
		path += "?trainerId=" + trainerID
	}
	resp := c.makeRequest(t, "GET", path, nil)
	var events []models.Event
	c.decode(t, resp, http.StatusOK, &events)
	return events
}

// CompleteExpiredEvents triggers the expired-event sweep
func (c *TestClient) CompleteExpiredEvents(t *testing.T) int {
	resp := c.makeRequest(t, "POST", "/api/events/complete-expired", nil)
	var out models.CompleteExpiredResponse
	c.decode(t, resp, http.StatusOK, &out)
	return out.CompletedCount
}

// HealthCheck checks if the gateway is healthy
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Health check failed with status %d", resp.StatusCode)
	}
}
