package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainmice/internal/models"
)

func TestHealthCheck(t *testing.T) {
	client, _ := SetupGateway(t)
	client.HealthCheck(t)
}

func TestBearerAuthRequired(t *testing.T) {
	client, _ := SetupGateway(t)

	// Без токена
	anonymous := NewTestClient(client.BaseURL, "")
	resp := anonymous.makeRequest(t, "GET", "/api/bookings", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// С неверным токеном
	wrong := NewTestClient(client.BaseURL, "wrong-token")
	resp = wrong.makeRequest(t, "GET", "/api/bookings", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Health остается открытым
	anonymous.HealthCheck(t)
}

func TestListBookingsGroupedByTrainer(t *testing.T) {
	client, _ := SetupGateway(t)

	groups := client.ListBookingsGrouped(t)
	require.Len(t, groups, 1)
	assert.Equal(t, "t-9", groups[0].TrainerID)
	assert.Equal(t, "Anna Weber", groups[0].TrainerName)

	// dates ordered ascending, bookings folded per date
	require.Len(t, groups[0].Dates, 3)
	assert.Equal(t, "2025-06-09", groups[0].Dates[0].Date)
	assert.Equal(t, "2025-06-10", groups[0].Dates[1].Date)
	assert.Equal(t, "2025-07-01", groups[0].Dates[2].Date)
}

func TestMonthViewOverHTTP(t *testing.T) {
	client, _ := SetupGateway(t)

	view := client.GetMonthView(t, "t-9", 2025, 6)
	assert.Equal(t, 30, len(view.Days))
	// the stub deployment has no blocked-days endpoint
	assert.False(t, view.BlockedDaysKnown)
	// June 1st 2025 is a Sunday
	assert.Equal(t, 0, view.LeadingBlanks)

	// approved bookings render as tentative, slots as their own status
	AssertDayStatus(t, view, "2025-06-09", models.DayTentative)
	AssertDayStatus(t, view, "2025-06-10", models.DayTentative)
	AssertDayStatus(t, view, "2025-06-11", models.DayTentative)
	AssertDayStatus(t, view, "2025-06-12", models.DayNotAvailable)
}

func TestMonthViewReflectsConfirmation(t *testing.T) {
	client, _ := SetupGateway(t)

	start := client.StartConfirmation(t, "b-200")
	slot := FindSlotByDate(start.SelectableSlots, "2025-07-01")
	require.NotNil(t, slot)

	client.ConfirmBooking(t, "b-200", models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             12,
		RegisteredParticipants: 3,
		AvailabilityID:         slot.ID,
	})

	view := client.GetMonthView(t, "t-9", 2025, 7)
	AssertDayStatus(t, view, "2025-07-01", models.DayBooked)
}

func TestCreateAvailabilityOverHTTP(t *testing.T) {
	client, _ := SetupGateway(t)

	created := client.CreateAvailability(t, "t-9", models.CreateAvailabilityRequest{
		StartDate: "2025-08-04",
		EndDate:   "2025-08-08",
		Status:    "AVAILABLE",
	})
	assert.Len(t, created.Dates, 5)

	view := client.GetMonthView(t, "t-9", 2025, 8)
	AssertDayStatus(t, view, "2025-08-04", models.DayAvailable)
	AssertDayStatus(t, view, "2025-08-08", models.DayAvailable)
	AssertDayStatus(t, view, "2025-08-09", models.DayNotAvailable)

	// reversed range and non-base statuses rejected
	client.CreateAvailabilityExpectingStatus(t, "t-9", models.CreateAvailabilityRequest{
		StartDate: "2025-08-10", EndDate: "2025-08-04", Status: "AVAILABLE",
	}, http.StatusBadRequest)
	client.CreateAvailabilityExpectingStatus(t, "t-9", models.CreateAvailabilityRequest{
		StartDate: "2025-08-04", EndDate: "2025-08-10", Status: "BOOKED",
	}, http.StatusBadRequest)
}

func TestCompleteExpiredEvents(t *testing.T) {
	client, _ := SetupGateway(t)

	count := client.CompleteExpiredEvents(t)
	assert.Equal(t, 0, count)
}
