package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trainmice/internal/errors"
	"trainmice/internal/external"
	"trainmice/internal/models"
)

// stubCore fakes the TrainMICE core API for workflow tests. It records how
// often each mutating endpoint was hit so tests can assert that validation
// gates fire before any upstream call.
type stubCore struct {
	booking       models.BookingRequest
	conflicts     []models.BookingRequest
	slots         []models.AvailabilitySlot
	confirmStatus int
	confirmCalls  int64
	emailCalls    int64
	lastConfirm   map[string]interface{}
	lastEmail     map[string]interface{}
	server        *httptest.Server
}

func newStubCore(t *testing.T) *stubCore {
	s := &stubCore{
		booking: models.BookingRequest{
			ID:            "b-1",
			TrainerID:     "t-1",
			ClientID:      "c-0",
			RequestType:   models.RequestTypeInhouse,
			RequestedDate: "2025-03-10",
			Status:        models.BookingStatusApproved,
		},
		confirmStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/bookings/b-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(s.booking)
	})
	mux.HandleFunc("GET /api/v1/bookings/b-1/conflicts", func(w http.ResponseWriter, r *http.Request) {
		conflicts := s.conflicts
		if conflicts == nil {
			conflicts = []models.BookingRequest{}
		}
		json.NewEncoder(w).Encode(conflicts)
	})
	mux.HandleFunc("GET /api/v1/trainers/t-1/availability", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(s.slots)
	})
	mux.HandleFunc("POST /api/v1/bookings/b-1/confirm", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.confirmCalls, 1)
		json.NewDecoder(r.Body).Decode(&s.lastConfirm)
		if s.confirmStatus != http.StatusOK {
			w.WriteHeader(s.confirmStatus)
			w.Write([]byte(`{"message": "slot already taken"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"booking": map[string]interface{}{"id": "b-1", "trainerId": "t-1", "status": "CONFIRMED"},
			"createdEvent": map[string]interface{}{
				"id": "e-1", "trainerId": "t-1", "startDate": "2025-03-10", "status": "ACTIVE", "totalSlots": 20,
			},
		})
	})
	mux.HandleFunc("POST /api/v1/bookings/b-1/cancel", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.BookingRequest{ID: "b-1", Status: models.BookingStatusCancelled})
	})
	mux.HandleFunc("POST /api/v1/notifications/email", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.emailCalls, 1)
		json.NewDecoder(r.Body).Decode(&s.lastEmail)
		ids, _ := s.lastEmail["clientIds"].([]interface{})
		json.NewEncoder(w).Encode(map[string]int{"sentCount": len(ids)})
	})

	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

func newBookingService(s *stubCore) *BookingService {
	core := external.NewCoreClient(external.CoreConfig{BaseURL: s.server.URL})
	return NewBookingService(core, NewMemorySessionStore(time.Minute), nil, nil)
}

func availableSlot() models.AvailabilitySlot {
	return models.AvailabilitySlot{ID: "avail-1", TrainerID: "t-1", Date: "2025-03-10", Status: "AVAILABLE"}
}

func TestStartConfirmationWithoutConflicts(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{
		availableSlot(),
		{ID: "avail-2", TrainerID: "t-1", Date: "2025-03-11", Status: "TENTATIVE"},
		{ID: "avail-3", TrainerID: "t-1", Date: "2025-03-12", Status: "BOOKED"},
	}
	svc := newBookingService(stub)

	resp, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.False(t, resp.OverrideRequired)
	assert.Empty(t, resp.Conflicts)
	// AVAILABLE and TENTATIVE are selectable for admins, BOOKED is not
	require.Len(t, resp.SelectableSlots, 2)
	assert.Equal(t, "avail-1", resp.SelectableSlots[0].ID)
	assert.Equal(t, "avail-2", resp.SelectableSlots[1].ID)
}

func TestStartConfirmationWithConflictsWithholdsSlots(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	stub.conflicts = []models.BookingRequest{
		{ID: "b-9", TrainerID: "t-1", ClientID: "c-9", RequestedDate: "2025-03-10", Status: models.BookingStatusApproved},
	}
	svc := newBookingService(stub)

	resp, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	assert.True(t, resp.OverrideRequired)
	assert.Len(t, resp.Conflicts, 1)
	assert.Empty(t, resp.SelectableSlots)
}

func TestConfirmBlockedUntilOverride(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	stub.conflicts = []models.BookingRequest{
		{ID: "b-9", ClientID: "c-9", RequestedDate: "2025-03-10", Status: models.BookingStatusApproved},
	}
	svc := newBookingService(stub)

	start, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), "b-1", &models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             20,
		RegisteredParticipants: 5,
		AvailabilityID:         "avail-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrOverrideRequired)
	assert.EqualValues(t, 0, atomic.LoadInt64(&stub.confirmCalls), "confirm endpoint must not be called before override")

	// explicit override unlocks the form and the confirm call
	override, err := svc.OverrideConflicts(context.Background(), "b-1", start.SessionID)
	require.NoError(t, err)
	require.Len(t, override.SelectableSlots, 1)

	resp, err := svc.Confirm(context.Background(), "b-1", &models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             20,
		RegisteredParticipants: 5,
		AvailabilityID:         "avail-1",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt64(&stub.confirmCalls))
	assert.Equal(t, models.BookingStatusConfirmed, resp.Booking.Status)
}

func TestConfirmValidationGates(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	svc := newBookingService(stub)

	start, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	cases := []struct {
		name string
		req  models.ConfirmBookingRequest
	}{
		{"totalSlots below 1", models.ConfirmBookingRequest{SessionID: start.SessionID, TotalSlots: 0, RegisteredParticipants: 1, AvailabilityID: "avail-1"}},
		{"participants below 1", models.ConfirmBookingRequest{SessionID: start.SessionID, TotalSlots: 10, RegisteredParticipants: 0, AvailabilityID: "avail-1"}},
		{"participants exceed totalSlots", models.ConfirmBookingRequest{SessionID: start.SessionID, TotalSlots: 5, RegisteredParticipants: 6, AvailabilityID: "avail-1"}},
		{"missing availability id", models.ConfirmBookingRequest{SessionID: start.SessionID, TotalSlots: 10, RegisteredParticipants: 5, AvailabilityID: ""}},
		{"unknown availability id", models.ConfirmBookingRequest{SessionID: start.SessionID, TotalSlots: 10, RegisteredParticipants: 5, AvailabilityID: "avail-404"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Confirm(context.Background(), "b-1", &tc.req)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
	assert.EqualValues(t, 0, atomic.LoadInt64(&stub.confirmCalls), "validation failures must not reach the core API")
}

func TestConfirmInhouseOmitsEventDate(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	svc := newBookingService(stub)

	start, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	resp, err := svc.Confirm(context.Background(), "b-1", &models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             20,
		RegisteredParticipants: 5,
		AvailabilityID:         "avail-1",
	})
	require.NoError(t, err)

	assert.Equal(t, float64(20), stub.lastConfirm["totalSlots"])
	assert.Equal(t, "avail-1", stub.lastConfirm["availabilityId"])
	assert.Equal(t, float64(5), stub.lastConfirm["registeredParticipants"])
	_, hasEventDate := stub.lastConfirm["eventDate"]
	assert.False(t, hasEventDate, "INHOUSE confirm must not carry eventDate")

	require.NotNil(t, resp.CreatedEvent)
	assert.Equal(t, "e-1", resp.CreatedEvent.ID)
}

func TestConfirmPublicDerivesEventDateFromSlot(t *testing.T) {
	stub := newStubCore(t)
	stub.booking.RequestType = models.RequestTypePublic
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	svc := newBookingService(stub)

	start, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), "b-1", &models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             20,
		RegisteredParticipants: 5,
		AvailabilityID:         "avail-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", stub.lastConfirm["eventDate"])
}

func TestConfirmFailureKeepsSessionForRetry(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	stub.confirmStatus = http.StatusConflict
	svc := newBookingService(stub)

	start, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	req := &models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             20,
		RegisteredParticipants: 5,
		AvailabilityID:         "avail-1",
	}
	_, err = svc.Confirm(context.Background(), "b-1", req)
	require.Error(t, err)
	var apiErr *external.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "slot already taken", apiErr.Message)

	// retry with the same session succeeds once the upstream accepts
	stub.confirmStatus = http.StatusOK
	_, err = svc.Confirm(context.Background(), "b-1", req)
	assert.NoError(t, err)
}

func TestConfirmSessionConsumedAfterSuccess(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	svc := newBookingService(stub)

	start, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	req := &models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             20,
		RegisteredParticipants: 5,
		AvailabilityID:         "avail-1",
	}
	_, err = svc.Confirm(context.Background(), "b-1", req)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), "b-1", req)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestNotifyConflicts(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	stub.conflicts = []models.BookingRequest{
		{ID: "b-8", ClientID: "c-8", RequestedDate: "2025-03-10", Status: models.BookingStatusApproved},
		{ID: "b-9", ClientID: "c-9", RequestedDate: "2025-03-10", Status: models.BookingStatusApproved},
		{ID: "b-10", ClientID: "c-9", RequestedDate: "2025-03-10", Status: models.BookingStatusApproved},
	}
	svc := newBookingService(stub)

	start, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	resp, err := svc.NotifyConflicts(context.Background(), "b-1", &models.NotifyConflictsRequest{
		SessionID: start.SessionID,
		Title:     "Scheduling conflict",
		Message:   "Another booking was confirmed for this date.",
	})
	require.NoError(t, err)

	// duplicate client ids collapse into one recipient each
	assert.Equal(t, 2, resp.SentCount)
	assert.Equal(t, "Scheduling conflict", stub.lastEmail["title"])
}

func TestNotifyConflictsNoResolvableClients(t *testing.T) {
	stub := newStubCore(t)
	stub.slots = []models.AvailabilitySlot{availableSlot()}
	stub.conflicts = []models.BookingRequest{
		{ID: "b-9", ClientID: "", RequestedDate: "2025-03-10", Status: models.BookingStatusApproved},
	}
	svc := newBookingService(stub)

	start, err := svc.StartConfirmation(context.Background(), "b-1")
	require.NoError(t, err)

	_, err = svc.NotifyConflicts(context.Background(), "b-1", &models.NotifyConflictsRequest{
		SessionID: start.SessionID,
		Title:     "Scheduling conflict",
		Message:   "body",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoRecipients)
	assert.EqualValues(t, 0, atomic.LoadInt64(&stub.emailCalls))
}

func TestConfirmUnknownSession(t *testing.T) {
	stub := newStubCore(t)
	svc := newBookingService(stub)

	_, err := svc.Confirm(context.Background(), "b-1", &models.ConfirmBookingRequest{
		SessionID:              "nope",
		TotalSlots:             20,
		RegisteredParticipants: 5,
		AvailabilityID:         "avail-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestCancelBooking(t *testing.T) {
	stub := newStubCore(t)
	svc := newBookingService(stub)

	booking, err := svc.Cancel(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, booking.Status)
}
