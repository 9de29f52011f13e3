package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"trainmice/internal/external"
	"trainmice/internal/handlers"
	"trainmice/internal/middleware"
	"trainmice/internal/models"
	"trainmice/internal/service"
)

const TestAdminToken = "integration-test-token"

// stubCoreAPI is a stateful fake of the TrainMICE core API. Confirming a
// booking flips its status, claims the slot and materializes an event, so a
// test can follow the whole workflow end to end.
type stubCoreAPI struct {
	mu       sync.Mutex
	bookings map[string]*models.BookingRequest
	slots    map[string][]*models.AvailabilitySlot
	events   []*models.Event
	emails   int
}

func newStubCoreAPI() *stubCoreAPI {
	return &stubCoreAPI{
		bookings: map[string]*models.BookingRequest{
			"b-100": {ID: "b-100", TrainerID: "t-9", TrainerName: "Anna Weber", ClientID: "c-100",
				RequestType: "PUBLIC", RequestedDate: "2025-06-10", Status: "APPROVED"},
			"b-101": {ID: "b-101", TrainerID: "t-9", TrainerName: "Anna Weber", ClientID: "c-101",
				RequestType: "INHOUSE", RequestedDate: "2025-06-09", EndDate: "2025-06-11", Status: "APPROVED"},
			"b-200": {ID: "b-200", TrainerID: "t-9", TrainerName: "Anna Weber", ClientID: "c-200",
				RequestType: "INHOUSE", RequestedDate: "2025-07-01", Status: "APPROVED"},
		},
		slots: map[string][]*models.AvailabilitySlot{
			"t-9": {
				{ID: "s-1", TrainerID: "t-9", Date: "2025-06-10", Status: "AVAILABLE"},
				{ID: "s-2", TrainerID: "t-9", Date: "2025-06-11", Status: "TENTATIVE"},
				{ID: "s-3", TrainerID: "t-9", Date: "2025-07-01", Status: "AVAILABLE"},
			},
		},
	}
}

// SentEmails reports how many notification mails the stub accepted.
func (s *stubCoreAPI) SentEmails() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emails
}

func (s *stubCoreAPI) overlaps(b *models.BookingRequest, date string) bool {
	if b.EndDate == "" {
		return b.RequestedDate == date
	}
	return b.RequestedDate <= date && date <= b.EndDate
}

// conflictsFor mirrors the upstream rule: other APPROVED bookings of the same
// trainer whose range touches the booking's requested date.
func (s *stubCoreAPI) conflictsFor(id string) []*models.BookingRequest {
	target := s.bookings[id]
	out := []*models.BookingRequest{}
	if target == nil {
		return out
	}
	for _, b := range s.bookings {
		if b.ID == id || b.TrainerID != target.TrainerID || b.Status != "APPROVED" {
			continue
		}
		if s.overlaps(b, target.RequestedDate) {
			out = append(out, b)
		}
	}
	return out
}

func (s *stubCoreAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := []*models.BookingRequest{}
		for _, b := range s.bookings {
			out = append(out, b)
		}
		json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("GET /api/v1/bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		b, ok := s.bookings[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "booking not found"})
			return
		}
		json.NewEncoder(w).Encode(b)
	})

	mux.HandleFunc("GET /api/v1/bookings/{id}/conflicts", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(s.conflictsFor(r.PathValue("id")))
	})

	mux.HandleFunc("POST /api/v1/bookings/{id}/confirm", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		var params struct {
			TotalSlots             int    `json:"totalSlots"`
			AvailabilityID         string `json:"availabilityId"`
			RegisteredParticipants int    `json:"registeredParticipants"`
			EventDate              string `json:"eventDate"`
		}
		json.NewDecoder(r.Body).Decode(&params)

		booking, ok := s.bookings[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "booking not found"})
			return
		}

		var slot *models.AvailabilitySlot
		for _, sl := range s.slots[booking.TrainerID] {
			if sl.ID == params.AvailabilityID {
				slot = sl
				break
			}
		}
		if slot == nil || slot.Status == "BOOKED" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "slot is not available"})
			return
		}

		booking.Status = "CONFIRMED"
		slot.Status = "BOOKED"

		startDate := params.EventDate
		if startDate == "" {
			startDate = slot.Date
		}
		event := &models.Event{
			ID:         "e-" + booking.ID,
			TrainerID:  booking.TrainerID,
			StartDate:  startDate,
			Status:     "ACTIVE",
			TotalSlots: params.TotalSlots,
		}
		s.events = append(s.events, event)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"booking":      booking,
			"createdEvent": event,
		})
	})

	mux.HandleFunc("POST /api/v1/bookings/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		booking, ok := s.bookings[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "booking not found"})
			return
		}
		booking.Status = "CANCELLED"
		json.NewEncoder(w).Encode(booking)
	})

	mux.HandleFunc("GET /api/v1/trainers/{id}/availability", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		slots := s.slots[r.PathValue("id")]
		if slots == nil {
			slots = []*models.AvailabilitySlot{}
		}
		json.NewEncoder(w).Encode(slots)
	})

	mux.HandleFunc("POST /api/v1/trainers/{id}/availability", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		trainerID := r.PathValue("id")
		var params struct {
			Dates  []string `json:"dates"`
			Status string   `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&params)

		created := []*models.AvailabilitySlot{}
		for _, date := range params.Dates {
			slot := &models.AvailabilitySlot{
				ID:        fmt.Sprintf("gen-%s-%d", trainerID, len(s.slots[trainerID])),
				TrainerID: trainerID,
				Date:      date,
				Status:    params.Status,
			}
			s.slots[trainerID] = append(s.slots[trainerID], slot)
			created = append(created, slot)
		}
		json.NewEncoder(w).Encode(created)
	})

	// Blocked weekdays are not part of this fake deployment; the gateway must
	// tolerate the 404.
	mux.HandleFunc("GET /api/v1/trainers/{id}/blocked-days", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("GET /api/v1/events", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		trainerID := r.URL.Query().Get("trainerId")
		out := []*models.Event{}
		for _, e := range s.events {
			if trainerID == "" || e.TrainerID == trainerID {
				out = append(out, e)
			}
		}
		json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("POST /api/v1/events/complete-expired", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"completedCount": 0})
	})

	mux.HandleFunc("GET /api/v1/events/{id}/registrations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.EventRegistration{})
	})

	mux.HandleFunc("POST /api/v1/notifications/email", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		var params struct {
			ClientIDs []string `json:"clientIds"`
		}
		json.NewDecoder(r.Body).Decode(&params)
		s.emails += len(params.ClientIDs)
		json.NewEncoder(w).Encode(map[string]int{"sentCount": len(params.ClientIDs)})
	})

	return mux
}

// SetupGateway wires the full HTTP stack (middleware, handlers, services,
// upstream client) against a fresh stub core API and returns a client bound
// to it.
func SetupGateway(t *testing.T) (*TestClient, *stubCoreAPI) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := newStubCoreAPI()
	upstream := httptest.NewServer(stub.handler())
	t.Cleanup(upstream.Close)

	core := external.NewCoreClient(external.CoreConfig{BaseURL: upstream.URL, Timeout: 10 * time.Second})
	services := service.NewServices(core, service.NewMemorySessionStore(time.Minute), nil, nil)
	h := handlers.NewHandlers(services, nil)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())

	api := router.Group("/api")
	api.Use(middleware.BearerAuth([]string{TestAdminToken}))
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", h.ListBookings)
			bookings.POST("/:id/confirmation", h.StartConfirmation)
			bookings.POST("/:id/notify", h.NotifyConflicts)
			bookings.POST("/:id/override", h.OverrideConflicts)
			bookings.POST("/:id/confirm", h.ConfirmBooking)
			bookings.POST("/:id/cancel", h.CancelBooking)
		}

		trainers := api.Group("/trainers")
		{
			trainers.GET("/:id/calendar", h.GetMonthView)
			trainers.POST("/:id/availability", h.CreateAvailability)
		}

		events := api.Group("/events")
		{
			events.GET("", h.ListEvents)
			events.POST("/complete-expired", h.CompleteExpiredEvents)
			events.GET("/:id/registrations", h.ListRegistrations)
		}
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gateway := httptest.NewServer(router)
	t.Cleanup(gateway.Close)

	return NewTestClient(gateway.URL, TestAdminToken), stub
}

// FindSlotByDate returns the slot offered on a date, if any.
func FindSlotByDate(slots []models.AvailabilitySlot, date string) *models.AvailabilitySlot {
	for _, slot := range slots {
		if slot.Date == date {
			return &slot
		}
	}
	return nil
}

// AssertDayStatus verifies one cell of a month view.
func AssertDayStatus(t *testing.T, view *models.MonthViewResponse, date string, expected models.DayStatus) {
	t.Helper()
	for _, day := range view.Days {
		if day.Date == date {
			if day.Status != expected {
				t.Fatalf("Day %s has status '%s', expected '%s'", date, day.Status, expected)
			}
			return
		}
	}
	t.Fatalf("Date %s not found in month view", date)
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
