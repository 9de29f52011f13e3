package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"trainmice/internal/external"
	"trainmice/internal/models"
	"trainmice/internal/service"
)

// newStubUpstream fakes the core API with a fixed scenario: booking b-1 has a
// conflict with b-2, trainer t-1 offers one AVAILABLE slot.
func newStubUpstream(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.BookingRequest{
			{ID: "b-1", TrainerID: "t-1", TrainerName: "Anna", ClientID: "c-1", RequestedDate: "2025-03-10", Status: "APPROVED", RequestType: "PUBLIC"},
			{ID: "b-2", TrainerID: "t-1", TrainerName: "Anna", ClientID: "c-2", RequestedDate: "2025-03-10", Status: "APPROVED", RequestType: "PUBLIC"},
		})
	})
	mux.HandleFunc("GET /api/v1/bookings/b-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.BookingRequest{
			ID: "b-1", TrainerID: "t-1", ClientID: "c-1", RequestedDate: "2025-03-10", Status: "APPROVED", RequestType: "PUBLIC",
		})
	})
	mux.HandleFunc("GET /api/v1/bookings/b-1/conflicts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.BookingRequest{
			{ID: "b-2", TrainerID: "t-1", ClientID: "c-2", RequestedDate: "2025-03-10", Status: "APPROVED"},
		})
	})
	mux.HandleFunc("GET /api/v1/trainers/t-1/availability", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.AvailabilitySlot{
			{ID: "a-1", TrainerID: "t-1", Date: "2025-03-10", Status: "AVAILABLE"},
		})
	})
	mux.HandleFunc("GET /api/v1/trainers/t-1/blocked-days", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]int{"days": {}})
	})
	mux.HandleFunc("GET /api/v1/events", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Event{})
	})
	mux.HandleFunc("POST /api/v1/bookings/b-1/confirm", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"booking": map[string]interface{}{"id": "b-1", "trainerId": "t-1", "status": "CONFIRMED"},
		})
	})
	mux.HandleFunc("POST /api/v1/trainers/t-1/availability", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.AvailabilitySlot{})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	upstream := newStubUpstream(t)
	core := external.NewCoreClient(external.CoreConfig{BaseURL: upstream.URL})
	services := service.NewServices(core, service.NewMemorySessionStore(time.Minute), nil, nil)
	h := NewHandlers(services, nil)

	r := gin.New()
	api := r.Group("/api")
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
	}
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListBookingsGrouped(t *testing.T) {
	r := setupRouter(t)

	req, _ := http.NewRequest("GET", "/api/bookings?groupBy=trainer", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var groups []models.TrainerBookingGroup
	err := json.Unmarshal(w.Body.Bytes(), &groups)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "t-1", groups[0].TrainerID)
	assert.Len(t, groups[0].Dates, 1)
	assert.Len(t, groups[0].Dates[0].Bookings, 2)
}

func TestConfirmationFlowOverHTTP(t *testing.T) {
	r := setupRouter(t)

	// Запуск подтверждения - конфликт найден, слоты скрыты
	w := postJSON(r, "/api/bookings/b-1/confirmation", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var start models.StartConfirmationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))
	assert.True(t, start.OverrideRequired)
	assert.Empty(t, start.SelectableSlots)

	// Подтверждение без переопределения конфликтов - 409
	confirmReq := models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             10,
		RegisteredParticipants: 2,
		AvailabilityID:         "a-1",
	}
	w = postJSON(r, "/api/bookings/b-1/confirm", confirmReq)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Переопределение открывает слоты
	w = postJSON(r, "/api/bookings/b-1/override", models.OverrideConflictsRequest{SessionID: start.SessionID})
	assert.Equal(t, http.StatusOK, w.Code)

	var override models.OverrideConflictsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &override))
	assert.Len(t, override.SelectableSlots, 1)

	// Теперь подтверждение проходит
	w = postJSON(r, "/api/bookings/b-1/confirm", confirmReq)
	assert.Equal(t, http.StatusOK, w.Code)

	var confirmed models.ConfirmBookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirmed))
	assert.Equal(t, "CONFIRMED", confirmed.Booking.Status)
}

func TestConfirmUnknownSessionReturns404(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(r, "/api/bookings/b-1/confirm", models.ConfirmBookingRequest{
		SessionID:              "missing",
		TotalSlots:             10,
		RegisteredParticipants: 2,
		AvailabilityID:         "a-1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmValidationReturns400(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(r, "/api/bookings/b-1/confirmation", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	var start models.StartConfirmationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))

	// registeredParticipants > totalSlots
	w = postJSON(r, "/api/bookings/b-1/confirm", models.ConfirmBookingRequest{
		SessionID:              start.SessionID,
		TotalSlots:             2,
		RegisteredParticipants: 5,
		AvailabilityID:         "a-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMonthViewValidation(t *testing.T) {
	r := setupRouter(t)

	// Без года и месяца
	req, _ := http.NewRequest("GET", "/api/trainers/t-1/calendar", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req, _ = http.NewRequest("GET", "/api/trainers/t-1/calendar?year=2025&month=13", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMonthView(t *testing.T) {
	r := setupRouter(t)

	req, _ := http.NewRequest("GET", "/api/trainers/t-1/calendar?year=2025&month=3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var view models.MonthViewResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.Days, 31)
	assert.True(t, view.BlockedDaysKnown)
}

func TestCreateAvailabilityValidation(t *testing.T) {
	r := setupRouter(t)

	// Перевернутый диапазон
	w := postJSON(r, "/api/trainers/t-1/availability", models.CreateAvailabilityRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-05",
		Status:    "AVAILABLE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Недопустимый статус
	w = postJSON(r, "/api/trainers/t-1/availability", models.CreateAvailabilityRequest{
		StartDate: "2025-03-05",
		EndDate:   "2025-03-10",
		Status:    "BOOKED",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAvailability(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(r, "/api/trainers/t-1/availability", models.CreateAvailabilityRequest{
		StartDate: "2025-03-05",
		EndDate:   "2025-03-07",
		Status:    "NOT_AVAILABLE",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.CreateAvailabilityResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2025-03-05", "2025-03-06", "2025-03-07"}, resp.Dates)
}
