package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"trainmice/internal/models"
)

// SpecValidator - дымовая проверка работающего шлюза: каждый endpoint
// отвечает и формы ответов совпадают с моделями
type SpecValidator struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewSpecValidator создает новый валидатор
func NewSpecValidator(baseURL, token string) *SpecValidator {
	return &SpecValidator{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ValidateAll проверяет все endpoints шлюза
func (v *SpecValidator) ValidateAll(trainerID string) error {
	log.Println("Начинаю валидацию API шлюза...")

	if err := v.validateHealth(); err != nil {
		return fmt.Errorf("Health validation failed: %w", err)
	}

	if err := v.validateBookings(); err != nil {
		return fmt.Errorf("Bookings validation failed: %w", err)
	}

	if err := v.validateCalendar(trainerID); err != nil {
		return fmt.Errorf("Calendar validation failed: %w", err)
	}

	if err := v.validateEvents(); err != nil {
		return fmt.Errorf("Events validation failed: %w", err)
	}

	log.Println("✅ Все endpoints прошли валидацию успешно!")
	return nil
}

func (v *SpecValidator) validateHealth() error {
	log.Println("Проверяю Health endpoint...")

	resp, err := v.makeRequest("GET", "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /health: expected 200, got %d", resp.StatusCode)
	}

	log.Println("✅ Health endpoint валиден")
	return nil
}

func (v *SpecValidator) validateBookings() error {
	log.Println("Проверяю Bookings endpoints...")

	// GET /api/bookings
	resp, err := v.makeRequest("GET", "/api/bookings", nil)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("GET /api/bookings: expected 200, got %d", resp.StatusCode)
	}

	var bookings []models.BookingRequest
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		resp.Body.Close()
		return fmt.Errorf("GET /api/bookings: failed to decode response: %w", err)
	}
	resp.Body.Close()

	// GET /api/bookings?groupBy=trainer
	resp, err = v.makeRequest("GET", "/api/bookings?groupBy=trainer", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/bookings?groupBy=trainer: expected 200, got %d", resp.StatusCode)
	}

	var groups []models.TrainerBookingGroup
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return fmt.Errorf("GET /api/bookings?groupBy=trainer: failed to decode response: %w", err)
	}

	log.Println("✅ Bookings endpoints валидны")
	return nil
}

func (v *SpecValidator) validateCalendar(trainerID string) error {
	log.Println("Проверяю Calendar endpoints...")

	now := time.Now()
	path := fmt.Sprintf("/api/trainers/%s/calendar?year=%d&month=%d", trainerID, now.Year(), int(now.Month()))

	resp, err := v.makeRequest("GET", path, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("GET %s: expected 200, got %d", path, resp.StatusCode)
	}

	var view models.MonthViewResponse
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		resp.Body.Close()
		return fmt.Errorf("GET %s: failed to decode response: %w", path, err)
	}
	resp.Body.Close()

	if len(view.Days) < 28 || len(view.Days) > 31 {
		return fmt.Errorf("GET %s: expected 28-31 days, got %d", path, len(view.Days))
	}

	// Диапазон без года и месяца обязан вернуть 400
	resp, err = v.makeRequest("GET", fmt.Sprintf("/api/trainers/%s/calendar", trainerID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("GET calendar without year/month: expected 400, got %d", resp.StatusCode)
	}

	log.Println("✅ Calendar endpoints валидны")
	return nil
}

func (v *SpecValidator) validateEvents() error {
	log.Println("Проверяю Events endpoints...")

	resp, err := v.makeRequest("GET", "/api/events", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /api/events: expected 200, got %d", resp.StatusCode)
	}

	var events []models.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return fmt.Errorf("GET /api/events: failed to decode response: %w", err)
	}

	log.Println("✅ Events endpoints валидны")
	return nil
}

func (v *SpecValidator) makeRequest(method, path string, body interface{}) (*http.Response, error) {
	var req *http.Request
	var err error

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		req, err = http.NewRequest(method, v.baseURL+path, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequest(method, v.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
	}

	if v.token != "" {
		req.Header.Set("Authorization", "Bearer "+v.token)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

// RunValidation запускает валидацию API
func RunValidation() {
	baseURL := os.Getenv("GATEWAY_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8082"
	}
	trainerID := os.Getenv("VALIDATION_TRAINER_ID")
	if trainerID == "" {
		trainerID = "trainer-1"
	}

	validator := NewSpecValidator(baseURL, os.Getenv("GATEWAY_TOKEN"))
	if err := validator.ValidateAll(trainerID); err != nil {
		log.Fatalf("❌ Валидация не пройдена: %v", err)
	}
}
