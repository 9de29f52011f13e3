package service

import (
	"context"
	"fmt"
	"time"

	"trainmice/internal/cache"
	apperrors "trainmice/internal/errors"
	"trainmice/internal/external"
	"trainmice/internal/logger"
	"trainmice/internal/messaging"
	"trainmice/internal/models"
	"trainmice/internal/schedule"
)

type CalendarService struct {
	core         *external.CoreClient
	valkeyClient *cache.ValkeyClient
	natsClient   *messaging.NATSClient

	// Now is swappable so today-highlighting is testable.
	Now func() time.Time
}

func NewCalendarService(core *external.CoreClient, valkeyClient *cache.ValkeyClient, natsClient *messaging.NATSClient) *CalendarService {
	return &CalendarService{
		core:         core,
		valkeyClient: valkeyClient,
		natsClient:   natsClient,
		Now:          time.Now,
	}
}

// MonthView assembles one trainer's calendar month: bookings, events and
// availability from the core API reduced to one display status per date.
// The blocked-weekday fetch is feature-optional; its failure degrades to an
// unknown (empty) set instead of failing the month.
func (s *CalendarService) MonthView(ctx context.Context, trainerID string, year int, month time.Month) (*models.MonthViewResponse, error) {
	dates := schedule.MonthDates(year, month)
	from, to := dates[0], dates[len(dates)-1]

	allBookings, err := s.core.ListBookings(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	spans := make([]models.BookingRequest, 0, len(allBookings))
	for _, b := range allBookings {
		if b.TrainerID == trainerID {
			spans = append(spans, b)
		}
	}

	events, err := s.core.ListEvents(ctx, trainerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	spans = append(spans, schedule.EventSpans(events)...)

	slots, err := s.core.GetTrainerAvailability(ctx, trainerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	blocked, err := s.core.GetBlockedWeekdays(ctx, trainerID)
	if err != nil {
		logger.WithContext(ctx).Warn("Blocked weekdays unavailable, treating as empty",
			"error", err, "trainer_id", trainerID)
		blocked = models.BlockedWeekdays{Known: false}
	}

	now := s.Now()
	view := &models.MonthViewResponse{
		TrainerID:        trainerID,
		Year:             year,
		Month:            int(month),
		LeadingBlanks:    schedule.LeadingBlanks(year, month),
		BlockedDaysKnown: blocked.Known,
		Days:             make([]models.DayView, 0, len(dates)),
	}
	for _, date := range dates {
		view.Days = append(view.Days, models.DayView{
			Date:   date,
			Status: schedule.ResolveDayStatus(date, spans, slots, blocked),
			Today:  schedule.IsToday(date, now),
		})
	}
	return view, nil
}

// CreateAvailability bulk-upserts a trainer's availability over an inclusive
// date range. The range is expanded and validated before anything is sent;
// a reversed range never reaches the core API.
func (s *CalendarService) CreateAvailability(ctx context.Context, trainerID string, req *models.CreateAvailabilityRequest) (*models.CreateAvailabilityResponse, error) {
	status := models.NormalizeStatus(req.Status)
	if status != models.SlotStatusAvailable && status != models.SlotStatusNotAvailable {
		return nil, apperrors.Validation("status", "must be AVAILABLE or NOT_AVAILABLE")
	}

	dates, err := schedule.ExpandRange(req.StartDate, req.EndDate)
	if err != nil {
		if err == schedule.ErrInvalidRange {
			return nil, apperrors.Validation("endDate", "must not be before startDate")
		}
		return nil, apperrors.Validation("dateRange", err.Error())
	}

	if _, err := s.core.CreateTrainerAvailability(ctx, trainerID, external.CreateAvailabilityParams{
		Dates:  dates,
		Status: status,
	}); err != nil {
		return nil, err
	}

	if s.valkeyClient != nil {
		if err := s.valkeyClient.InvalidateTrainer(ctx, trainerID); err != nil {
			logger.WithContext(ctx).Error("Failed to invalidate trainer calendar cache",
				"error", err, "trainer_id", trainerID)
		}
	}

	if err := s.natsClient.Publish(models.EventAvailabilityCreated, models.AvailabilityCreatedEvent{
		TrainerID: trainerID,
		Dates:     dates,
		Status:    status,
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish availability created event",
			"error", err, "trainer_id", trainerID)
	}

	return &models.CreateAvailabilityResponse{Dates: dates, Status: status}, nil
}
