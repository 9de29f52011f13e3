package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trainmice/internal/cache"
	apperrors "trainmice/internal/errors"
	"trainmice/internal/external"
	"trainmice/internal/logger"
	"trainmice/internal/messaging"
	"trainmice/internal/models"
	"trainmice/internal/schedule"
)

type BookingService struct {
	core         *external.CoreClient
	sessions     SessionStore
	valkeyClient *cache.ValkeyClient
	natsClient   *messaging.NATSClient
}

func NewBookingService(core *external.CoreClient, sessions SessionStore, valkeyClient *cache.ValkeyClient, natsClient *messaging.NATSClient) *BookingService {
	return &BookingService{
		core:         core,
		sessions:     sessions,
		valkeyClient: valkeyClient,
		natsClient:   natsClient,
	}
}

func (s *BookingService) List(ctx context.Context, status, requestType string) ([]models.BookingRequest, error) {
	bookings, err := s.core.ListBookings(ctx, status, requestType)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// StartConfirmation runs the conflict check for a booking and opens a
// workflow session. Without conflicts the selectable slots are fetched right
// away; with conflicts they are withheld until the admin explicitly
// overrides, so the confirm call cannot happen before the conflict list was
// seen.
func (s *BookingService) StartConfirmation(ctx context.Context, bookingID string) (*models.StartConfirmationResponse, error) {
	booking, err := s.core.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	conflicts, err := s.core.GetConflictingBookings(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}

	session := &models.ConfirmationSession{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		TrainerID:   booking.TrainerID,
		RequestType: booking.RequestType,
		Conflicts:   conflicts,
		CreatedAt:   time.Now(),
	}

	if len(conflicts) == 0 {
		slots, err := s.selectableSlots(ctx, booking.TrainerID)
		if err != nil {
			return nil, err
		}
		session.SelectableSlots = slots
	}

	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store confirmation session: %w", err)
	}

	return &models.StartConfirmationResponse{
		SessionID:        session.ID,
		Booking:          *booking,
		Conflicts:        conflicts,
		SelectableSlots:  session.SelectableSlots,
		OverrideRequired: len(conflicts) > 0,
	}, nil
}

// NotifyConflicts mails the clients behind the conflicting bookings. At
// least one conflict must carry a resolvable client id, otherwise this is an
// explicit error and no mail goes out.
func (s *BookingService) NotifyConflicts(ctx context.Context, bookingID string, req *models.NotifyConflictsRequest) (*models.NotifyConflictsResponse, error) {
	session, err := s.loadSession(ctx, bookingID, req.SessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Conflicts) == 0 {
		return nil, apperrors.Validation("conflicts", "booking has no conflicts to notify about")
	}

	clientIDs := distinctClientIDs(session.Conflicts)
	if len(clientIDs) == 0 {
		return nil, apperrors.ErrNoRecipients
	}

	sent, err := s.core.SendClientEmail(ctx, clientIDs, req.Title, req.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to notify conflicting clients: %w", err)
	}

	if err := s.natsClient.Publish(models.EventConflictNotified, models.ConflictNotifiedEvent{
		BookingID: bookingID,
		ClientIDs: clientIDs,
		Title:     req.Title,
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish conflict notified event",
			"error", err, "booking_id", bookingID)
	}

	return &models.NotifyConflictsResponse{SentCount: sent}, nil
}

// OverrideConflicts acknowledges the conflict list and unlocks the
// confirmation form, fetching the selectable slots that were withheld.
func (s *BookingService) OverrideConflicts(ctx context.Context, bookingID, sessionID string) (*models.OverrideConflictsResponse, error) {
	session, err := s.loadSession(ctx, bookingID, sessionID)
	if err != nil {
		return nil, err
	}

	session.OverrideAcknowledged = true
	if len(session.SelectableSlots) == 0 {
		slots, err := s.selectableSlots(ctx, session.TrainerID)
		if err != nil {
			return nil, err
		}
		session.SelectableSlots = slots
	}

	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update confirmation session: %w", err)
	}

	return &models.OverrideConflictsResponse{
		SessionID:       session.ID,
		SelectableSlots: session.SelectableSlots,
	}, nil
}

// Confirm validates the admin's input against the session and issues the one
// confirm call that claims the slot and materializes the event. Each gate is
// checked before any core API call; a failed confirm keeps the session so
// the admin can retry with different values.
func (s *BookingService) Confirm(ctx context.Context, bookingID string, req *models.ConfirmBookingRequest) (*models.ConfirmBookingResponse, error) {
	if req.TotalSlots < 1 {
		return nil, apperrors.Validation("totalSlots", "must be at least 1")
	}
	if req.RegisteredParticipants < 1 {
		return nil, apperrors.Validation("registeredParticipants", "must be at least 1")
	}
	if req.RegisteredParticipants > req.TotalSlots {
		return nil, apperrors.Validation("registeredParticipants", "must not exceed totalSlots")
	}
	if req.AvailabilityID == "" {
		return nil, apperrors.Validation("availabilityId", "an availability slot must be selected")
	}

	session, err := s.loadSession(ctx, bookingID, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.ConfirmationBlocked() {
		return nil, apperrors.ErrOverrideRequired
	}

	slot := session.SlotByID(req.AvailabilityID)
	if slot == nil {
		return nil, apperrors.Validation("availabilityId", "slot is not selectable for this booking")
	}

	params := external.ConfirmBookingParams{
		TotalSlots:             req.TotalSlots,
		AvailabilityID:         req.AvailabilityID,
		RegisteredParticipants: req.RegisteredParticipants,
	}
	// eventDate is derived from the chosen slot for PUBLIC bookings and
	// omitted for INHOUSE; it is never taken from user input.
	if session.RequestType == models.RequestTypePublic {
		params.EventDate = schedule.CanonicalDate(slot.Date)
	}

	booking, createdEvent, err := s.core.ConfirmBooking(ctx, bookingID, params)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteSession(ctx, bookingID, session.ID); err != nil {
		logger.WithContext(ctx).Error("Failed to delete confirmation session",
			"error", err, "booking_id", bookingID)
	}
	if s.valkeyClient != nil {
		if err := s.valkeyClient.InvalidateTrainer(ctx, session.TrainerID); err != nil {
			logger.WithContext(ctx).Error("Failed to invalidate trainer calendar cache",
				"error", err, "trainer_id", session.TrainerID)
		}
	}

	eventData := models.BookingConfirmedEvent{
		BookingID:      bookingID,
		TrainerID:      session.TrainerID,
		AvailabilityID: req.AvailabilityID,
		TotalSlots:     req.TotalSlots,
		Overridden:     len(session.Conflicts) > 0,
		Timestamp:      time.Now(),
	}
	if createdEvent != nil {
		eventData.EventID = createdEvent.ID
	}
	if err := s.natsClient.Publish(models.EventBookingConfirmed, eventData); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking confirmed event",
			"error", err, "booking_id", bookingID)
	}

	return &models.ConfirmBookingResponse{
		Booking:      *booking,
		CreatedEvent: createdEvent,
	}, nil
}

func (s *BookingService) Cancel(ctx context.Context, bookingID string) (*models.BookingRequest, error) {
	booking, err := s.core.CancelBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.natsClient.Publish(models.EventBookingCancelled, models.BookingCancelledEvent{
		BookingID: bookingID,
		Reason:    "Admin cancellation",
		Timestamp: time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking cancelled event",
			"error", err, "booking_id", bookingID)
	}

	return booking, nil
}

func (s *BookingService) selectableSlots(ctx context.Context, trainerID string) ([]models.AvailabilitySlot, error) {
	slots, err := s.core.GetTrainerAvailability(ctx, trainerID, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load trainer availability: %w", err)
	}
	return schedule.SelectableByAdmin(slots), nil
}

func (s *BookingService) loadSession(ctx context.Context, bookingID, sessionID string) (*models.ConfirmationSession, error) {
	session, err := s.sessions.GetSession(ctx, bookingID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmation session: %w", err)
	}
	if session == nil {
		return nil, apperrors.ErrSessionExpired
	}
	return session, nil
}

func distinctClientIDs(bookings []models.BookingRequest) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, b := range bookings {
		if b.ClientID == "" || seen[b.ClientID] {
			continue
		}
		seen[b.ClientID] = true
		ids = append(ids, b.ClientID)
	}
	return ids
}
