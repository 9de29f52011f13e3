package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/stan.go"

	"trainmice/internal/external"
	"trainmice/internal/models"
)

type Handlers struct {
	coreClient *external.CoreClient
}

func NewHandlers(coreClient *external.CoreClient) *Handlers {
	return &Handlers{
		coreClient: coreClient,
	}
}

func (h *Handlers) HandleBookingConfirmed(m *stan.Msg) {
	var event models.BookingConfirmedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking confirmed event", "error", err)
		return
	}

	slog.Info("Processing booking confirmed event",
		"booking_id", event.BookingID,
		"trainer_id", event.TrainerID,
		"event_id", event.EventID,
		"overridden", event.Overridden)

	// Overridden confirmations get extra attention in the audit trail: the
	// admin knowingly double-booked a trainer.
	if event.Overridden {
		slog.Warn("Booking confirmed over existing conflicts",
			"booking_id", event.BookingID, "trainer_id", event.TrainerID)
	}

	// Log the initial registration fill of the materialized event.
	if event.EventID != "" {
		registrations, err := h.coreClient.ListRegistrations(context.Background(), event.EventID)
		if err != nil {
			slog.Error("Failed to load registrations for new event",
				"event_id", event.EventID, "error", err)
		} else {
			slog.Info("Event materialized",
				"event_id", event.EventID,
				"registrations", len(registrations),
				"total_slots", event.TotalSlots)
		}
	}

	m.Ack()
}

func (h *Handlers) HandleBookingCancelled(m *stan.Msg) {
	var event models.BookingCancelledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal booking cancelled event", "error", err)
		return
	}

	slog.Info("Processing booking cancelled event",
		"booking_id", event.BookingID, "reason", event.Reason)

	m.Ack()
}

func (h *Handlers) HandleAvailabilityCreated(m *stan.Msg) {
	var event models.AvailabilityCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal availability created event", "error", err)
		return
	}

	slog.Info("Processing availability created event",
		"trainer_id", event.TrainerID,
		"dates", len(event.Dates),
		"status", event.Status)

	m.Ack()
}

func (h *Handlers) HandleConflictNotified(m *stan.Msg) {
	var event models.ConflictNotifiedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal conflict notified event", "error", err)
		return
	}

	slog.Info("Processing conflict notified event",
		"booking_id", event.BookingID,
		"recipients", len(event.ClientIDs),
		"title", event.Title)

	m.Ack()
}

func (h *Handlers) HandleRegistrationUpdated(m *stan.Msg) {
	var event models.RegistrationUpdatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal registration updated event", "error", err)
		return
	}

	slog.Info("Processing registration updated event",
		"registration_id", event.RegistrationID, "status", event.Status)

	m.Ack()
}
