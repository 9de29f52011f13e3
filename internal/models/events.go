package models

import "time"

// NATS Event Types
const (
	EventBookingConfirmed    = "booking.confirmed"
	EventBookingCancelled    = "booking.cancelled"
	EventAvailabilityCreated = "availability.created"
	EventConflictNotified    = "conflict.notified"
	EventRegistrationUpdated = "registration.updated"
	EventCompletionSweepDone = "events.completion_sweep"
)

// BookingConfirmedEvent represents a confirmed booking with its materialized
// event, when the core API returned one.
type BookingConfirmedEvent struct {
	BookingID      string    `json:"booking_id"`
	TrainerID      string    `json:"trainer_id"`
	AvailabilityID string    `json:"availability_id"`
	EventID        string    `json:"event_id,omitempty"`
	TotalSlots     int       `json:"total_slots"`
	Overridden     bool      `json:"overridden"`
	Timestamp      time.Time `json:"timestamp"`
}

// BookingCancelledEvent represents a booking cancellation
type BookingCancelledEvent struct {
	BookingID string    `json:"booking_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// AvailabilityCreatedEvent represents a bulk availability upsert
type AvailabilityCreatedEvent struct {
	TrainerID string    `json:"trainer_id"`
	Dates     []string  `json:"dates"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ConflictNotifiedEvent represents a notification email sent to the clients
// of conflicting bookings.
type ConflictNotifiedEvent struct {
	BookingID string    `json:"booking_id"`
	ClientIDs []string  `json:"client_ids"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// RegistrationUpdatedEvent represents an approve/cancel on a registration
type RegistrationUpdatedEvent struct {
	RegistrationID string    `json:"registration_id"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// CompletionSweepEvent represents one run of the expired-event sweep
type CompletionSweepEvent struct {
	CompletedCount int       `json:"completed_count"`
	Timestamp      time.Time `json:"timestamp"`
}
