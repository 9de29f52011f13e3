package models

import "strings"

// Booking request statuses as delivered by the core API.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusApproved  = "APPROVED"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusDenied    = "DENIED"
)

// Booking request types.
const (
	RequestTypePublic  = "PUBLIC"
	RequestTypeInhouse = "INHOUSE"
)

// Availability slot statuses. The core API is case-insensitive here,
// normalize with NormalizeStatus before comparing.
const (
	SlotStatusAvailable    = "AVAILABLE"
	SlotStatusNotAvailable = "NOT_AVAILABLE"
	SlotStatusTentative    = "TENTATIVE"
	SlotStatusBooked       = "BOOKED"
)

// Event statuses.
const (
	EventStatusActive    = "ACTIVE"
	EventStatusCompleted = "COMPLETED"
	EventStatusCancelled = "CANCELLED"
)

// Event registration statuses.
const (
	RegistrationStatusRegistered = "REGISTERED"
	RegistrationStatusApproved   = "APPROVED"
	RegistrationStatusCancelled  = "CANCELLED"
)

// DayStatus - статус дня в календаре тренера
type DayStatus string

const (
	DayBlocked      DayStatus = "blocked"
	DayBooked       DayStatus = "booked"
	DayTentative    DayStatus = "tentative"
	DayAvailable    DayStatus = "available"
	DayNotAvailable DayStatus = "not_available"
)

// NormalizeStatus upper-cases a status string for comparison against the
// constants above.
func NormalizeStatus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// BookingRequest represents a client's request for a course with a trainer.
// Dates are canonical YYYY-MM-DD strings; EndDate is empty for single-day
// requests.
type BookingRequest struct {
	ID            string `json:"id"`
	CourseID      string `json:"courseId"`
	TrainerID     string `json:"trainerId"`
	ClientID      string `json:"clientId"`
	RequestType   string `json:"requestType"`
	RequestedDate string `json:"requestedDate"`
	EndDate       string `json:"endDate,omitempty"`
	Status        string `json:"status"`
	ClientName    string `json:"clientName,omitempty"`
	TrainerName   string `json:"trainerName,omitempty"`
	CourseName    string `json:"courseName,omitempty"`
}

// AvailabilitySlot is a trainer's per-date offer record. The ID is the unit
// claimed when a booking is confirmed, never the bare date string.
type AvailabilitySlot struct {
	ID        string `json:"id"`
	TrainerID string `json:"trainerId,omitempty"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// Event is a materialized, dated instance of a course + trainer pairing.
type Event struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId,omitempty"`
	TrainerID   string `json:"trainerId,omitempty"`
	Title       string `json:"title,omitempty"`
	CourseName  string `json:"courseName,omitempty"`
	TrainerName string `json:"trainerName,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Status      string `json:"status"`
	TotalSlots  int    `json:"totalSlots"`
}

// EventRegistration is a client's registration against a materialized event.
// PackNumber is assigned by the core API on approval.
type EventRegistration struct {
	ID                   string `json:"id"`
	EventID              string `json:"eventId"`
	ClientID             string `json:"clientId"`
	ClientName           string `json:"clientName,omitempty"`
	NumberOfParticipants int    `json:"numberOfParticipants"`
	Status               string `json:"status"`
	PackNumber           *int   `json:"packNumber,omitempty"`
}

// BlockedWeekdays carries a trainer's recurring day-of-week blocks (0=Sunday).
// Known is false when the core API does not expose the feature; callers must
// then treat the set as empty instead of failing the calendar.
type BlockedWeekdays struct {
	Days  []int `json:"days"`
	Known bool  `json:"known"`
}

// Contains reports whether the weekday is blocked. Unknown sets block nothing.
func (b BlockedWeekdays) Contains(weekday int) bool {
	for _, d := range b.Days {
		if d == weekday {
			return true
		}
	}
	return false
}
