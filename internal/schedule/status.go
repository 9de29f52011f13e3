package schedule

import (
	"trainmice/internal/models"
)

// Overlaps reports whether a booking covers the candidate date. With an end
// date the span [requestedDate, endDate] is inclusive; without one only the
// exact requested date matches. Comparison is over canonical date strings.
func Overlaps(b models.BookingRequest, date string) bool {
	d := CanonicalDate(date)
	start := CanonicalDate(b.RequestedDate)
	if b.EndDate == "" {
		return start == d
	}
	end := CanonicalDate(b.EndDate)
	return start <= d && d <= end
}

// BookingsForDate filters the bookings overlapping one calendar date.
func BookingsForDate(bookings []models.BookingRequest, date string) []models.BookingRequest {
	var out []models.BookingRequest
	for _, b := range bookings {
		if Overlaps(b, date) {
			out = append(out, b)
		}
	}
	return out
}

// SlotForDate returns the first slot matching the date. At most one record
// per trainer+date is authoritative for display; first match wins.
func SlotForDate(slots []models.AvailabilitySlot, date string) *models.AvailabilitySlot {
	d := CanonicalDate(date)
	for i := range slots {
		if CanonicalDate(slots[i].Date) == d {
			return &slots[i]
		}
	}
	return nil
}

// ResolveDayStatus reduces the records touching one calendar date to a single
// display status. Precedence, first match wins:
//
//  1. blocked weekday, unconditionally
//  2. any overlapping booking with status booked/confirmed
//  3. any overlapping booking with status approved/tentative
//  4. the matched slot's own status
//  5. not_available when no slot exists
func ResolveDayStatus(date string, bookings []models.BookingRequest, slots []models.AvailabilitySlot, blocked models.BlockedWeekdays) models.DayStatus {
	if blocked.Contains(Weekday(date)) {
		return models.DayBlocked
	}

	overlapping := BookingsForDate(bookings, date)
	for _, b := range overlapping {
		switch models.NormalizeStatus(b.Status) {
		case models.SlotStatusBooked, models.BookingStatusConfirmed:
			return models.DayBooked
		}
	}
	for _, b := range overlapping {
		switch models.NormalizeStatus(b.Status) {
		case models.BookingStatusApproved, models.SlotStatusTentative:
			return models.DayTentative
		}
	}

	slot := SlotForDate(slots, date)
	if slot == nil {
		return models.DayNotAvailable
	}
	switch models.NormalizeStatus(slot.Status) {
	case models.SlotStatusAvailable:
		return models.DayAvailable
	case models.SlotStatusBooked:
		return models.DayBooked
	case models.SlotStatusTentative:
		return models.DayTentative
	default:
		return models.DayNotAvailable
	}
}

// EventSpans projects events into booking-shaped spans so the resolver treats
// a materialized event like a confirmed booking on its dates.
func EventSpans(events []models.Event) []models.BookingRequest {
	spans := make([]models.BookingRequest, 0, len(events))
	for _, e := range events {
		if models.NormalizeStatus(e.Status) == models.EventStatusCancelled {
			continue
		}
		spans = append(spans, models.BookingRequest{
			ID:            e.ID,
			TrainerID:     e.TrainerID,
			RequestedDate: e.StartDate,
			EndDate:       e.EndDate,
			Status:        models.BookingStatusConfirmed,
		})
	}
	return spans
}

// SelectableByAdmin filters the slots an admin may claim when confirming a
// booking. Admins accept TENTATIVE in addition to AVAILABLE; the trainer
// self-service flow does not (see SelectableByTrainer).
func SelectableByAdmin(slots []models.AvailabilitySlot) []models.AvailabilitySlot {
	var out []models.AvailabilitySlot
	for _, s := range slots {
		switch models.NormalizeStatus(s.Status) {
		case models.SlotStatusAvailable, models.SlotStatusTentative:
			out = append(out, s)
		}
	}
	return out
}

// SelectableByTrainer keeps AVAILABLE slots only.
func SelectableByTrainer(slots []models.AvailabilitySlot) []models.AvailabilitySlot {
	var out []models.AvailabilitySlot
	for _, s := range slots {
		if models.NormalizeStatus(s.Status) == models.SlotStatusAvailable {
			out = append(out, s)
		}
	}
	return out
}
