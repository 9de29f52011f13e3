package models

import "time"

// ConfirmationSession is the workflow state between the conflict check and
// the final confirm call. It is stored in Valkey with a TTL; losing it only
// forces the admin to restart the flow.
type ConfirmationSession struct {
	ID                   string             `json:"id"`
	BookingID            string             `json:"bookingId"`
	TrainerID            string             `json:"trainerId"`
	RequestType          string             `json:"requestType"`
	Conflicts            []BookingRequest   `json:"conflicts"`
	SelectableSlots      []AvailabilitySlot `json:"selectableSlots"`
	OverrideAcknowledged bool               `json:"overrideAcknowledged"`
	CreatedAt            time.Time          `json:"createdAt"`
}

// ConfirmationBlocked reports whether the confirm call is still gated behind
// an explicit conflict override.
func (s *ConfirmationSession) ConfirmationBlocked() bool {
	return len(s.Conflicts) > 0 && !s.OverrideAcknowledged
}

// SlotByID returns the selectable slot with the given id, or nil.
func (s *ConfirmationSession) SlotByID(id string) *AvailabilitySlot {
	for i := range s.SelectableSlots {
		if s.SelectableSlots[i].ID == id {
			return &s.SelectableSlots[i]
		}
	}
	return nil
}
