package external

import (
	"trainmice/internal/models"
	"trainmice/internal/schedule"
)

// The core API is inconsistent about casing: older endpoints answer in
// snake_case, newer ones in camelCase. Every response is normalized into the
// canonical models here, once, so nothing past this package ever sees the
// wire shape.

type wireBooking struct {
	ID                 string `json:"id"`
	CourseID           string `json:"courseId"`
	CourseIDSnake      string `json:"course_id"`
	TrainerID          string `json:"trainerId"`
	TrainerIDSnake     string `json:"trainer_id"`
	ClientID           string `json:"clientId"`
	ClientIDSnake      string `json:"client_id"`
	RequestType        string `json:"requestType"`
	RequestTypeSnake   string `json:"request_type"`
	RequestedDate      string `json:"requestedDate"`
	RequestedDateSnake string `json:"requested_date"`
	EndDate            string `json:"endDate"`
	EndDateSnake       string `json:"end_date"`
	Status             string `json:"status"`
	ClientName         string `json:"clientName"`
	ClientNameSnake    string `json:"client_name"`
	TrainerName        string `json:"trainerName"`
	TrainerNameSnake   string `json:"trainer_name"`
	CourseName         string `json:"courseName"`
	CourseNameSnake    string `json:"course_name"`
}

func pick(camel, snake string) string {
	if camel != "" {
		return camel
	}
	return snake
}

func (w wireBooking) toModel() models.BookingRequest {
	b := models.BookingRequest{
		ID:            w.ID,
		CourseID:      pick(w.CourseID, w.CourseIDSnake),
		TrainerID:     pick(w.TrainerID, w.TrainerIDSnake),
		ClientID:      pick(w.ClientID, w.ClientIDSnake),
		RequestType:   models.NormalizeStatus(pick(w.RequestType, w.RequestTypeSnake)),
		RequestedDate: schedule.CanonicalDate(pick(w.RequestedDate, w.RequestedDateSnake)),
		Status:        w.Status,
		ClientName:    pick(w.ClientName, w.ClientNameSnake),
		TrainerName:   pick(w.TrainerName, w.TrainerNameSnake),
		CourseName:    pick(w.CourseName, w.CourseNameSnake),
	}
	if end := pick(w.EndDate, w.EndDateSnake); end != "" {
		b.EndDate = schedule.CanonicalDate(end)
	}
	return b
}

func bookingsToModel(ws []wireBooking) []models.BookingRequest {
	out := make([]models.BookingRequest, len(ws))
	for i, w := range ws {
		out[i] = w.toModel()
	}
	return out
}

type wireSlot struct {
	ID             string `json:"id"`
	TrainerID      string `json:"trainerId"`
	TrainerIDSnake string `json:"trainer_id"`
	Date           string `json:"date"`
	Status         string `json:"status"`
}

func (w wireSlot) toModel() models.AvailabilitySlot {
	return models.AvailabilitySlot{
		ID:        w.ID,
		TrainerID: pick(w.TrainerID, w.TrainerIDSnake),
		Date:      schedule.CanonicalDate(w.Date),
		Status:    models.NormalizeStatus(w.Status),
	}
}

func slotsToModel(ws []wireSlot) []models.AvailabilitySlot {
	out := make([]models.AvailabilitySlot, len(ws))
	for i, w := range ws {
		out[i] = w.toModel()
	}
	return out
}

type wireEvent struct {
	ID               string `json:"id"`
	CourseID         string `json:"courseId"`
	CourseIDSnake    string `json:"course_id"`
	TrainerID        string `json:"trainerId"`
	TrainerIDSnake   string `json:"trainer_id"`
	Title            string `json:"title"`
	CourseName       string `json:"courseName"`
	CourseNameSnake  string `json:"course_name"`
	TrainerName      string `json:"trainerName"`
	TrainerNameSnake string `json:"trainer_name"`
	StartDate        string `json:"startDate"`
	StartDateSnake   string `json:"start_date"`
	EndDate          string `json:"endDate"`
	EndDateSnake     string `json:"end_date"`
	Status           string `json:"status"`
	TotalSlots       int    `json:"totalSlots"`
	TotalSlotsSnake  int    `json:"total_slots"`
}

func (w wireEvent) toModel() models.Event {
	totalSlots := w.TotalSlots
	if totalSlots == 0 {
		totalSlots = w.TotalSlotsSnake
	}
	e := models.Event{
		ID:          w.ID,
		CourseID:    pick(w.CourseID, w.CourseIDSnake),
		TrainerID:   pick(w.TrainerID, w.TrainerIDSnake),
		Title:       w.Title,
		CourseName:  pick(w.CourseName, w.CourseNameSnake),
		TrainerName: pick(w.TrainerName, w.TrainerNameSnake),
		StartDate:   schedule.CanonicalDate(pick(w.StartDate, w.StartDateSnake)),
		Status:      models.NormalizeStatus(w.Status),
		TotalSlots:  totalSlots,
	}
	if end := pick(w.EndDate, w.EndDateSnake); end != "" {
		e.EndDate = schedule.CanonicalDate(end)
	}
	return e
}

func eventsToModel(ws []wireEvent) []models.Event {
	out := make([]models.Event, len(ws))
	for i, w := range ws {
		out[i] = w.toModel()
	}
	return out
}

type wireRegistration struct {
	ID                        string `json:"id"`
	EventID                   string `json:"eventId"`
	EventIDSnake              string `json:"event_id"`
	ClientID                  string `json:"clientId"`
	ClientIDSnake             string `json:"client_id"`
	ClientName                string `json:"clientName"`
	ClientNameSnake           string `json:"client_name"`
	NumberOfParticipants      int    `json:"numberOfParticipants"`
	NumberOfParticipantsSnake int    `json:"number_of_participants"`
	Status                    string `json:"status"`
	PackNumber                *int   `json:"packNumber"`
	PackNumberSnake           *int   `json:"pack_number"`
}

func (w wireRegistration) toModel() models.EventRegistration {
	participants := w.NumberOfParticipants
	if participants == 0 {
		participants = w.NumberOfParticipantsSnake
	}
	pack := w.PackNumber
	if pack == nil {
		pack = w.PackNumberSnake
	}
	return models.EventRegistration{
		ID:                   w.ID,
		EventID:              pick(w.EventID, w.EventIDSnake),
		ClientID:             pick(w.ClientID, w.ClientIDSnake),
		ClientName:           pick(w.ClientName, w.ClientNameSnake),
		NumberOfParticipants: participants,
		Status:               models.NormalizeStatus(w.Status),
		PackNumber:           pack,
	}
}

func registrationsToModel(ws []wireRegistration) []models.EventRegistration {
	out := make([]models.EventRegistration, len(ws))
	for i, w := range ws {
		out[i] = w.toModel()
	}
	return out
}
