package models

// StartConfirmationResponse - результат запуска подтверждения бронирования
type StartConfirmationResponse struct {
	SessionID        string             `json:"sessionId"`
	Booking          BookingRequest     `json:"booking"`
	Conflicts        []BookingRequest   `json:"conflicts"`
	SelectableSlots  []AvailabilitySlot `json:"selectableSlots"`
	OverrideRequired bool               `json:"overrideRequired"`
}

// NotifyConflictsRequest - письмо клиентам конфликтующих бронирований
type NotifyConflictsRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// NotifyConflictsResponse - результат рассылки
type NotifyConflictsResponse struct {
	SentCount int `json:"sentCount"`
}

// OverrideConflictsRequest acknowledges the conflict list and unlocks the
// confirmation form.
type OverrideConflictsRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// OverrideConflictsResponse carries the slots that became selectable.
type OverrideConflictsResponse struct {
	SessionID       string             `json:"sessionId"`
	SelectableSlots []AvailabilitySlot `json:"selectableSlots"`
}

// ConfirmBookingRequest - модель для подтверждения бронирования
type ConfirmBookingRequest struct {
	SessionID              string `json:"sessionId" binding:"required"`
	TotalSlots             int    `json:"totalSlots" binding:"required"`
	RegisteredParticipants int    `json:"registeredParticipants" binding:"required"`
	AvailabilityID         string `json:"availabilityId" binding:"required"`
}

// ConfirmBookingResponse - модель ответа при подтверждении
type ConfirmBookingResponse struct {
	Booking      BookingRequest `json:"booking"`
	CreatedEvent *Event         `json:"createdEvent,omitempty"`
}

// CreateAvailabilityRequest - модель для массового создания доступности
type CreateAvailabilityRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// CreateAvailabilityResponse - модель ответа при создании доступности
type CreateAvailabilityResponse struct {
	Dates  []string `json:"dates"`
	Status string   `json:"status"`
}

// DayView is one calendar cell of the month view.
type DayView struct {
	Date   string    `json:"date"`
	Status DayStatus `json:"status"`
	Today  bool      `json:"today"`
}

// MonthViewResponse - календарь тренера за месяц
type MonthViewResponse struct {
	TrainerID        string    `json:"trainerId"`
	Year             int       `json:"year"`
	Month            int       `json:"month"`
	LeadingBlanks    int       `json:"leadingBlanks"`
	BlockedDaysKnown bool      `json:"blockedDaysKnown"`
	Days             []DayView `json:"days"`
}

// ApproveRegistrationRequest - модель для одобрения регистрации
type ApproveRegistrationRequest struct {
	NumberOfParticipants int `json:"numberOfParticipants" binding:"required"`
}

// BookingDateGroup holds the bookings of one trainer that share a start date.
type BookingDateGroup struct {
	Date     string           `json:"date"`
	Bookings []BookingRequest `json:"bookings"`
}

// TrainerBookingGroup groups a trainer's bookings by requested date, the
// shape the dashboard list renders.
type TrainerBookingGroup struct {
	TrainerID   string             `json:"trainerId"`
	TrainerName string             `json:"trainerName,omitempty"`
	Dates       []BookingDateGroup `json:"dates"`
}

// CompleteExpiredResponse - результат запуска завершения прошедших событий
type CompleteExpiredResponse struct {
	CompletedCount int `json:"completedCount"`
}
