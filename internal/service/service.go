package service

import (
	"trainmice/internal/cache"
	"trainmice/internal/external"
	"trainmice/internal/messaging"
)

type Services struct {
	Bookings      *BookingService
	Calendar      *CalendarService
	Registrations *RegistrationService
	Events        *EventService
}

func NewServices(core *external.CoreClient, sessions SessionStore, valkeyClient *cache.ValkeyClient, natsClient *messaging.NATSClient) *Services {
	bookingService := NewBookingService(core, sessions, valkeyClient, natsClient)
	calendarService := NewCalendarService(core, valkeyClient, natsClient)
	registrationService := NewRegistrationService(core, natsClient)
	eventService := NewEventService(core, natsClient)

	return &Services{
		Bookings:      bookingService,
		Calendar:      calendarService,
		Registrations: registrationService,
		Events:        eventService,
	}
}
