package service

import (
	"context"
	"fmt"
	"time"

	apperrors "trainmice/internal/errors"
	"trainmice/internal/external"
	"trainmice/internal/logger"
	"trainmice/internal/messaging"
	"trainmice/internal/models"
)

type RegistrationService struct {
	core       *external.CoreClient
	natsClient *messaging.NATSClient
}

func NewRegistrationService(core *external.CoreClient, natsClient *messaging.NATSClient) *RegistrationService {
	return &RegistrationService{
		core:       core,
		natsClient: natsClient,
	}
}

func (s *RegistrationService) List(ctx context.Context, eventID string) ([]models.EventRegistration, error) {
	registrations, err := s.core.ListRegistrations(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return registrations, nil
}

// Approve approves a registration; the pack number comes back assigned by
// the core API.
func (s *RegistrationService) Approve(ctx context.Context, registrationID string, numberOfParticipants int) (*models.EventRegistration, error) {
	if numberOfParticipants < 1 {
		return nil, apperrors.Validation("numberOfParticipants", "must be at least 1")
	}

	registration, err := s.core.ApproveRegistration(ctx, registrationID, numberOfParticipants)
	if err != nil {
		return nil, err
	}

	s.publishUpdate(ctx, registrationID, registration.Status)
	return registration, nil
}

func (s *RegistrationService) Cancel(ctx context.Context, registrationID string) (*models.EventRegistration, error) {
	registration, err := s.core.CancelRegistration(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	s.publishUpdate(ctx, registrationID, registration.Status)
	return registration, nil
}

func (s *RegistrationService) publishUpdate(ctx context.Context, registrationID, status string) {
	if err := s.natsClient.Publish(models.EventRegistrationUpdated, models.RegistrationUpdatedEvent{
		RegistrationID: registrationID,
		Status:         status,
		Timestamp:      time.Now(),
	}); err != nil {
		logger.WithContext(ctx).Error("Failed to publish registration updated event",
			"error", err, "registration_id", registrationID)
	}
}
