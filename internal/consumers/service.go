package consumers

import (
	"context"
	"log/slog"

	"trainmice/internal/config"
	"trainmice/internal/external"
	"trainmice/internal/messaging"
)

type ConsumerService struct {
	nats     *messaging.NATSClient
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	// Connect to NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	// Core API client for handlers that need to read back state
	coreClient := external.NewCoreClient(cfg.Core)

	handlers := NewHandlers(coreClient)

	return &ConsumerService{
		nats:     natsClient,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	// Subscribe to booking lifecycle events
	_, err := cs.nats.SubscribeQueue("booking.confirmed", "consumers", cs.handlers.HandleBookingConfirmed)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue("booking.cancelled", "consumers", cs.handlers.HandleBookingCancelled)
	if err != nil {
		return err
	}

	// Subscribe to availability events
	_, err = cs.nats.SubscribeQueue("availability.created", "consumers", cs.handlers.HandleAvailabilityCreated)
	if err != nil {
		return err
	}

	// Subscribe to notification events
	_, err = cs.nats.SubscribeQueue("conflict.notified", "consumers", cs.handlers.HandleConflictNotified)
	if err != nil {
		return err
	}

	// Subscribe to registration events
	_, err = cs.nats.SubscribeQueue("registration.updated", "consumers", cs.handlers.HandleRegistrationUpdated)
	if err != nil {
		return err
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
			return err
		}
	}

	return nil
}

// NATS returns the underlying client so the consumers main can share the
// connection with background jobs.
func (cs *ConsumerService) NATS() *messaging.NATSClient {
	return cs.nats
}
