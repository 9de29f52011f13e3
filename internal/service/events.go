package service

import (
	"context"
	"fmt"
	"time"

	"trainmice/internal/external"
	"trainmice/internal/logger"
	"trainmice/internal/messaging"
	"trainmice/internal/models"
)

type EventService struct {
	core       *external.CoreClient
	natsClient *messaging.NATSClient
}

func NewEventService(core *external.CoreClient, natsClient *messaging.NATSClient) *EventService {
	return &EventService{
		core:       core,
		natsClient: natsClient,
	}
}

func (s *EventService) List(ctx context.Context, trainerID, from, to string) ([]models.Event, error) {
	events, err := s.core.ListEvents(ctx, trainerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// CompleteExpired triggers the core API batch that closes events whose end
// date has passed. The consumers process calls this on a ticker; the API
// exposes it too so an admin can force a sweep.
func (s *EventService) CompleteExpired(ctx context.Context) (int, error) {
	count, err := s.core.CompleteExpiredEvents(ctx)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		if err := s.natsClient.Publish(models.EventCompletionSweepDone, models.CompletionSweepEvent{
			CompletedCount: count,
			Timestamp:      time.Now(),
		}); err != nil {
			logger.WithContext(ctx).Error("Failed to publish completion sweep event", "error", err)
		}
	}

	return count, nil
}
