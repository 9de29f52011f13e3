package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trainmice/internal/models"
)

type Config struct {
	Addr       string
	Password   string
	MonthTTL   time.Duration
	SessionTTL time.Duration
}

// ValkeyClient holds the gateway's only state: short-lived month-view copies
// and confirmation-workflow sessions. Everything here is reconstructable
// from the core API; losing the cache costs latency, not correctness.
type ValkeyClient struct {
	client     *redis.Client
	monthTTL   time.Duration
	sessionTTL time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	if cfg.MonthTTL == 0 {
		cfg.MonthTTL = time.Minute
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 15 * time.Minute
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:     rdb,
		monthTTL:   cfg.MonthTTL,
		sessionTTL: cfg.SessionTTL,
	}, nil
}

// Month views are keyed under a per-trainer generation counter; invalidation
// bumps the counter and the stale keys expire on their own.

func (v *ValkeyClient) trainerGen(ctx context.Context, trainerID string) (int64, error) {
	gen, err := v.client.Get(ctx, "calendar:gen:"+trainerID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (v *ValkeyClient) monthKey(trainerID string, gen int64, year, month int) string {
	return fmt.Sprintf("calendar:%s:%d:%04d-%02d", trainerID, gen, year, month)
}

// GetMonthViewRaw returns the cached month view as raw JSON, so handlers can
// serve it without a decode/encode round trip.
func (v *ValkeyClient) GetMonthViewRaw(ctx context.Context, trainerID string, year, month int) ([]byte, error) {
	gen, err := v.trainerGen(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	data, err := v.client.Get(ctx, v.monthKey(trainerID, gen, year, month)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("month view not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// SetMonthView stores a month view under the trainer's current generation.
func (v *ValkeyClient) SetMonthView(ctx context.Context, trainerID string, year, month int, view interface{}) error {
	gen, err := v.trainerGen(ctx, trainerID)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal month view: %w", err)
	}
	return v.client.Set(ctx, v.monthKey(trainerID, gen, year, month), payload, v.monthTTL).Err()
}

// InvalidateTrainer drops every cached month of one trainer by bumping the
// generation counter.
func (v *ValkeyClient) InvalidateTrainer(ctx context.Context, trainerID string) error {
	return v.client.Incr(ctx, "calendar:gen:"+trainerID).Err()
}

func sessionKey(bookingID, sessionID string) string {
	return "confirmation:" + bookingID + ":" + sessionID
}

// SetSession stores a confirmation session with the configured TTL.
func (v *ValkeyClient) SetSession(ctx context.Context, session *models.ConfirmationSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return v.client.Set(ctx, sessionKey(session.BookingID, session.ID), payload, v.sessionTTL).Err()
}

// GetSession loads a confirmation session, or nil when it expired.
func (v *ValkeyClient) GetSession(ctx context.Context, bookingID, sessionID string) (*models.ConfirmationSession, error) {
	data, err := v.client.Get(ctx, sessionKey(bookingID, sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	var session models.ConfirmationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a finished session.
func (v *ValkeyClient) DeleteSession(ctx context.Context, bookingID, sessionID string) error {
	return v.client.Del(ctx, sessionKey(bookingID, sessionID)).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
