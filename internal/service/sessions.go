package service

import (
	"context"
	"sync"
	"time"

	"trainmice/internal/models"
)

// SessionStore keeps confirmation-workflow state between the conflict check
// and the final confirm call. Valkey backs it in production; the in-memory
// store below is the fallback when no cache is configured.
type SessionStore interface {
	SetSession(ctx context.Context, session *models.ConfirmationSession) error
	GetSession(ctx context.Context, bookingID, sessionID string) (*models.ConfirmationSession, error)
	DeleteSession(ctx context.Context, bookingID, sessionID string) error
}

type memoryEntry struct {
	session   models.ConfirmationSession
	expiresAt time.Time
}

// MemorySessionStore is a process-local SessionStore with TTL eviction on
// read. Good enough for a single instance; multi-instance deployments need
// Valkey.
type MemorySessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &MemorySessionStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func memoryKey(bookingID, sessionID string) string {
	return bookingID + ":" + sessionID
}

func (m *MemorySessionStore) SetSession(_ context.Context, session *models.ConfirmationSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[memoryKey(session.BookingID, session.ID)] = memoryEntry{
		session:   *session,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

func (m *MemorySessionStore) GetSession(_ context.Context, bookingID, sessionID string) (*models.ConfirmationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[memoryKey(bookingID, sessionID)]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, memoryKey(bookingID, sessionID))
		return nil, nil
	}
	session := entry.session
	return &session, nil
}

func (m *MemorySessionStore) DeleteSession(_ context.Context, bookingID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, memoryKey(bookingID, sessionID))
	return nil
}
