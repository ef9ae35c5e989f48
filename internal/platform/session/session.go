package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrdocs/internal/domain/documents"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid session token")
)

// Store keeps submitted document requests between the submit, preview and
// generate steps. Writes for the same token are last-write-wins.
type Store interface {
	Save(ctx context.Context, token string, req documents.Request) error
	Load(ctx context.Context, token string) (documents.Request, error)
	Delete(ctx context.Context, token string) error
}

func NewToken() string {
	return uuid.NewString()
}

func validToken(token string) bool {
	_, err := uuid.Parse(strings.TrimSpace(token))
	return err == nil
}

type memoryEntry struct {
	req     documents.Request
	expires time.Time
}

// MemoryStore is a process-local Store used when no Redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, token string, req documents.Request) error {
	if !validToken(token) {
		return ErrInvalidToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[token] = memoryEntry{req: req.WithMonths(req.Months), expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Load(_ context.Context, token string) (documents.Request, error) {
	if !validToken(token) {
		return documents.Request{}, ErrInvalidToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[token]
	if !ok {
		return documents.Request{}, ErrSessionNotFound
	}
	if m.ttl > 0 && m.now().After(entry.expires) {
		delete(m.entries, token)
		return documents.Request{}, ErrSessionNotFound
	}
	return entry.req.WithMonths(entry.req.Months), nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, token)
	return nil
}

// Purge drops entries that expired before now and reports how many.
func (m *MemoryStore) Purge(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	purged := 0
	for token, entry := range m.entries {
		if now.After(entry.expires) {
			delete(m.entries, token)
			purged++
		}
	}
	return purged
}
