package drafts

import (
	"context"
	"sync"
	"time"

	"nexustalent/internal/storage"

	"github.com/google/uuid"
)

type draftEntry struct {
	text      string
	expiresAt time.Time // zero means no expiry
}

type draftKeyPair struct {
	view uuid.UUID
	app  uuid.UUID
}

// MemoryStore is a process-local storage.DraftStore used when Redis is disabled.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[draftKeyPair]draftEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[draftKeyPair]draftEntry),
		now:     time.Now,
	}
}

var _ storage.DraftStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, viewID, applicationID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := draftKeyPair{viewID, applicationID}
	entry, ok := s.entries[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", storage.ErrNotFound
	}
	return entry.text, nil
}

func (s *MemoryStore) Set(_ context.Context, viewID, applicationID uuid.UUID, text string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := draftEntry{text: text}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[draftKeyPair{viewID, applicationID}] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, viewID, applicationID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, draftKeyPair{viewID, applicationID})
	return nil
}
