package querycache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Entry is what a store keeps per key. Data is the last successful payload
// and is never cleared by a failed refresh or by invalidation.
type Entry struct {
	Data        []byte
	FetchedAt   time.Time
	Invalidated bool
	Err         string
	ErrAt       time.Time
}

func (e Entry) hasData() bool {
	return e.Data != nil
}

type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry, retention time.Duration) error
	SetError(ctx context.Context, key string, msg string, at time.Time, retention time.Duration) error
	MarkInvalid(ctx context.Context, p Prefix) (int, error)
	DeleteScope(ctx context.Context, scope string) (int, error)
}

type memoryEntry struct {
	Entry
	expiresAt time.Time
}

type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	me, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return Entry{}, false, nil
	}
	if !me.expiresAt.IsZero() && s.now().After(me.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return Entry{}, false, nil
	}
	return me.Entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, e Entry, retention time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{Entry: e, expiresAt: s.expiry(retention)}
	return nil
}

func (s *MemoryStore) SetError(_ context.Context, key string, msg string, at time.Time, retention time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	me, ok := s.entries[key]
	if !ok {
		me.expiresAt = s.expiry(retention)
	}
	me.Err = msg
	me.ErrAt = at
	s.entries[key] = me
	return nil
}

func (s *MemoryStore) MarkInvalid(_ context.Context, p Prefix) (int, error) {
	prefix := p.String()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k, me := range s.entries {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		me.Invalidated = true
		s.entries[k] = me
		n++
	}
	return n, nil
}

func (s *MemoryStore) DeleteScope(_ context.Context, scope string) (int, error) {
	suffix := scopeSuffix(scope)
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k := range s.entries {
		if strings.HasSuffix(k, suffix) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) expiry(retention time.Duration) time.Time {
	if retention <= 0 {
		return time.Time{}
	}
	return s.now().Add(retention)
}
