package permission

import (
	"context"
	"sync"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/contextutil"

	"go.uber.org/zap"
)

// SnapshotSaver persists the snapshot alongside the session row.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, sessionID string, snap Snapshot) error
}

type Service interface {
	// Init creates a fresh store for a newly authenticated session and
	// loads it from the HR API.
	Init(ctx context.Context, sessionID string) (Snapshot, error)
	Restore(sessionID string, snap Snapshot) error
	Refresh(ctx context.Context, sessionID string) (Snapshot, error)
	Store(sessionID string) *Store
	Reset(sessionID string)
}

type service struct {
	fetcher Fetcher
	saver   SnapshotSaver
	logger  *zap.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewService(fetcher Fetcher, saver SnapshotSaver, logger ...*zap.Logger) Service {
	l := zap.L().Named("permission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permission.service")
	}
	return &service{
		fetcher: fetcher,
		saver:   saver,
		logger:  l,
		stores:  make(map[string]*Store),
	}
}

func (s *service) Init(ctx context.Context, sessionID string) (Snapshot, error) {
	st, err := NewStore()
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	s.stores[sessionID] = st
	s.mu.Unlock()

	return s.Refresh(ctx, sessionID)
}

func (s *service) Restore(sessionID string, snap Snapshot) error {
	st := s.Store(sessionID)
	return st.Load(snap)
}

// Refresh reloads the set. On failure the set is emptied and the role is
// left as it was, so every non-admin check denies until the next success.
func (s *service) Refresh(ctx context.Context, sessionID string) (Snapshot, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	st := s.Store(sessionID)

	snap, err := s.fetcher.FetchMine(ctx)
	if err != nil {
		st.ClearPermissions()
		log.Warn("permission refresh failed", zap.String("session_id", sessionID), zap.Error(err))
		return st.Snapshot(), err
	}
	if err := st.Load(snap); err != nil {
		st.ClearPermissions()
		log.Error("permission load failed", zap.String("session_id", sessionID), zap.Error(err))
		return st.Snapshot(), err
	}

	current := st.Snapshot()
	if s.saver != nil {
		if err := s.saver.SaveSnapshot(ctx, sessionID, current); err != nil {
			log.Warn("permission snapshot persist failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	log.Debug("permissions refreshed",
		zap.String("session_id", sessionID),
		zap.String("role", current.Role),
		zap.Int("permissions", len(current.Permissions)),
	)
	return current, nil
}

// Store returns the session's store, creating an empty one if none exists.
// An empty store denies every non-admin check.
func (s *service) Store(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stores[sessionID]; ok {
		return st
	}
	st, err := NewStore()
	if err != nil {
		// the model is a constant; this only fails on a programming error
		panic(err)
	}
	s.stores[sessionID] = st
	return st
}

func (s *service) Reset(sessionID string) {
	s.mu.Lock()
	st, ok := s.stores[sessionID]
	delete(s.stores, sessionID)
	s.mu.Unlock()
	if ok {
		st.Reset()
	}
}
