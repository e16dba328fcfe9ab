package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/domain"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"
	sessionerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/session/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/contextutil"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	loginPath  = "/hr/auth/login/"
	logoutPath = "/hr/auth/logout/"
)

// Screens whose filters can be persisted.
var filterScreens = map[string]struct{}{
	"leaves":         {},
	"approvals":      {},
	"reimbursements": {},
	"employees":      {},
	"notifications":  {},
	"hire":           {},
}

// ScopeRemover drops cached data belonging to one user.
type ScopeRemover interface {
	RemoveScope(ctx context.Context, scope string) (int, error)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, claims *domain.SessionClaims) (domain.ActiveSession, error)
	Me(ctx context.Context, sessionID string) (SessionResponse, error)
	GetFilter(ctx context.Context, userID, screen string) (FilterResponse, error)
	SaveFilter(ctx context.Context, userID, screen string, filter json.RawMessage) (FilterResponse, error)
	OnLogout(hook func(sessionID string))
}

type Deps struct {
	Repo        Repository
	API         upstream.API
	Permissions permission.Service
	Issuer      *TokenIssuer
	Cache       ScopeRemover
	RefreshTTL  time.Duration
}

type cachedSession struct {
	domain.ActiveSession
	expiresAt time.Time
}

type service struct {
	repo       Repository
	api        upstream.API
	perms      permission.Service
	issuer     *TokenIssuer
	cache      ScopeRemover
	refreshTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger

	mu          sync.RWMutex
	active      map[string]cachedSession
	logoutHooks []func(sessionID string)
}

func NewService(d Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("session.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.service")
	}
	ttl := d.RefreshTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &service{
		repo:       d.Repo,
		api:        d.API,
		perms:      d.Permissions,
		issuer:     d.Issuer,
		cache:      d.Cache,
		refreshTTL: ttl,
		now:        time.Now,
		logger:     l,
		active:     make(map[string]cachedSession),
	}
}

func (s *service) OnLogout(hook func(sessionID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutHooks = append(s.logoutHooks, hook)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("login requested", zap.String("username", req.Username))

	up, err := upstream.SendJSON[upstreamLoginResponse](ctx, s.api, http.MethodPost, loginPath, upstreamLoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		log.Warn("upstream login failed", zap.String("username", req.Username), zap.Error(err))
		return LoginResponse{}, mapLoginError(err)
	}
	if up.Token == "" || up.User.ID == "" {
		return LoginResponse{}, sessionerrors.ErrInvalidCredentials
	}

	now := s.now()
	sessionID := uuid.New()
	refreshToken, refreshHash, err := newRefreshToken(sessionID.String())
	if err != nil {
		log.Error("refresh token generation failed", zap.Error(err))
		return LoginResponse{}, sessionerrors.ErrTokenGenerationFailed
	}
	userJSON, err := json.Marshal(up.User)
	if err != nil {
		return LoginResponse{}, err
	}

	sess := &Session{
		ID:               sessionID,
		UserID:           up.User.ID.String(),
		EmployeeID:       up.User.EmployeeID.String(),
		UpstreamToken:    up.Token,
		RefreshTokenHash: refreshHash,
		UserSnapshot:     userJSON,
		Permissions:      []byte("[]"),
		Role:             up.User.Category,
		ExpiresAt:        now.Add(s.refreshTTL),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		log.Error("create session failed", zap.Error(err))
		return LoginResponse{}, mapRepositoryError(err)
	}

	// Permission load failure is not fatal: the store stays empty and every
	// non-admin check denies until a refresh succeeds.
	snap, err := s.perms.Init(upstream.WithToken(ctx, up.Token), sessionID.String())
	if err != nil {
		log.Warn("initial permission load failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}
	if snap.Role != "" {
		sess.Role = snap.Role
	}

	access, err := s.issuer.Issue(sess, now)
	if err != nil {
		log.Error("access token generation failed", zap.Error(err))
		return LoginResponse{}, sessionerrors.ErrTokenGenerationFailed
	}

	s.remember(sess)
	log.Info("login success",
		zap.String("session_id", sessionID.String()),
		zap.String("user_id", sess.UserID),
		zap.String("role", sess.Role),
	)

	return LoginResponse{
		TokenPair: TokenPair{
			AccessToken:  access,
			RefreshToken: refreshToken,
			ExpiresIn:    int64(s.issuer.TTL().Seconds()),
		},
		Session: SessionResponse{
			SessionID:   sessionID.String(),
			User:        up.User,
			Role:        sess.Role,
			Permissions: nonNil(snap.Permissions),
		},
	}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	sessionID, secret, ok := splitRefreshToken(refreshToken)
	if !ok {
		return TokenPair{}, sessionerrors.ErrInvalidRefreshToken
	}

	now := s.now()
	sess, err := s.repo.FindActiveByID(ctx, sessionID, now)
	if err != nil {
		return TokenPair{}, sessionerrors.ErrInvalidRefreshToken
	}
	if !verifyRefreshSecret(sess.RefreshTokenHash, secret) {
		s.logger.Warn("refresh token mismatch", zap.String("session_id", sessionID))
		return TokenPair{}, sessionerrors.ErrInvalidRefreshToken
	}

	newToken, newHash, err := newRefreshToken(sessionID)
	if err != nil {
		return TokenPair{}, sessionerrors.ErrTokenGenerationFailed
	}
	expiresAt := now.Add(s.refreshTTL)
	if err := s.repo.RotateRefresh(ctx, sessionID, newHash, expiresAt); err != nil {
		if errors.Is(mapRepositoryError(err), sessionerrors.ErrSessionNotFound) {
			return TokenPair{}, sessionerrors.ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}
	sess.ExpiresAt = expiresAt

	if role := s.perms.Store(sessionID).Role(); role != "" {
		sess.Role = role
	}
	access, err := s.issuer.Issue(sess, now)
	if err != nil {
		return TokenPair{}, sessionerrors.ErrTokenGenerationFailed
	}
	s.remember(sess)

	return TokenPair{
		AccessToken:  access,
		RefreshToken: newToken,
		ExpiresIn:    int64(s.issuer.TTL().Seconds()),
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	sess, err := s.repo.FindActiveByID(ctx, sessionID, s.now())
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Revoke(ctx, sessionID, s.now()); err != nil {
		log.Error("revoke session failed", zap.String("session_id", sessionID), zap.Error(err))
		return mapRepositoryError(err)
	}

	if _, err := s.api.Do(upstream.WithToken(ctx, sess.UpstreamToken), upstream.Request{
		Method: http.MethodPost,
		Path:   logoutPath,
	}); err != nil {
		log.Debug("upstream logout failed", zap.Error(err))
	}

	s.perms.Reset(sessionID)
	if s.cache != nil {
		if _, err := s.cache.RemoveScope(ctx, sess.UserID); err != nil {
			log.Warn("drop cached session data failed", zap.String("user_id", sess.UserID), zap.Error(err))
		}
	}

	s.mu.Lock()
	delete(s.active, sessionID)
	hooks := append([]func(string){}, s.logoutHooks...)
	s.mu.Unlock()
	for _, hook := range hooks {
		hook(sessionID)
	}

	log.Info("logout success", zap.String("session_id", sessionID), zap.String("user_id", sess.UserID))
	return nil
}

// Authenticate resolves the session behind a verified access token. A
// session not seen by this process yet is loaded from the database, its
// stored permission snapshot is restored, and a background refresh
// re-validates it against the HR API.
func (s *service) Authenticate(ctx context.Context, claims *domain.SessionClaims) (domain.ActiveSession, error) {
	now := s.now()

	s.mu.RLock()
	cached, ok := s.active[claims.SessionID]
	s.mu.RUnlock()
	if ok && now.Before(cached.expiresAt) {
		return cached.ActiveSession, nil
	}

	sess, err := s.repo.FindActiveByID(ctx, claims.SessionID, now)
	if err != nil {
		return domain.ActiveSession{}, mapRepositoryError(err)
	}

	var perms []string
	if len(sess.Permissions) > 0 {
		if err := json.Unmarshal(sess.Permissions, &perms); err != nil {
			s.logger.Warn("stored permissions unreadable", zap.String("session_id", claims.SessionID), zap.Error(err))
		}
	}
	if err := s.perms.Restore(claims.SessionID, permission.Snapshot{Permissions: perms, Role: sess.Role}); err != nil {
		s.logger.Warn("restore permissions failed", zap.String("session_id", claims.SessionID), zap.Error(err))
	}

	refreshCtx := upstream.WithToken(context.WithoutCancel(ctx), sess.UpstreamToken)
	go func() {
		if _, err := s.perms.Refresh(refreshCtx, claims.SessionID); err != nil {
			s.logger.Warn("permission revalidation failed", zap.String("session_id", claims.SessionID), zap.Error(err))
		}
	}()

	return s.remember(sess), nil
}

func (s *service) Me(ctx context.Context, sessionID string) (SessionResponse, error) {
	sess, err := s.repo.FindActiveByID(ctx, sessionID, s.now())
	if err != nil {
		return SessionResponse{}, mapRepositoryError(err)
	}

	var user UserSnapshot
	if len(sess.UserSnapshot) > 0 {
		if err := json.Unmarshal(sess.UserSnapshot, &user); err != nil {
			return SessionResponse{}, err
		}
	}
	snap := s.perms.Store(sessionID).Snapshot()
	role := snap.Role
	if role == "" {
		role = sess.Role
	}
	return SessionResponse{
		SessionID:   sessionID,
		User:        user,
		Role:        role,
		Permissions: nonNil(snap.Permissions),
	}, nil
}

func (s *service) GetFilter(ctx context.Context, userID, screen string) (FilterResponse, error) {
	if _, ok := filterScreens[screen]; !ok {
		return FilterResponse{}, sessionerrors.ErrInvalidScreen
	}
	f, err := s.repo.FindFilter(ctx, userID, screen)
	if err != nil {
		if errors.Is(mapRepositoryError(err), sessionerrors.ErrSessionNotFound) {
			return FilterResponse{}, sessionerrors.ErrFilterNotFound
		}
		return FilterResponse{}, err
	}
	return FilterResponse{Screen: screen, Filter: json.RawMessage(f.Filter)}, nil
}

func (s *service) SaveFilter(ctx context.Context, userID, screen string, filter json.RawMessage) (FilterResponse, error) {
	if _, ok := filterScreens[screen]; !ok {
		return FilterResponse{}, sessionerrors.ErrInvalidScreen
	}
	var obj map[string]any
	if err := json.Unmarshal(filter, &obj); err != nil || obj == nil {
		return FilterResponse{}, sessionerrors.ErrInvalidFilter
	}

	f := &UIFilter{
		ID:     uuid.New(),
		UserID: userID,
		Screen: screen,
		Filter: []byte(filter),
	}
	if err := s.repo.UpsertFilter(ctx, f); err != nil {
		s.logger.Error("save filter failed", zap.String("user_id", userID), zap.String("screen", screen), zap.Error(err))
		return FilterResponse{}, mapRepositoryError(err)
	}
	return FilterResponse{Screen: screen, Filter: filter}, nil
}

func (s *service) remember(sess *Session) domain.ActiveSession {
	as := domain.ActiveSession{
		ID:            sess.ID.String(),
		UserID:        sess.UserID,
		EmployeeID:    sess.EmployeeID,
		Role:          sess.Role,
		UpstreamToken: sess.UpstreamToken,
	}
	s.mu.Lock()
	s.active[as.ID] = cachedSession{ActiveSession: as, expiresAt: sess.ExpiresAt}
	s.mu.Unlock()
	return as
}

func nonNil(perms []string) []string {
	if perms == nil {
		return []string{}
	}
	return perms
}
