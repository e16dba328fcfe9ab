package notification

import (
	"context"
	"net/http"
	"strings"

	notificationerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/notification/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"go.uber.org/zap"
)

const (
	notificationsPath = "/core/notifications/"
	unreadCountPath   = "/core/notifications/unread_count/"
	markAllReadPath   = "/core/notifications/mark_all_read/"
)

const resource = "notifications"

var (
	listPrefix        = querycache.Prefix{resource, "list"}
	unreadCountPrefix = querycache.Prefix{resource, "unread_count"}
)

type Service interface {
	List(ctx context.Context, scope string, f Filter) (upstream.Page[Notification], querycache.Meta, error)
	UnreadCount(ctx context.Context, scope, sessionID string) (UnreadCountResponse, querycache.Meta, error)
	MarkRead(ctx context.Context, sessionID, id string) error
	MarkAllRead(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID, id string) error
	Counters() *Counters
	Hub() *Hub
	ResetSession(sessionID string)
}

type service struct {
	api      upstream.API
	cache    *querycache.Cache
	inv      *querycache.Invalidator
	policy   querycache.Policy
	hub      *Hub
	counters *Counters
	logger   *zap.Logger
}

func NewService(api upstream.API, inv *querycache.Invalidator, policy querycache.Policy, hub *Hub, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	if policy == nil {
		policy = querycache.DefaultPolicy()
	}
	if hub == nil {
		hub = NewHub(l)
	}
	return &service{
		api:      api,
		cache:    inv.Cache(),
		inv:      inv,
		policy:   policy,
		hub:      hub,
		counters: NewCounters(hub),
		logger:   l,
	}
}

func (s *service) Counters() *Counters { return s.counters }

func (s *service) Hub() *Hub { return s.hub }

func (s *service) List(ctx context.Context, scope string, f Filter) (upstream.Page[Notification], querycache.Meta, error) {
	query := f.Values()
	key := querycache.NewKey(resource, "list", f.CacheString()).Scoped(scope)
	return querycache.Fetch[upstream.Page[Notification]](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceNotifications),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[Notification], error) {
			return upstream.GetList[Notification](ctx, s.api, notificationsPath, query, false)
		}))
}

// UnreadCount refreshes the session counter from the cached count, which
// pushes the value to open streams when it changed.
func (s *service) UnreadCount(ctx context.Context, scope, sessionID string) (UnreadCountResponse, querycache.Meta, error) {
	key := querycache.NewKey(resource, "unread_count").Scoped(scope)
	payload, meta, err := querycache.Fetch[unreadCountPayload](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceNotifications),
		querycache.JSONFetcher(func(ctx context.Context) (unreadCountPayload, error) {
			return upstream.GetJSON[unreadCountPayload](ctx, s.api, unreadCountPath, nil)
		}))
	if err != nil {
		return UnreadCountResponse{}, meta, err
	}

	n := payload.value()
	if sessionID != "" {
		s.counters.Set(sessionID, n)
	}
	return UnreadCountResponse{Count: n}, meta, nil
}

func (s *service) MarkRead(ctx context.Context, sessionID, id string) error {
	if !validID(id) {
		return notificationerrors.ErrInvalidNotificationID
	}
	if _, err := s.api.Do(ctx, upstream.Request{Method: http.MethodPost, Path: notificationsPath + id + "/mark_read/"}); err != nil {
		s.logger.Warn("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}

	s.inv.Apply(ctx, "notification.mark_read", listPrefix, unreadCountPrefix)
	s.counters.Adjust(sessionID, -1)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, sessionID string) error {
	if _, err := s.api.Do(ctx, upstream.Request{Method: http.MethodPost, Path: markAllReadPath}); err != nil {
		s.logger.Warn("mark all notifications read failed", zap.Error(err))
		return err
	}

	s.inv.Apply(ctx, "notification.mark_all_read", listPrefix, unreadCountPrefix)
	s.counters.Set(sessionID, 0)
	return nil
}

func (s *service) Delete(ctx context.Context, sessionID, id string) error {
	if !validID(id) {
		return notificationerrors.ErrInvalidNotificationID
	}
	if _, err := s.api.Do(ctx, upstream.Request{Method: http.MethodDelete, Path: notificationsPath + id + "/"}); err != nil {
		s.logger.Warn("delete notification failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}

	s.inv.Apply(ctx, "notification.delete", listPrefix, unreadCountPrefix)
	return nil
}

// ResetSession is the logout teardown of the session's counter and streams.
func (s *service) ResetSession(sessionID string) {
	s.counters.Reset(sessionID)
	s.hub.CloseSession(sessionID)
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/?#")
}
