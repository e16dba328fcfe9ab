package holiday

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"go.uber.org/zap"
)

const holidaysPath = "/hr/holidays/"

// Service serves the holiday calendar. Holidays are the same for every
// user, so entries are cached without a session scope and survive logout.
type Service interface {
	List(ctx context.Context, year int) ([]Holiday, querycache.Meta, error)
}

type service struct {
	api    upstream.API
	cache  *querycache.Cache
	policy querycache.Policy
	logger *zap.Logger
}

func NewService(api upstream.API, cache *querycache.Cache, policy querycache.Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	if policy == nil {
		policy = querycache.DefaultPolicy()
	}
	return &service{api: api, cache: cache, policy: policy, logger: l}
}

func (s *service) List(ctx context.Context, year int) ([]Holiday, querycache.Meta, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))

	key := querycache.NewKey("holidays", strconv.Itoa(year))
	page, meta, err := querycache.Fetch[upstream.Page[Holiday]](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceHolidays),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[Holiday], error) {
			return upstream.GetList[Holiday](ctx, s.api, holidaysPath, query, false)
		}))
	if err != nil {
		return nil, meta, err
	}
	if meta.Stale {
		s.logger.Warn("serving stale holidays", zap.Int("year", year), zap.Error(meta.Err))
	}
	return page.Results, meta, nil
}
