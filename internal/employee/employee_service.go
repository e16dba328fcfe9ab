package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	employeeerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/employee/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	usersPath = "/hr/users/"
	mePath    = "/hr/auth/me/"
)

const resource = "employees"

type Service interface {
	List(ctx context.Context, scope string, f Filter) (upstream.Page[Employee], querycache.Meta, error)
	Detail(ctx context.Context, scope, id string) (Employee, querycache.Meta, error)
	Me(ctx context.Context, scope string) (Employee, querycache.Meta, error)
	UpdateMe(ctx context.Context, scope string, req UpdateProfileRequest) (Employee, error)
	Section(ctx context.Context, scope, id string, section Section) ([]json.RawMessage, querycache.Meta, error)
	Dashboard(ctx context.Context, scope string) (DashboardResponse, error)
}

type service struct {
	api    upstream.API
	cache  *querycache.Cache
	inv    *querycache.Invalidator
	policy querycache.Policy
	logger *zap.Logger
}

func NewService(api upstream.API, inv *querycache.Invalidator, policy querycache.Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if policy == nil {
		policy = querycache.DefaultPolicy()
	}
	return &service{api: api, cache: inv.Cache(), inv: inv, policy: policy, logger: l}
}

func (s *service) List(ctx context.Context, scope string, f Filter) (upstream.Page[Employee], querycache.Meta, error) {
	query := f.Values()
	key := querycache.NewKey(resource, "list", f.CacheString()).Scoped(scope)
	return querycache.Fetch[upstream.Page[Employee]](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceEmployees),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[Employee], error) {
			return upstream.GetList[Employee](ctx, s.api, usersPath, query, false)
		}))
}

func (s *service) Detail(ctx context.Context, scope, id string) (Employee, querycache.Meta, error) {
	if !validID(id) {
		return Employee{}, querycache.Meta{}, employeeerrors.ErrInvalidEmployeeID
	}
	key := querycache.NewKey(resource, "detail", id).Scoped(scope)
	return querycache.Fetch[Employee](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceEmployees),
		querycache.JSONFetcher(func(ctx context.Context) (Employee, error) {
			return upstream.GetJSON[Employee](ctx, s.api, usersPath+id+"/", nil)
		}))
}

func (s *service) Me(ctx context.Context, scope string) (Employee, querycache.Meta, error) {
	key := querycache.NewKey(resource, "me").Scoped(scope)
	return querycache.Fetch[Employee](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceProfile),
		querycache.JSONFetcher(func(ctx context.Context) (Employee, error) {
			return upstream.GetJSON[Employee](ctx, s.api, mePath, nil)
		}))
}

func (s *service) UpdateMe(ctx context.Context, scope string, req UpdateProfileRequest) (Employee, error) {
	if req.empty() {
		return Employee{}, employeeerrors.ErrEmptyProfileUpdate
	}

	updated, err := upstream.SendJSON[Employee](ctx, s.api, http.MethodPatch, mePath, req)
	if err != nil {
		s.logger.Warn("update profile upstream failed", zap.Error(err))
		return Employee{}, err
	}

	prefixes := []querycache.Prefix{{resource, "me"}}
	if id := updated.ID.String(); id != "" {
		prefixes = append(prefixes, querycache.Prefix{resource, "detail", id})
	}
	s.inv.Apply(ctx, "employee.update_me", prefixes...)

	s.logger.Info("profile updated", zap.String("employee_id", updated.ID.String()))
	return updated, nil
}

// Section loads an optional profile sub-resource. A 404 means the section is
// not enabled and resolves to an empty list.
func (s *service) Section(ctx context.Context, scope, id string, section Section) ([]json.RawMessage, querycache.Meta, error) {
	if !validID(id) {
		return nil, querycache.Meta{}, employeeerrors.ErrInvalidEmployeeID
	}
	if _, ok := ParseSection(string(section)); !ok {
		return nil, querycache.Meta{}, employeeerrors.ErrUnknownSection
	}

	key := querycache.NewKey(resource, "section", id, string(section)).Scoped(scope)
	path := usersPath + id + "/" + string(section) + "/"
	page, meta, err := querycache.Fetch[upstream.Page[json.RawMessage]](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceProfile),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[json.RawMessage], error) {
			return upstream.GetList[json.RawMessage](ctx, s.api, path, nil, true)
		}))
	if err != nil {
		return nil, meta, err
	}
	return page.Results, meta, nil
}

// Dashboard loads the caller's profile and then every section in parallel.
func (s *service) Dashboard(ctx context.Context, scope string) (DashboardResponse, error) {
	me, _, err := s.Me(ctx, scope)
	if err != nil {
		return DashboardResponse{}, err
	}

	id := me.ID.String()
	results := make([][]json.RawMessage, len(Sections))

	g, gctx := errgroup.WithContext(ctx)
	for i, section := range Sections {
		g.Go(func() error {
			rows, _, err := s.Section(gctx, scope, id, section)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("profile dashboard failed", zap.String("employee_id", id), zap.Error(err))
		return DashboardResponse{}, err
	}

	resp := DashboardResponse{Profile: me, Sections: make(map[Section][]json.RawMessage, len(Sections))}
	for i, section := range Sections {
		resp.Sections[section] = results[i]
	}
	return resp, nil
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/?#")
}
