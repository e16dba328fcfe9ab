package leave

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	leaveerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/leave/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"go.uber.org/zap"
)

const (
	leavesPath     = "/hr/leaves/"
	teamPath       = "/hr/leaves/team/"
	upcomingPath   = "/hr/leaves/upcoming/"
	balancePath    = "/leave_management/balance/"
	statisticsPath = "/leave_management/statistics/"
	calendarPath   = "/leave_management/calendar/"
)

const dateLayout = "2006-01-02"

type Service interface {
	List(ctx context.Context, scope string, f Filter) (upstream.Page[Request], querycache.Meta, error)
	Approvals(ctx context.Context, scope string, f Filter) (upstream.Page[Request], querycache.Meta, error)
	Team(ctx context.Context, scope string) ([]Request, querycache.Meta, error)
	Upcoming(ctx context.Context, scope string) ([]Request, querycache.Meta, error)
	Detail(ctx context.Context, scope, id string) (Request, querycache.Meta, error)
	Balance(ctx context.Context, scope, employeeID string, year int) (BalanceResponse, querycache.Meta, error)
	Statistics(ctx context.Context, scope string) (json.RawMessage, querycache.Meta, error)
	Calendar(ctx context.Context, scope string, year, month int) (json.RawMessage, querycache.Meta, error)

	Create(ctx context.Context, req CreateRequest) (Request, error)
	Approve(ctx context.Context, id string, req ApproveRequest) (Request, error)
	Reject(ctx context.Context, id string, req RejectRequest) (Request, error)
	Cancel(ctx context.Context, id string) (Request, error)
}

type service struct {
	api    upstream.API
	cache  *querycache.Cache
	inv    *querycache.Invalidator
	policy querycache.Policy
	logger *zap.Logger
}

func NewService(api upstream.API, inv *querycache.Invalidator, policy querycache.Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if policy == nil {
		policy = querycache.DefaultPolicy()
	}
	return &service{api: api, cache: inv.Cache(), inv: inv, policy: policy, logger: l}
}

func (s *service) list(ctx context.Context, scope string, f Filter, res querycache.Resource) (upstream.Page[Request], querycache.Meta, error) {
	query := f.Values()
	return querycache.Fetch[upstream.Page[Request]](ctx, s.cache, listKey(scope, f), s.policy.MaxAge(res),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[Request], error) {
			return upstream.GetList[Request](ctx, s.api, leavesPath, query, false)
		}))
}

func (s *service) List(ctx context.Context, scope string, f Filter) (upstream.Page[Request], querycache.Meta, error) {
	return s.list(ctx, scope, f, querycache.ResourceLeaveList)
}

// Approvals never asks the HR API for every leave: an empty status means
// pending.
func (s *service) Approvals(ctx context.Context, scope string, f Filter) (upstream.Page[Request], querycache.Meta, error) {
	return s.list(ctx, scope, f.ForApprovals(), querycache.ResourceLeaveApprovals)
}

func (s *service) plainList(ctx context.Context, key querycache.Key, path string) ([]Request, querycache.Meta, error) {
	page, meta, err := querycache.Fetch[upstream.Page[Request]](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceLeaveList),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[Request], error) {
			return upstream.GetList[Request](ctx, s.api, path, nil, false)
		}))
	if err != nil {
		return nil, meta, err
	}
	return page.Results, meta, nil
}

func (s *service) Team(ctx context.Context, scope string) ([]Request, querycache.Meta, error) {
	return s.plainList(ctx, singletonKey(scope, "team"), teamPath)
}

func (s *service) Upcoming(ctx context.Context, scope string) ([]Request, querycache.Meta, error) {
	return s.plainList(ctx, singletonKey(scope, "upcoming"), upcomingPath)
}

func (s *service) Detail(ctx context.Context, scope, id string) (Request, querycache.Meta, error) {
	if err := validateID(id); err != nil {
		return Request{}, querycache.Meta{}, err
	}
	return querycache.Fetch[Request](ctx, s.cache, detailKey(scope, id), s.policy.MaxAge(querycache.ResourceLeaveDetail),
		querycache.JSONFetcher(func(ctx context.Context) (Request, error) {
			return upstream.GetJSON[Request](ctx, s.api, leavesPath+id+"/", nil)
		}))
}

func (s *service) Balance(ctx context.Context, scope, employeeID string, year int) (BalanceResponse, querycache.Meta, error) {
	if employeeID == "" {
		return BalanceResponse{}, querycache.Meta{}, leaveerrors.ErrEmployeeRequired
	}
	query := url.Values{}
	query.Set("employee", employeeID)
	query.Set("year", strconv.Itoa(year))

	page, meta, err := querycache.Fetch[upstream.Page[BalanceItem]](ctx, s.cache, balanceKey(scope, employeeID, year),
		s.policy.MaxAge(querycache.ResourceLeaveBalance),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[BalanceItem], error) {
			return upstream.GetList[BalanceItem](ctx, s.api, balancePath, query, false)
		}))
	if err != nil {
		return BalanceResponse{}, meta, err
	}
	return toBalanceResponse(employeeID, year, page.Results), meta, nil
}

func (s *service) Statistics(ctx context.Context, scope string) (json.RawMessage, querycache.Meta, error) {
	data, meta, err := s.cache.Query(ctx, singletonKey(scope, "statistics"), s.policy.MaxAge(querycache.ResourceLeaveStatistics),
		func(ctx context.Context) ([]byte, error) {
			return s.api.Do(ctx, upstream.Request{Method: http.MethodGet, Path: statisticsPath})
		})
	return json.RawMessage(data), meta, err
}

func (s *service) Calendar(ctx context.Context, scope string, year, month int) (json.RawMessage, querycache.Meta, error) {
	if month < 1 || month > 12 || year < 1000 || year > 9999 {
		return nil, querycache.Meta{}, leaveerrors.ErrInvalidPeriod
	}
	query := url.Values{}
	query.Set("month", strconv.Itoa(month))
	query.Set("year", strconv.Itoa(year))

	data, meta, err := s.cache.Query(ctx, calendarKey(scope, year, month), s.policy.MaxAge(querycache.ResourceLeaveCalendar),
		func(ctx context.Context) ([]byte, error) {
			return s.api.Do(ctx, upstream.Request{Method: http.MethodGet, Path: calendarPath, Query: query})
		})
	return json.RawMessage(data), meta, err
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Request, error) {
	code, err := LeaveTypeCode(req.LeaveType)
	if err != nil {
		s.logger.Warn("create leave unmapped type", zap.String("leave_type", req.LeaveType))
		return Request{}, err
	}
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return Request{}, err
	}

	created, err := upstream.SendJSON[Request](ctx, s.api, http.MethodPost, leavesPath, createPayload{
		LeaveType: code,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		HalfDay:   req.HalfDay,
		Reason:    strings.TrimSpace(req.Reason),
		Employee:  req.Employee,
	})
	if err != nil {
		s.logger.Warn("create leave upstream failed", zap.Error(err))
		return Request{}, err
	}

	s.inv.Apply(ctx, "leave.create", createFanOut(created)...)
	s.logger.Info("create leave success",
		zap.String("leave_id", created.ID.String()),
		zap.String("employee_id", created.SubmitterID()),
	)
	return created, nil
}

func (s *service) Approve(ctx context.Context, id string, req ApproveRequest) (Request, error) {
	return s.review(ctx, id, "approve", map[string]string{"comment": strings.TrimSpace(req.Comment)})
}

func (s *service) Reject(ctx context.Context, id string, req RejectRequest) (Request, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return Request{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.review(ctx, id, "reject", map[string]string{"reason": reason})
}

// review posts a status change. The HR API accepts repeats of the same
// decision, so a second approve simply returns the approved row.
func (s *service) review(ctx context.Context, id, action string, body map[string]string) (Request, error) {
	if err := validateID(id); err != nil {
		return Request{}, err
	}
	updated, err := upstream.SendJSON[Request](ctx, s.api, http.MethodPost, leavesPath+id+"/"+action+"/", body)
	if err != nil {
		s.logger.Warn("leave review upstream failed",
			zap.String("leave_id", id),
			zap.String("action", action),
			zap.Error(err),
		)
		return Request{}, err
	}

	n := s.inv.Apply(ctx, "leave."+action, reviewFanOut(id, updated)...)
	s.logger.Info("leave reviewed",
		zap.String("leave_id", id),
		zap.String("action", action),
		zap.String("status", updated.Status),
		zap.Int("invalidated", n),
	)
	return updated, nil
}

func (s *service) Cancel(ctx context.Context, id string) (Request, error) {
	if err := validateID(id); err != nil {
		return Request{}, err
	}
	updated, err := upstream.SendJSON[Request](ctx, s.api, http.MethodPost, leavesPath+id+"/cancel/", nil)
	if err != nil {
		s.logger.Warn("cancel leave upstream failed", zap.String("leave_id", id), zap.Error(err))
		return Request{}, err
	}

	s.inv.Apply(ctx, "leave.cancel", cancelFanOut(id, updated)...)
	return updated, nil
}

func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, "/?#") {
		return leaveerrors.ErrInvalidLeaveID
	}
	return nil
}

func validateDateRange(start, end string) error {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return leaveerrors.ErrInvalidDateRange
	}
	return nil
}
