package hire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	hireerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/hire/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"go.uber.org/zap"
)

const (
	verifyPath    = "/hr/hire/verify/"
	sendOTPPath   = "/hr/hire/send-otp/"
	verifyOTPPath = "/hr/hire/verify-otp/"
	registerPath  = "/hr/hire/register/"
	pendingPath   = "/hr/hire/pending-approvals/"
	hirePath      = "/hr/hire/"
)

var (
	pendingPrefix   = querycache.Prefix{"hire", "pending"}
	employeesPrefix = querycache.Prefix{"employees", "list"}
)

type Service interface {
	Verify(ctx context.Context, req VerifyRequest) (json.RawMessage, error)
	SendOTP(ctx context.Context, req SendOTPRequest) (json.RawMessage, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (json.RawMessage, error)
	Register(ctx context.Context, body json.RawMessage) (json.RawMessage, error)
	Pending(ctx context.Context, scope string) ([]Candidate, querycache.Meta, error)
	Review(ctx context.Context, id string, req ReviewRequest) (json.RawMessage, error)
}

type service struct {
	api    upstream.API
	cache  *querycache.Cache
	inv    *querycache.Invalidator
	policy querycache.Policy
	logger *zap.Logger
}

func NewService(api upstream.API, inv *querycache.Invalidator, policy querycache.Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("hire.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hire.service")
	}
	if policy == nil {
		policy = querycache.DefaultPolicy()
	}
	return &service{api: api, cache: inv.Cache(), inv: inv, policy: policy, logger: l}
}

func (s *service) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	out, err := s.api.Do(ctx, upstream.Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		s.logger.Warn("hire upstream call failed", zap.String("path", path), zap.Int("status", upstream.StatusOf(err)))
		return nil, err
	}
	return json.RawMessage(out), nil
}

func (s *service) Verify(ctx context.Context, req VerifyRequest) (json.RawMessage, error) {
	return s.post(ctx, verifyPath, req)
}

func (s *service) SendOTP(ctx context.Context, req SendOTPRequest) (json.RawMessage, error) {
	return s.post(ctx, sendOTPPath, req)
}

func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (json.RawMessage, error) {
	return s.post(ctx, verifyOTPPath, req)
}

// Register forwards the candidate form unchanged. Nothing is cached.
func (s *service) Register(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, hireerrors.ErrInvalidRegistration
	}
	return s.post(ctx, registerPath, json.RawMessage(trimmed))
}

func (s *service) Pending(ctx context.Context, scope string) ([]Candidate, querycache.Meta, error) {
	key := querycache.NewKey("hire", "pending").Scoped(scope)
	page, meta, err := querycache.Fetch[upstream.Page[Candidate]](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceHirePendingApproval),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[Candidate], error) {
			return upstream.GetList[Candidate](ctx, s.api, pendingPath, nil, false)
		}))
	if err != nil {
		return nil, meta, err
	}
	return page.Results, meta, nil
}

func (s *service) Review(ctx context.Context, id string, req ReviewRequest) (json.RawMessage, error) {
	if id == "" || strings.ContainsAny(id, "/?#") {
		return nil, hireerrors.ErrInvalidCandidateID
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Decision == DecisionReject && req.Comment == "" {
		return nil, hireerrors.ErrRejectionReasonRequired
	}

	out, err := s.post(ctx, hirePath+id+"/review/", req)
	if err != nil {
		return nil, err
	}

	s.inv.Apply(ctx, "hire.review", pendingPrefix, employeesPrefix)
	s.logger.Info("candidate reviewed", zap.String("candidate_id", id), zap.String("decision", req.Decision))
	return out, nil
}
