package reimbursement

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	reimbursementerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/reimbursement/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"go.uber.org/zap"
)

const reimbursementsPath = "/finance_management/reimbursements/"

const resource = "reimbursements"

var listPrefix = querycache.Prefix{resource, "list"}

func detailPrefix(id string) querycache.Prefix {
	return querycache.Prefix{resource, "detail", id}
}

type Photo struct {
	Filename string
	Content  io.Reader
}

type Service interface {
	List(ctx context.Context, scope string, f Filter) (upstream.Page[Reimbursement], querycache.Meta, error)
	Detail(ctx context.Context, scope, id string) (Reimbursement, querycache.Meta, error)
	Create(ctx context.Context, req CreateRequest) (Reimbursement, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (Reimbursement, error)
	UploadPhoto(ctx context.Context, id string, photo Photo) (Reimbursement, error)
}

type service struct {
	api    upstream.API
	cache  *querycache.Cache
	inv    *querycache.Invalidator
	policy querycache.Policy
	logger *zap.Logger
}

func NewService(api upstream.API, inv *querycache.Invalidator, policy querycache.Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("reimbursement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.service")
	}
	if policy == nil {
		policy = querycache.DefaultPolicy()
	}
	return &service{api: api, cache: inv.Cache(), inv: inv, policy: policy, logger: l}
}

func (s *service) List(ctx context.Context, scope string, f Filter) (upstream.Page[Reimbursement], querycache.Meta, error) {
	query := f.Values()
	key := querycache.NewKey(resource, "list", f.CacheString()).Scoped(scope)
	return querycache.Fetch[upstream.Page[Reimbursement]](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceReimbursements),
		querycache.JSONFetcher(func(ctx context.Context) (upstream.Page[Reimbursement], error) {
			return upstream.GetList[Reimbursement](ctx, s.api, reimbursementsPath, query, false)
		}))
}

func (s *service) Detail(ctx context.Context, scope, id string) (Reimbursement, querycache.Meta, error) {
	if !validID(id) {
		return Reimbursement{}, querycache.Meta{}, reimbursementerrors.ErrInvalidReimbursementID
	}
	key := querycache.NewKey(resource, "detail", id).Scoped(scope)
	return querycache.Fetch[Reimbursement](ctx, s.cache, key, s.policy.MaxAge(querycache.ResourceReimbursements),
		querycache.JSONFetcher(func(ctx context.Context) (Reimbursement, error) {
			return upstream.GetJSON[Reimbursement](ctx, s.api, reimbursementsPath+id+"/", nil)
		}))
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Reimbursement, error) {
	if !req.Amount.IsPositive() {
		return Reimbursement{}, reimbursementerrors.ErrInvalidAmount
	}

	created, err := upstream.SendJSON[Reimbursement](ctx, s.api, http.MethodPost, reimbursementsPath, req)
	if err != nil {
		s.logger.Warn("create reimbursement upstream failed", zap.Error(err))
		return Reimbursement{}, err
	}

	s.inv.Apply(ctx, "reimbursement.create", listPrefix)
	s.logger.Info("reimbursement created",
		zap.String("reimbursement_id", created.ID.String()),
		zap.String("amount", created.Amount.StringFixed(2)),
	)
	return created, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (Reimbursement, error) {
	if !validID(id) {
		return Reimbursement{}, reimbursementerrors.ErrInvalidReimbursementID
	}
	req.Status = strings.ToLower(req.Status)

	updated, err := upstream.SendJSON[Reimbursement](ctx, s.api, http.MethodPost, reimbursementsPath+id+"/update_status/", req)
	if err != nil {
		s.logger.Warn("update reimbursement status upstream failed",
			zap.String("reimbursement_id", id),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		return Reimbursement{}, err
	}

	s.inv.Apply(ctx, "reimbursement.update_status", listPrefix, detailPrefix(id))
	return updated, nil
}

func (s *service) UploadPhoto(ctx context.Context, id string, photo Photo) (Reimbursement, error) {
	if !validID(id) {
		return Reimbursement{}, reimbursementerrors.ErrInvalidReimbursementID
	}
	if photo.Content == nil {
		return Reimbursement{}, reimbursementerrors.ErrPhotoRequired
	}

	body, err := s.api.Upload(ctx, reimbursementsPath+id+"/upload_photo/", upstream.Form{
		Field:    "photo",
		Filename: photo.Filename,
		File:     photo.Content,
	})
	if err != nil {
		s.logger.Warn("upload reimbursement photo failed", zap.String("reimbursement_id", id), zap.Error(err))
		return Reimbursement{}, err
	}

	s.inv.Apply(ctx, "reimbursement.upload_photo", detailPrefix(id))
	return upstream.DecodeJSON[Reimbursement](body)
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/?#")
}
