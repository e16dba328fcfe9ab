package permission

import (
	"net/http"

	permissionerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("permission.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permission.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("permission request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func toResponse(st *Store) PermissionsResponse {
	snap := st.Snapshot()
	return PermissionsResponse{
		Permissions: snap.Permissions,
		Role:        snap.Role,
		IsAdmin:     st.IsAdmin(),
		Flags:       st.Flags(),
	}
}

func (h *Handler) Get(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		h.writeError(c, permissionerrors.ErrSessionRequired)
		return
	}
	response.Success(c, http.StatusOK, toResponse(h.service.Store(sessionID)), nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		h.writeError(c, permissionerrors.ErrSessionRequired)
		return
	}

	if _, err := h.service.Refresh(c.Request.Context(), sessionID); err != nil {
		h.logger.Warn("http refresh permissions failed", zap.Error(err))
		h.writeError(c, apperror.Wrap(err, permissionerrors.ErrPermissionsUnavailable.Code,
			permissionerrors.ErrPermissionsUnavailable.Message, permissionerrors.ErrPermissionsUnavailable.HTTPStatus))
		return
	}
	response.Success(c, http.StatusOK, toResponse(h.service.Store(sessionID)), nil)
}

func (h *Handler) Check(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		h.writeError(c, permissionerrors.ErrSessionRequired)
		return
	}

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	st := h.service.Store(sessionID)
	allowed := st.HasAnyPermission(req.Tokens...)
	if req.Mode == "all" {
		allowed = st.HasAllPermissions(req.Tokens...)
	}
	response.Success(c, http.StatusOK, CheckResponse{Allowed: allowed}, nil)
}
