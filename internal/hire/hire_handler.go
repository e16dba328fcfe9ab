package hire

import (
	"encoding/json"
	"io"
	"net/http"

	hireerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/hire/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxRegistrationBody = 64 << 10

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("hire.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hire.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("hire request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) passThrough(c *gin.Context, out json.RawMessage, err error) {
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out, nil)
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	out, err := h.service.Verify(c.Request.Context(), req)
	h.passThrough(c, out, err)
}

func (h *Handler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	out, err := h.service.SendOTP(c.Request.Context(), req)
	h.passThrough(c, out, err)
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	out, err := h.service.VerifyOTP(c.Request.Context(), req)
	h.passThrough(c, out, err)
}

func (h *Handler) Register(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRegistrationBody))
	if err != nil {
		h.writeServiceError(c, hireerrors.ErrInvalidRegistration)
		return
	}
	out, err := h.service.Register(c.Request.Context(), body)
	h.passThrough(c, out, err)
}

func (h *Handler) Pending(c *gin.Context) {
	rows, meta, err := h.service.Pending(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, rows, nil, meta.Response())
}

func (h *Handler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	out, err := h.service.Review(c.Request.Context(), c.Param("id"), req)
	h.passThrough(c, out, err)
}
