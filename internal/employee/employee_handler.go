package employee

import (
	"net/http"

	employeeerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/employee/errors"
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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	var f Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	page, meta, err := h.service.List(c.Request.Context(), c.GetString("user_id"), f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, page.Results,
		response.NewCursorMeta(int64(page.Count), page.Next, page.Previous), meta.Response())
}

func (h *Handler) GetByID(c *gin.Context) {
	emp, meta, err := h.service.Detail(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, emp, nil, meta.Response())
}

func (h *Handler) Me(c *gin.Context) {
	emp, meta, err := h.service.Me(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, emp, nil, meta.Response())
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	emp, err := h.service.UpdateMe(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, emp, nil)
}

func (h *Handler) Section(c *gin.Context) {
	section, ok := ParseSection(c.Param("section"))
	if !ok {
		h.writeServiceError(c, employeeerrors.ErrUnknownSection)
		return
	}

	rows, meta, err := h.service.Section(c.Request.Context(), c.GetString("user_id"), c.Param("id"), section)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, rows, nil, meta.Response())
}

func (h *Handler) Dashboard(c *gin.Context) {
	resp, err := h.service.Dashboard(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
