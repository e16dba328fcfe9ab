package leave

import (
	"net/http"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	now     func() time.Time
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, now: time.Now, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func writePage(c *gin.Context, page upstream.Page[Request], meta querycache.Meta) {
	response.SuccessCached(c, http.StatusOK, page.Results,
		response.NewCursorMeta(int64(page.Count), page.Next, page.Previous), meta.Response())
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
	writePage(c, page, meta)
}

func (h *Handler) Approvals(c *gin.Context) {
	var f Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	page, meta, err := h.service.Approvals(c.Request.Context(), c.GetString("user_id"), f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writePage(c, page, meta)
}

func (h *Handler) Team(c *gin.Context) {
	rows, meta, err := h.service.Team(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, rows, nil, meta.Response())
}

func (h *Handler) Upcoming(c *gin.Context) {
	rows, meta, err := h.service.Upcoming(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, rows, nil, meta.Response())
}

func (h *Handler) GetByID(c *gin.Context) {
	row, meta, err := h.service.Detail(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, row, nil, meta.Response())
}

// Balance defaults to the caller's own employee record and the current year.
func (h *Handler) Balance(c *gin.Context) {
	var q BalanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	if q.Employee == "" {
		q.Employee = c.GetString("employee_id")
	}
	if q.Year == 0 {
		q.Year = h.now().Year()
	}

	resp, meta, err := h.service.Balance(c.Request.Context(), c.GetString("user_id"), q.Employee, q.Year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, resp, nil, meta.Response())
}

func (h *Handler) Statistics(c *gin.Context) {
	data, meta, err := h.service.Statistics(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, data, nil, meta.Response())
}

func (h *Handler) Calendar(c *gin.Context) {
	var q CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	now := h.now()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = int(now.Month())
	}

	data, meta, err := h.service.Calendar(c.Request.Context(), c.GetString("user_id"), q.Year, q.Month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, data, nil, meta.Response())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	var req ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.Approve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
