package holiday

import (
	"net/http"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	now     func() time.Time
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("holiday.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.handler")
	}
	return &Handler{service: service, now: time.Now, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	if q.Year == 0 {
		q.Year = h.now().Year()
	}

	rows, meta, err := h.service.List(c.Request.Context(), q.Year)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("list holidays failed", zap.Int("year", q.Year), zap.String("code", httpErr.Code))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.SuccessCached(c, http.StatusOK, rows, nil, meta.Response())
}
