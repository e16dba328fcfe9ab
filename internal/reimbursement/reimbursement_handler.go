package reimbursement

import (
	"net/http"

	reimbursementerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/reimbursement/errors"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxPhotoSize = 10 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("reimbursement.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reimbursement.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("reimbursement request failed",
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
	response.SuccessCached(c, http.StatusOK, ToResponses(page.Results),
		response.NewCursorMeta(int64(page.Count), page.Next, page.Previous), meta.Response())
}

func (h *Handler) GetByID(c *gin.Context) {
	row, meta, err := h.service.Detail(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessCached(c, http.StatusOK, toResponse(row), nil, meta.Response())
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	row, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(row), nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	row, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(row), nil)
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoSize+1<<20)

	fh, err := c.FormFile("photo")
	if err != nil {
		h.writeServiceError(c, reimbursementerrors.ErrPhotoRequired)
		return
	}
	if fh.Size > maxPhotoSize {
		h.writeServiceError(c, reimbursementerrors.ErrPhotoTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, reimbursementerrors.ErrPhotoRequired)
		return
	}
	defer f.Close()

	row, err := h.service.UploadPhoto(c.Request.Context(), c.Param("id"), Photo{Filename: fh.Filename, Content: f})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(row), nil)
}
