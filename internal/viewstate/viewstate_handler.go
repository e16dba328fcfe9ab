package viewstate

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/leave"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/reimbursement"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"
	viewstateerrors "github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/viewstate/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Query struct {
	Tab    string `form:"tab"`
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
}

type View[R any] struct {
	Tab   Tab `json:"tab"`
	Count int `json:"count"`
	Rows  []R `json:"rows"`
}

type Handler struct {
	leaves         leave.Service
	reimbursements reimbursement.Service
	logger         *zap.Logger
	now            func() time.Time
}

func NewHandler(leaves leave.Service, reimbursements reimbursement.Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("viewstate.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("viewstate.handler")
	}
	return &Handler{leaves: leaves, reimbursements: reimbursements, logger: l, now: time.Now}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("view request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) params(c *gin.Context) (Params, Query, error) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		return Params{}, q, apperror.MapValidationError(err)
	}
	tab, ok := ParseTab(q.Tab)
	if !ok {
		return Params{}, q, viewstateerrors.ErrUnknownTab
	}
	p := Params{Tab: tab, Status: q.Status, Search: q.Search, UserID: c.GetString("user_id")}
	if tab == TabMyRequests && p.UserID == "" {
		return Params{}, q, viewstateerrors.ErrIdentityRequired
	}
	return p, q, nil
}

// upstreamSearch is the search term sent to the HR API. Only the staff tab
// searches remotely; other tabs share one unsearched list.
func upstreamSearch(p Params) string {
	if p.Tab.SearchUpstream() {
		return p.Search
	}
	return ""
}

// pendingDefault reports whether the approvals tab was opened without a
// status. The HR API is then asked for pending rows only.
func pendingDefault(p Params) bool {
	return p.Tab == TabApprovals && strings.TrimSpace(p.Status) == ""
}

func (h *Handler) leaveView(c *gin.Context) (View[leave.Request], querycache.Meta, bool) {
	p, q, err := h.params(c)
	if err != nil {
		h.writeServiceError(c, err)
		return View[leave.Request]{}, querycache.Meta{}, false
	}
	ctx := c.Request.Context()
	f := leave.Filter{Search: upstreamSearch(p), Page: q.Page}
	list := h.leaves.List
	if pendingDefault(p) {
		list = h.leaves.Approvals
	}
	page, meta, err := list(ctx, p.UserID, f)
	if err != nil {
		h.writeServiceError(c, err)
		return View[leave.Request]{}, meta, false
	}
	rows := Build(page.Results, p)
	return View[leave.Request]{Tab: p.Tab, Count: len(rows), Rows: rows}, meta, true
}

func (h *Handler) reimbursementView(c *gin.Context) (View[reimbursement.Response], querycache.Meta, bool) {
	p, q, err := h.params(c)
	if err != nil {
		h.writeServiceError(c, err)
		return View[reimbursement.Response]{}, querycache.Meta{}, false
	}
	f := reimbursement.Filter{Search: upstreamSearch(p), Page: q.Page}
	if pendingDefault(p) {
		f.Status = reimbursement.StatusPending
	}
	page, meta, err := h.reimbursements.List(c.Request.Context(), p.UserID, f)
	if err != nil {
		h.writeServiceError(c, err)
		return View[reimbursement.Response]{}, meta, false
	}
	rows := Build(reimbursement.ToResponses(page.Results), p)
	return View[reimbursement.Response]{Tab: p.Tab, Count: len(rows), Rows: rows}, meta, true
}

func (h *Handler) Leaves(c *gin.Context) {
	view, meta, ok := h.leaveView(c)
	if !ok {
		return
	}
	response.SuccessCached(c, http.StatusOK, view, nil, meta.Response())
}

func (h *Handler) Reimbursements(c *gin.Context) {
	view, meta, ok := h.reimbursementView(c)
	if !ok {
		return
	}
	response.SuccessCached(c, http.StatusOK, view, nil, meta.Response())
}

func (h *Handler) ExportLeaves(c *gin.Context) {
	view, _, ok := h.leaveView(c)
	if !ok {
		return
	}
	writeWorkbook(c, h, "Leaves", leaveColumns, view)
}

func (h *Handler) ExportReimbursements(c *gin.Context) {
	view, _, ok := h.reimbursementView(c)
	if !ok {
		return
	}
	writeWorkbook(c, h, "Reimbursements", reimbursementColumns, view)
}

func writeWorkbook[R any](c *gin.Context, h *Handler, sheet string, cols []Column[R], view View[R]) {
	f, err := Export(sheet, cols, view.Rows)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s_%s_%s.xlsx", sheet, view.Tab, h.now().Format("20060102"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("write workbook failed", zap.String("sheet", sheet), zap.Error(err))
	}
}
