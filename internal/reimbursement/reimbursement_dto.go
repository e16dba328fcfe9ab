package reimbursement

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type StatusRecord struct {
	Status    string `json:"status"`
	Comment   string `json:"comment,omitempty"`
	ChangedAt string `json:"changed_at,omitempty"`
}

type Reimbursement struct {
	ID           upstream.ID     `json:"id"`
	Expense      upstream.Ref    `json:"expense"`
	Amount       decimal.Decimal `json:"amount"`
	SubmittedBy  upstream.Ref    `json:"submitted_by"`
	Description  string          `json:"description,omitempty"`
	BillDate     string          `json:"bill_date,omitempty"`
	Status       string          `json:"status,omitempty"`
	LatestStatus *StatusRecord   `json:"latest_status,omitempty"`
	Photos       []string        `json:"photos,omitempty"`
}

// CurrentStatus prefers the latest status-history entry, then the flat
// status field, then pending.
func (r Reimbursement) CurrentStatus() string {
	if r.LatestStatus != nil && r.LatestStatus.Status != "" {
		return r.LatestStatus.Status
	}
	if r.Status != "" {
		return r.Status
	}
	return StatusPending
}

func (r Reimbursement) SubmitterID() string {
	return r.SubmittedBy.ID.String()
}

func (r Reimbursement) StatusValue() string {
	return r.CurrentStatus()
}

type Response struct {
	Reimbursement
	CurrentStatus string `json:"current_status"`
}

func toResponse(r Reimbursement) Response {
	return Response{Reimbursement: r, CurrentStatus: r.CurrentStatus()}
}

func ToResponses(rows []Reimbursement) []Response {
	out := make([]Response, 0, len(rows))
	for _, r := range rows {
		out = append(out, toResponse(r))
	}
	return out
}

type Filter struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
}

func (f Filter) Values() url.Values {
	v := url.Values{}
	if s := strings.ToLower(strings.TrimSpace(f.Status)); s != "" {
		v.Set("status", s)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		v.Set("search", s)
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

func (f Filter) CacheString() string {
	return f.Values().Encode()
}

type CreateRequest struct {
	Expense     string          `json:"expense" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=1000"`
	BillDate    string          `json:"bill_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=pending approved rejected paid"`
	Comment string `json:"comment" binding:"max=500"`
}

// UnmarshalJSON lowercases the status so "Approved" binds as "approved".
func (r *UpdateStatusRequest) UnmarshalJSON(b []byte) error {
	type plain UpdateStatusRequest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
	*r = UpdateStatusRequest(p)
	return nil
}
