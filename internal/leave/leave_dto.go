package leave

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Request is a leave request as the HR API returns it.
type Request struct {
	ID           upstream.ID   `json:"id"`
	Employee     upstream.Ref  `json:"employee"`
	EmployeeName string        `json:"employee_name,omitempty"`
	LeaveType    string        `json:"leave_type"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	TotalDays    float64       `json:"total_days"`
	Status       string        `json:"status"`
	Approver     *upstream.Ref `json:"approver,omitempty"`
	Reason       string        `json:"reason,omitempty"`
}

func (r Request) SubmitterID() string {
	return r.Employee.ID.String()
}

func (r Request) StatusValue() string {
	return r.Status
}

// Filter is the list query accepted by /leaves and /leaves/approvals.
type Filter struct {
	Status    string `form:"status"`
	LeaveType string `form:"leave_type"`
	Employee  string `form:"employee"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
}

// ForApprovals fills in the pending status when none was chosen.
func (f Filter) ForApprovals() Filter {
	if strings.TrimSpace(f.Status) == "" {
		f.Status = StatusPending
	}
	return f
}

func (f Filter) Values() url.Values {
	v := url.Values{}
	if s := strings.ToLower(strings.TrimSpace(f.Status)); s != "" {
		v.Set("status", s)
	}
	if f.LeaveType != "" {
		v.Set("leave_type", strings.ToLower(f.LeaveType))
	}
	if f.Employee != "" {
		v.Set("employee", f.Employee)
	}
	if f.StartDate != "" {
		v.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("end_date", f.EndDate)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		v.Set("search", s)
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

// CacheString is the canonical key part. url.Values.Encode sorts by key.
func (f Filter) CacheString() string {
	return f.Values().Encode()
}

type CreateRequest struct {
	LeaveType string  `json:"leave_type" binding:"required,leavetype"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	HalfDay   bool    `json:"half_day"`
	Reason    string  `json:"reason" binding:"max=1000"`
	Employee  *string `json:"employee,omitempty"`
}

type ApproveRequest struct {
	Comment string `json:"comment" binding:"max=500"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type createPayload struct {
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	HalfDay   bool    `json:"half_day,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Employee  *string `json:"employee,omitempty"`
}

type BalanceItem struct {
	LeaveType string  `json:"leave_type"`
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Planned   float64 `json:"planned"`
}

// Available is derived on every read and never stored.
func (b BalanceItem) Available() float64 {
	return b.Total - b.Used - b.Planned
}

type BalanceItemResponse struct {
	LeaveType string  `json:"leave_type"`
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Planned   float64 `json:"planned"`
	Available float64 `json:"available"`
}

type BalanceResponse struct {
	EmployeeID string                `json:"employee_id"`
	Year       int                   `json:"year"`
	Items      []BalanceItemResponse `json:"items"`
}

func toBalanceResponse(employeeID string, year int, items []BalanceItem) BalanceResponse {
	out := BalanceResponse{
		EmployeeID: employeeID,
		Year:       year,
		Items:      make([]BalanceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, BalanceItemResponse{
			LeaveType: it.LeaveType,
			Total:     it.Total,
			Used:      it.Used,
			Planned:   it.Planned,
			Available: it.Available(),
		})
	}
	return out
}

type BalanceQuery struct {
	Employee string `form:"employee"`
	Year     int    `form:"year" binding:"omitempty,min=2000,max=2100"`
}

type CalendarQuery struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
}
