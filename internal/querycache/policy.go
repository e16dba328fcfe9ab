package querycache

import "time"

// Resource names a family of cached queries that share a staleness window.
type Resource string

const (
	ResourceHolidays            Resource = "holidays"
	ResourceLeaveApprovals      Resource = "leave_approvals"
	ResourceLeaveList           Resource = "leave_list"
	ResourceLeaveDetail         Resource = "leave_detail"
	ResourceLeaveBalance        Resource = "leave_balance"
	ResourceLeaveStatistics     Resource = "leave_statistics"
	ResourceLeaveCalendar       Resource = "leave_calendar"
	ResourceEmployees           Resource = "employees"
	ResourceProfile             Resource = "profile"
	ResourceReimbursements      Resource = "reimbursements"
	ResourceNotifications       Resource = "notifications"
	ResourceHirePendingApproval Resource = "hire_pending"
)

const fallbackMaxAge = time.Minute

type Policy map[Resource]time.Duration

func DefaultPolicy() Policy {
	return Policy{
		ResourceHolidays:            24 * time.Hour,
		ResourceLeaveApprovals:      30 * time.Second,
		ResourceHirePendingApproval: 30 * time.Second,
		ResourceNotifications:       30 * time.Second,
		ResourceLeaveList:           2 * time.Minute,
		ResourceLeaveDetail:         5 * time.Minute,
		ResourceLeaveBalance:        5 * time.Minute,
		ResourceLeaveStatistics:     5 * time.Minute,
		ResourceLeaveCalendar:       10 * time.Minute,
		ResourceEmployees:           10 * time.Minute,
		ResourceProfile:             5 * time.Minute,
		ResourceReimbursements:      2 * time.Minute,
	}
}

func (p Policy) MaxAge(r Resource) time.Duration {
	if d, ok := p[r]; ok && d > 0 {
		return d
	}
	return fallbackMaxAge
}

// WithOverrides returns a copy with configured windows applied. Unknown
// names are kept so new resources can be tuned without a release.
func (p Policy) WithOverrides(overrides map[string]time.Duration) Policy {
	out := make(Policy, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		if v > 0 {
			out[Resource(k)] = v
		}
	}
	return out
}

// Longest is used to size store retention so no entry expires before its
// staleness window.
func (p Policy) Longest() time.Duration {
	var longest time.Duration
	for _, d := range p {
		if d > longest {
			longest = d
		}
	}
	return longest
}
