package permission

// Snapshot is the session's permission state as fetched from the HR API.
// It is persisted with the session so a restarted gateway can restore it.
type Snapshot struct {
	Permissions []string `json:"permissions"`
	Role        string   `json:"role"`
}

// Flags are convenience projections of the current set. They are computed on
// every call.
type Flags struct {
	CanManageEvents         bool `json:"can_manage_events"`
	CanApproveLeave         bool `json:"can_approve_leave"`
	CanManageHR             bool `json:"can_manage_hr"`
	CanViewStaff            bool `json:"can_view_staff"`
	CanManageReimbursements bool `json:"can_manage_reimbursements"`
	CanReviewHires          bool `json:"can_review_hires"`
}

type PermissionsResponse struct {
	Permissions []string `json:"permissions"`
	Role        string   `json:"role"`
	IsAdmin     bool     `json:"is_admin"`
	Flags       Flags    `json:"flags"`
}

type CheckRequest struct {
	Tokens []string `json:"tokens" binding:"required,min=1,dive,required"`
	Mode   string   `json:"mode" binding:"omitempty,oneof=any all"`
}

type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

// myPermissionsPayload is the body of GET /core/my-permissions/.
type myPermissionsPayload struct {
	Permissions []string `json:"permissions"`
	Category    string   `json:"category"`
}
