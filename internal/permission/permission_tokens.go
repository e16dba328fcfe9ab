package permission

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

const (
	TokenEventsCreate = "events:create"
	TokenEventsUpdate = "events:update"
	TokenEventsDelete = "events:delete"

	TokenLeaveApprove = "leave:approve"
	TokenLeaveReject  = "leave:reject"
	TokenLeaveViewAll = "leave:view_all"

	TokenEmployeesView   = "employees:view"
	TokenEmployeesUpdate = "employees:update"
	TokenHRManage        = "hr:manage"

	TokenReimbursementsApprove      = "reimbursements:approve"
	TokenReimbursementsUpdateStatus = "reimbursements:update_status"

	TokenHireReview = "hire:review"
)
