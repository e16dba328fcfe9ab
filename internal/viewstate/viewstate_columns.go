package viewstate

import (
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/leave"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/reimbursement"
)

var leaveColumns = []Column[leave.Request]{
	{Header: "ID", Width: 8, Value: func(r leave.Request) any { return r.ID.String() }},
	{Header: "Employee", Width: 24, Value: func(r leave.Request) any {
		if r.EmployeeName != "" {
			return r.EmployeeName
		}
		return r.Employee.ID.String()
	}},
	{Header: "Leave Type", Width: 14, Value: func(r leave.Request) any { return r.LeaveType }},
	{Header: "Start", Width: 12, Value: func(r leave.Request) any { return r.StartDate }},
	{Header: "End", Width: 12, Value: func(r leave.Request) any { return r.EndDate }},
	{Header: "Days", Width: 8, Value: func(r leave.Request) any { return r.TotalDays }},
	{Header: "Status", Width: 12, Value: func(r leave.Request) any { return r.Status }},
	{Header: "Reason", Width: 40, Value: func(r leave.Request) any { return r.Reason }},
}

var reimbursementColumns = []Column[reimbursement.Response]{
	{Header: "ID", Width: 8, Value: func(r reimbursement.Response) any { return r.ID.String() }},
	{Header: "Expense", Width: 10, Value: func(r reimbursement.Response) any { return r.Expense.ID.String() }},
	{Header: "Submitted By", Width: 24, Value: func(r reimbursement.Response) any {
		if r.SubmittedBy.Name != "" {
			return r.SubmittedBy.Name
		}
		return r.SubmittedBy.ID.String()
	}},
	{Header: "Amount", Width: 14, Value: func(r reimbursement.Response) any { return r.Amount.StringFixed(2) }},
	{Header: "Bill Date", Width: 12, Value: func(r reimbursement.Response) any { return r.BillDate }},
	{Header: "Status", Width: 12, Value: func(r reimbursement.Response) any { return r.CurrentStatus }},
	{Header: "Description", Width: 40, Value: func(r reimbursement.Response) any { return r.Description }},
}
