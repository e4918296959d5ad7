package leaves

import "encoding/json"

const (
	msgEmployeeRequestsFailed = "Failed to fetch leave requests"
	msgUpdateFailed           = "Failed to update leave request"
	msgBalanceFailed          = "Failed to fetch leave balance"
	msgApplyFailed            = "Failed to apply for leave"
	msgListFailed             = "Failed to list leave requests"
	msgCancelFailed           = "Failed to cancel leave request"
	msgEndBeforeStart         = "End date must be on or after the start date"
)

// Leave request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveType is the category a request draws from.
type LeaveType struct {
	ID           string `json:"_id"`
	Name         string `json:"leave_type_name"`
	HexColorCode string `json:"hex_color_code"`
}

// EmployeeDetails is the requester summary embedded in a LeaveRequest.
type EmployeeDetails struct {
	ID           string `json:"_id"`
	FullName     string `json:"fullName"`
	CompanyEmail string `json:"companyEmail"`
	JobTitle     string `json:"jobTitle"`
}

// LeaveRequest is one request as the backend returns it.
type LeaveRequest struct {
	ID              string           `json:"_id"`
	LeaveType       *LeaveType       `json:"leave_type_id,omitempty"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	TotalDays       float64          `json:"total_days"`
	Reason          string           `json:"reason"`
	Status          string           `json:"status"`
	CreatedAt       string           `json:"created_at"`
	EmployeeDetails *EmployeeDetails `json:"employee_details,omitempty"`
	ApprovedBy      json.RawMessage  `json:"approved_by,omitempty"`
}

// Balance is the allowance and usage for one leave type.
type Balance struct {
	ID             string  `json:"_id"`
	Name           string  `json:"leave_type_name"`
	HexColorCode   string  `json:"hex_color_code"`
	TotalLeaves    float64 `json:"total_leaves"`
	UtilizedLeaves float64 `json:"utilized_leaves"`
}

// BalanceSummary lists the caller's balances.
type BalanceSummary struct {
	LeaveBalanceList []Balance `json:"leaveBalanceList"`
}

// EmployeeRequestsInput filters one employee's requests.
type EmployeeRequestsInput struct {
	EmployeeID string `json:"employeeId"`
	Page       int    `json:"page" validate:"gte=0"`
	Limit      int    `json:"limit" validate:"gte=0,lte=100"`
	Status     string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// EmployeeRequests is one page of an employee's requests.
type EmployeeRequests struct {
	LeaveRequests      []LeaveRequest `json:"leaveRequests"`
	TotalLeaveRequests int            `json:"totalLeaveRequests"`
}

// UpdateStatusInput approves or rejects a request.
type UpdateStatusInput struct {
	LeaveRequestID string `json:"leaveRequestId" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// ApplyInput files a new leave request. Dates use YYYY-MM-DD.
type ApplyInput struct {
	LeaveTypeID string  `json:"leaveTypeId" validate:"required"`
	StartDate   string  `json:"startDate" validate:"required,isodate"`
	EndDate     string  `json:"endDate" validate:"required,isodate"`
	TotalDays   float64 `json:"totalDays" validate:"gt=0"`
	Reason      string  `json:"reason" validate:"required"`
}

// ListInput filters the organization-wide request list.
type ListInput struct {
	Page        int    `json:"page" validate:"gte=0"`
	Limit       int    `json:"limit" validate:"gte=0,lte=100"`
	Status      string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Search      string `json:"search"`
	LeaveTypeID string `json:"leaveTypeId"`
	StartDate   string `json:"startDate" validate:"omitempty,isodate"`
	EndDate     string `json:"endDate" validate:"omitempty,isodate"`
}

// RequestList is the normalised organization-wide list.
type RequestList struct {
	List  []LeaveRequest `json:"list"`
	Total int            `json:"total"`
}

// CancelInput describes the balance to credit back when cancelling.
type CancelInput struct {
	LeaveTypeName string   `json:"leaveTypeName,omitempty"`
	TotalDays     *float64 `json:"totalDays,omitempty"`
	CreditType    string   `json:"creditType,omitempty"`
	HexColorCode  string   `json:"hexColorCode,omitempty"`
}
