package apiclient

import "net/url"

// Backend routes.
const (
	PathLogin                 = "/api/auth/login"
	PathResetOwnPassword      = "/api/auth/reset-password"
	PathUpcomingHolidays      = "/api/auth/view-upcoming-holidays"
	PathUpcomingBirthdays     = "/api/auth/view-upcoming-birthdays"
	PathOrganizationCreate    = "/api/organization/create"
	PathSubscriptionPlans     = "/api/organization/subscription-plan"
	PathHolidayList           = "/api/organization/holiday-list"
	PathInsertHolidays        = "/api/organization/insert-holidays"
	PathEmployeeCreate        = "/api/employee/create"
	PathEmployeeResetPassword = "/api/employee/reset-password"
	PathEmployeeList          = "/api/employee/list"
	PathLeaveEmployeeRequests = "/api/leave-request/employee-requests"
	PathLeaveUpdate           = "/api/leave-request/update"
	PathLeaveTotalBalance     = "/api/leave-request/total-leave-balance"
	PathLeaveRequest          = "/api/leave-request/request"
	PathLeaveListRequests     = "/api/leave-request/list-requests"
	pathSubscriptionBuy       = "/api/organization/subscription-buy/"
	pathEmployeeGet           = "/api/employee/get/"
	pathEmployeeUpdate        = "/api/employee/update/"
	pathEmployeeHierarchy     = "/api/employee/hierarchy/"
	pathLeaveCancel           = "/api/leave-request/cancel/"
)

// SubscriptionBuyPath is the checkout route for a price id.
func SubscriptionBuyPath(priceID string) string {
	return pathSubscriptionBuy + url.PathEscape(priceID)
}

// EmployeeGetPath is the detail route for an employee.
func EmployeeGetPath(id string) string {
	return pathEmployeeGet + url.PathEscape(id)
}

// EmployeeUpdatePath is the update route for an employee.
func EmployeeUpdatePath(id string) string {
	return pathEmployeeUpdate + url.PathEscape(id)
}

// EmployeeHierarchyPath lists the reports of a manager.
func EmployeeHierarchyPath(managerID string) string {
	return pathEmployeeHierarchy + url.PathEscape(managerID)
}

// LeaveCancelPath cancels one leave request.
func LeaveCancelPath(id string) string {
	return pathLeaveCancel + url.PathEscape(id)
}

// WithQuery appends q to path when it has any values.
func WithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
