package employees

import "github.com/niyo-hr/niyo-web/internal/shared"

const (
	msgListFailed          = "Failed to fetch employees"
	msgCreateFailed        = "Failed to create employee"
	msgDetailsFailed       = "Failed to fetch employee details"
	msgUpdateFailed        = "Failed to update employee"
	msgHierarchyFailed     = "Failed to fetch employee hierarchy"
	msgResetPasswordFailed = "Failed to reset password"
)

// Employment types accepted by the backend.
const (
	TypeFullTime = "full_time"
	TypePartTime = "part_time"
	TypeContract = "contract"
	TypeIntern   = "intern"
)

// Employee is a directory entry as the backend returns it.
type Employee struct {
	ID             string          `json:"_id"`
	FullName       string          `json:"fullName"`
	CompanyEmail   string          `json:"companyEmail"`
	PersonalEmail  string          `json:"personalEmail,omitempty"`
	PhoneNumber    string          `json:"phoneNumber,omitempty"`
	Address        string          `json:"address,omitempty"`
	ManagerDetails *ManagerDetails `json:"managerDetails,omitempty"`
	ManagerID      string          `json:"managerId,omitempty"`
	JobTitle       string          `json:"jobTitle"`
	HireDate       string          `json:"hireDate"`
	DateOfBirth    string          `json:"dateOfBirth,omitempty"`
	Gender         string          `json:"gender"`
	EmployeeType   string          `json:"employeeType"`
	IsActive       *bool           `json:"isActive,omitempty"`
	OffBoardDate   string          `json:"offBoardDate,omitempty"`
	OrganizationID string          `json:"organizationId,omitempty"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at,omitempty"`
}

// ManagerDetails is the manager summary embedded in an Employee.
type ManagerDetails struct {
	FullName string `json:"fullName"`
}

// ListInput pages through the directory, optionally filtered by name.
type ListInput struct {
	Page  int    `json:"page" validate:"min=1"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
	Name  string `json:"name,omitempty"`
}

// EmployeePage is one page of the directory.
type EmployeePage struct {
	EmployeeList []Employee        `json:"employeeList"`
	Total        int               `json:"total"`
	Pagination   shared.Pagination `json:"pagination"`
}

// EmployeeInput is the create and update form.
type EmployeeInput struct {
	FullName       string `json:"fullName" validate:"required"`
	CompanyEmail   string `json:"companyEmail" validate:"required,email"`
	PersonalEmail  string `json:"personalEmail" validate:"omitempty,email"`
	JobTitle       string `json:"jobTitle" validate:"required"`
	PhoneNumber    string `json:"phoneNumber"`
	Address        string `json:"address"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth    string `json:"dateOfBirth" validate:"omitempty,isodate"`
	HireDate       string `json:"hireDate" validate:"required,isodate"`
	EmployeeType   string `json:"employeeType" validate:"required,oneof=full_time part_time contract intern"`
	IsActive       bool   `json:"isActive"`
	OffBoardDate   string `json:"offBoardDate" validate:"omitempty,isodate"`
	ManagerID      string `json:"managerId,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// ResetPasswordInput sets a new password for an employee.
type ResetPasswordInput struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required,min=8,hasupper,haslower,hasdigit"`
}
