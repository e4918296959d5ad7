package auth

import (
	"github.com/niyo-hr/niyo-web/internal/session"
)

// Failure messages shown when the backend gives no reason of its own.
const (
	msgLoginFailed          = "Login failed"
	msgInvalidLoginResponse = "Invalid login response received from server"
	msgRegistrationFailed   = "Registration failed"
	msgResetPasswordFailed  = "Failed to reset password"
	msgFetchHolidaysFailed  = "Failed to fetch holidays"
	msgFetchBirthdaysFailed = "Failed to fetch birthdays"
	msgLogoutSuccessful     = "Logout successful"
	msgPasswordReset        = "Password reset successfully"
)

// LoginInput is the login form.
type LoginInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,hasupper,haslower,hasdigit"`
	KeepLoggedIn bool   `json:"keepLoggedIn"`
}

// RegisterInput is the organization sign-up form.
type RegisterInput struct {
	OwnerName       string `json:"ownerName" validate:"required"`
	OwnerEmail      string `json:"ownerEmail" validate:"required,email"`
	Name            string `json:"name" validate:"required,min=2"`
	CompanyEmail    string `json:"companyEmail" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,hasupper,haslower,hasdigit"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Terms           bool   `json:"terms" validate:"accepted"`
}

// ValidationMessages customises the company name message.
func (RegisterInput) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required": "Company name must be at least 2 characters",
		"name.min":      "Company name must be at least 2 characters",
	}
}

// ResetPasswordInput changes the caller's own password.
type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=8,hasupper,haslower,hasdigit"`
}

// LoginResult carries the freshly persisted session.
type LoginResult struct {
	User *session.Session `json:"user"`
}

// SessionState describes who is calling.
type SessionState struct {
	User          *session.Session `json:"user"`
	Authenticated bool             `json:"authenticated"`
}

// MessageResult is a confirmation message.
type MessageResult struct {
	Message string `json:"message"`
}

// UpcomingHoliday is a company holiday shown on the dashboard.
type UpcomingHoliday struct {
	ID             string `json:"_id"`
	OrganizationID string `json:"organization_id,omitempty"`
	HolidayName    string `json:"holiday_name"`
	Date           string `json:"date"`
}

// UpcomingBirthday is a colleague's birthday shown on the dashboard.
type UpcomingBirthday struct {
	ID          string `json:"_id"`
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
}

// Backend wire shapes.

type loginData struct {
	LoginDetails *loginDetails `json:"loginDetails"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

type loginDetails struct {
	ID       string           `json:"_id"`
	Admin    *adminDetails    `json:"admin_id"`
	Employee *employeeDetails `json:"employee_id"`
}

type adminDetails struct {
	ID             string `json:"_id"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
}

type employeeDetails struct {
	ID             string `json:"_id"`
	FullName       string `json:"fullName"`
	OrganizationID string `json:"organizationId"`
}

type registerData struct {
	LoginCredentials *struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         *struct {
			AdminID        string `json:"adminId"`
			Email          string `json:"email"`
			Role           string `json:"role"`
			OrganizationID string `json:"organizationId"`
		} `json:"user"`
	} `json:"loginCredentials"`
}

type upcomingList[T any] struct {
	// The backend uses this key for birthdays as well.
	UpcomingHolidayList []T `json:"upcomingHolidayList"`
}
