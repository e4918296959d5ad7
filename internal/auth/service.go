package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

// Service wraps the authentication actions against the backend.
type Service struct {
	client    *apiclient.Client
	validator *validator.Validate
	logger    *slog.Logger
}

// NewService constructs a new Service.
func NewService(client *apiclient.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, validator: shared.NewValidator(), logger: logger}
}

// Login authenticates against the backend and persists the resulting session.
func (s *Service) Login(ctx context.Context, store session.Store, in LoginInput) (*LoginResult, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	res, err := s.client.Post(ctx, store, apiclient.PathLogin, map[string]any{
		"email":        in.Email,
		"password":     in.Password,
		"keepLoggedIn": in.KeepLoggedIn,
	})
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Expect[loginData](res, msgLoginFailed)
	if err != nil {
		return nil, err
	}

	data := payload.Data
	var admin *adminDetails
	var employee *employeeDetails
	if data.LoginDetails != nil {
		admin, employee = data.LoginDetails.Admin, data.LoginDetails.Employee
	}
	if (admin == nil && employee == nil) || data.AccessToken == "" {
		return nil, apiclient.Fail(msgInvalidLoginResponse)
	}

	sess := &session.Session{
		Email:        in.Email,
		Role:         session.RoleEmployee,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}
	if admin != nil {
		sess.UserID = admin.ID
		sess.Name = admin.FullName
		sess.OrganizationID = admin.OrganizationID
		if admin.Role != "" {
			sess.Role = admin.Role
		}
	}
	if employee != nil {
		sess.UserID = firstNonEmpty(sess.UserID, employee.ID)
		sess.Name = firstNonEmpty(sess.Name, employee.FullName)
		sess.OrganizationID = firstNonEmpty(sess.OrganizationID, employee.OrganizationID)
	}

	maxAge := session.DefaultMaxAge
	if in.KeepLoggedIn {
		maxAge = session.ExtendedMaxAge
	}
	if err := store.Set(ctx, sess, maxAge); err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			return nil, apiclient.Fail(msgInvalidLoginResponse)
		}
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.logger.Info("login", slog.String("user_id", sess.UserID), slog.String("role", sess.Role))
	return &LoginResult{User: sess}, nil
}

// RegisterOrganization creates an organization and signs its owner in when
// the backend hands back credentials.
func (s *Service) RegisterOrganization(ctx context.Context, store session.Store, in RegisterInput) (json.RawMessage, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	res, err := s.client.Post(ctx, store, apiclient.PathOrganizationCreate, map[string]string{
		"ownerName":    in.OwnerName,
		"ownerEmail":   in.OwnerEmail,
		"name":         in.Name,
		"companyEmail": in.CompanyEmail,
		"password":     in.Password,
	})
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Tolerate[registerData](res, msgRegistrationFailed)
	if err != nil {
		return nil, err
	}

	creds := payload.Data.LoginCredentials
	if creds != nil && creds.User != nil && creds.User.AdminID != "" && creds.User.Email != "" {
		sess := &session.Session{
			UserID:         creds.User.AdminID,
			Email:          creds.User.Email,
			Role:           creds.User.Role,
			OrganizationID: creds.User.OrganizationID,
			AccessToken:    creds.AccessToken,
			RefreshToken:   creds.RefreshToken,
		}
		if err := store.Set(ctx, sess, session.ExtendedMaxAge); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
		s.logger.Info("organization registered", slog.String("user_id", sess.UserID))
	}
	return res.Data, nil
}

// Logout destroys the current session.
func (s *Service) Logout(ctx context.Context, store session.Store) (*MessageResult, error) {
	if err := store.Delete(ctx); err != nil {
		return nil, fmt.Errorf("delete session: %w", err)
	}
	return &MessageResult{Message: msgLogoutSuccessful}, nil
}

// CurrentSession reports the caller's session. It never fails.
func (s *Service) CurrentSession(ctx context.Context, store session.Store) SessionState {
	if store == nil {
		return SessionState{}
	}
	sess := store.Get(ctx)
	return SessionState{User: sess, Authenticated: sess != nil}
}

// ResetPassword changes the caller's own password.
func (s *Service) ResetPassword(ctx context.Context, store session.Store, in ResetPasswordInput) (*MessageResult, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	sess := store.Get(ctx)
	if !sess.HasToken() {
		return nil, shared.ErrUnauthorized
	}
	headers := make(map[string]string, 2)
	if sess.AccessToken != "" {
		headers[apiclient.HeaderAccessToken] = sess.AccessToken
	}
	if sess.RefreshToken != "" {
		headers[apiclient.HeaderRefreshToken] = sess.RefreshToken
	}
	res, err := s.client.Post(ctx, store, apiclient.PathResetOwnPassword,
		map[string]string{"password": in.Password}, apiclient.WithHeaders(headers))
	if err != nil {
		return nil, err
	}
	if _, err := apiclient.ExpectMutation(res, msgResetPasswordFailed); err != nil {
		return nil, err
	}
	return &MessageResult{Message: msgPasswordReset}, nil
}

// UpcomingHolidays lists the organization's next holidays.
func (s *Service) UpcomingHolidays(ctx context.Context, store session.Store) ([]UpcomingHoliday, error) {
	return upcoming[UpcomingHoliday](ctx, s.client, store, apiclient.PathUpcomingHolidays, msgFetchHolidaysFailed)
}

// UpcomingBirthdays lists the colleagues with a birthday coming up.
func (s *Service) UpcomingBirthdays(ctx context.Context, store session.Store) ([]UpcomingBirthday, error) {
	return upcoming[UpcomingBirthday](ctx, s.client, store, apiclient.PathUpcomingBirthdays, msgFetchBirthdaysFailed)
}

func upcoming[T any](ctx context.Context, client *apiclient.Client, store session.Store, path, fallback string) ([]T, error) {
	res, err := client.Get(ctx, store, path, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Tolerate[upcomingList[T]](res, fallback)
	if err != nil {
		return nil, err
	}
	if payload.Data.UpcomingHolidayList == nil {
		return []T{}, nil
	}
	return payload.Data.UpcomingHolidayList, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
