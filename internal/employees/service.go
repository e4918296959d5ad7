package employees

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

// Service exposes the employee directory actions.
type Service struct {
	client    *apiclient.Client
	validator *validator.Validate
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(client *apiclient.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, validator: shared.NewValidator(), logger: logger}
}

// List returns one page of the directory.
func (s *Service) List(ctx context.Context, store session.Store, in ListInput) (*EmployeePage, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	res, err := s.client.Post(ctx, store, apiclient.PathEmployeeList, in, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Expect[struct {
		EmployeeList []Employee `json:"employeeList"`
		Total        int        `json:"total"`
	}](res, msgListFailed)
	if err != nil {
		return nil, err
	}
	list := payload.Data.EmployeeList
	if list == nil {
		list = []Employee{}
	}
	return &EmployeePage{
		EmployeeList: list,
		Total:        payload.Data.Total,
		Pagination:   shared.NewPagination(in.Page, in.Limit, payload.Data.Total),
	}, nil
}

// Create adds an employee.
func (s *Service) Create(ctx context.Context, store session.Store, in EmployeeInput) (json.RawMessage, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	res, err := s.client.Post(ctx, store, apiclient.PathEmployeeCreate, in, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	return apiclient.ExpectMutation(res, msgCreateFailed)
}

// Get returns one employee.
func (s *Service) Get(ctx context.Context, store session.Store, id string) (*Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.Invalid("id", shared.MsgRequired)
	}
	res, err := s.client.Get(ctx, store, apiclient.EmployeeGetPath(id), apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Expect[Employee](res, msgDetailsFailed)
	if err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// Update replaces an employee's record.
func (s *Service) Update(ctx context.Context, store session.Store, id string, in EmployeeInput) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.Invalid("id", shared.MsgRequired)
	}
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	res, err := s.client.Put(ctx, store, apiclient.EmployeeUpdatePath(id), in, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	return apiclient.ExpectMutation(res, msgUpdateFailed)
}

// Hierarchy lists the direct reports of a manager.
func (s *Service) Hierarchy(ctx context.Context, store session.Store, managerID string) ([]Employee, error) {
	if strings.TrimSpace(managerID) == "" {
		return nil, shared.Invalid("managerId", shared.MsgRequired)
	}
	res, err := s.client.Get(ctx, store, apiclient.EmployeeHierarchyPath(managerID), apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Expect[[]Employee](res, msgHierarchyFailed)
	if err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return []Employee{}, nil
	}
	return payload.Data, nil
}

// ResetPassword sets a new password for an employee.
func (s *Service) ResetPassword(ctx context.Context, store session.Store, in ResetPasswordInput) (json.RawMessage, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	res, err := s.client.Post(ctx, store, apiclient.PathEmployeeResetPassword, in, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	raw, err := apiclient.ExpectMutation(res, msgResetPasswordFailed)
	if err != nil {
		return nil, err
	}
	s.logger.Info("employee password reset", slog.String("employee_id", in.EmployeeID))
	return raw, nil
}
