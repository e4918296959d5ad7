package leaves

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

// Keys the backend has used for the organization-wide list and its count.
var (
	listKeys  = []string{"leaveRequestList", "leaveRequests", "leave_requests", "requests"}
	totalKeys = []string{"total", "totalCount", "total_count"}
)

// Service exposes the leave workflow actions.
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

// EmployeeRequests lists one employee's requests.
func (s *Service) EmployeeRequests(ctx context.Context, store session.Store, in EmployeeRequestsInput) (*EmployeeRequests, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	q := url.Values{}
	setQuery(q, "employeeId", in.EmployeeID)
	setQueryInt(q, "page", in.Page)
	setQueryInt(q, "limit", in.Limit)
	setQuery(q, "status", in.Status)

	res, err := s.client.Get(ctx, store, apiclient.WithQuery(apiclient.PathLeaveEmployeeRequests, q), apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Expect[EmployeeRequests](res, msgEmployeeRequestsFailed)
	if err != nil {
		return nil, err
	}
	out := payload.Data
	if out.LeaveRequests == nil {
		out.LeaveRequests = []LeaveRequest{}
	}
	return &out, nil
}

// UpdateStatus moves a request to a new status.
func (s *Service) UpdateStatus(ctx context.Context, store session.Store, in UpdateStatusInput) (json.RawMessage, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	res, err := s.client.Put(ctx, store, apiclient.PathLeaveUpdate, in, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	if _, err := apiclient.Tolerate[json.RawMessage](res, msgUpdateFailed); err != nil {
		return nil, err
	}
	s.logger.Info("leave request updated", slog.String("leave_request_id", in.LeaveRequestID), slog.String("status", in.Status))
	return res.Data, nil
}

// TotalBalance returns the caller's balance per leave type.
func (s *Service) TotalBalance(ctx context.Context, store session.Store) (*BalanceSummary, error) {
	res, err := s.client.Get(ctx, store, apiclient.PathLeaveTotalBalance, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Expect[BalanceSummary](res, msgBalanceFailed)
	if err != nil {
		return nil, err
	}
	out := payload.Data
	if out.LeaveBalanceList == nil {
		out.LeaveBalanceList = []Balance{}
	}
	return &out, nil
}

// Apply files a new request for the caller.
func (s *Service) Apply(ctx context.Context, store session.Store, in ApplyInput) (json.RawMessage, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	// Both dates are YYYY-MM-DD once validated, so they order lexically.
	if in.EndDate < in.StartDate {
		return nil, shared.Invalid("endDate", msgEndBeforeStart)
	}
	res, err := s.client.Post(ctx, store, apiclient.PathLeaveRequest, in, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	return apiclient.ExpectMutation(res, msgApplyFailed)
}

// List returns the organization-wide request list.
func (s *Service) List(ctx context.Context, store session.Store, in ListInput) (*RequestList, error) {
	if err := shared.Validate(s.validator, in); err != nil {
		return nil, err
	}
	q := url.Values{}
	setQueryInt(q, "page", in.Page)
	setQueryInt(q, "limit", in.Limit)
	setQuery(q, "status", in.Status)
	setQuery(q, "search", in.Search)
	setQuery(q, "leaveTypeId", in.LeaveTypeID)
	setQuery(q, "startDate", in.StartDate)
	setQuery(q, "endDate", in.EndDate)

	res, err := s.client.Get(ctx, store, apiclient.WithQuery(apiclient.PathLeaveListRequests, q), apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Expect[json.RawMessage](res, msgListFailed)
	if err != nil {
		return nil, err
	}
	return normaliseList(payload.Data), nil
}

// Cancel withdraws a request and credits its days back.
func (s *Service) Cancel(ctx context.Context, store session.Store, id string, in CancelInput) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.Invalid("id", shared.MsgRequired)
	}
	res, err := s.client.Delete(ctx, store, apiclient.LeaveCancelPath(id), in, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	return apiclient.ExpectMutation(res, msgCancelFailed)
}

// normaliseList picks the first list key present and the first non-zero
// count. Anything unreadable becomes an empty list.
func normaliseList(data json.RawMessage) *RequestList {
	out := &RequestList{List: []LeaveRequest{}}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return out
	}
	for _, key := range listKeys {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			continue
		}
		var list []LeaveRequest
		if err := json.Unmarshal(raw, &list); err == nil && list != nil {
			out.List = list
		}
		break
	}
	for _, key := range totalKeys {
		var total float64
		if err := json.Unmarshal(fields[key], &total); err == nil && total != 0 {
			out.Total = int(total)
			break
		}
	}
	return out
}

func setQuery(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setQueryInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
