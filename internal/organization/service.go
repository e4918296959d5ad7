package organization

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

// Service exposes organization setup and billing actions.
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

// HolidayPackages lists the regional holiday packages on offer.
func (s *Service) HolidayPackages(ctx context.Context, store session.Store) ([]HolidaysPackage, error) {
	res, err := s.client.Get(ctx, store, apiclient.PathHolidayList, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Inspect[holidayListData](res, msgHolidayListFailed)
	if err != nil {
		return nil, err
	}
	if len(payload.Data.HolidayList) == 0 {
		return nil, emptyFailure(res, payload.Message, msgNoHolidayPackages)
	}
	return payload.Data.HolidayList, nil
}

// InsertHolidays adds the selected holidays to the organization calendar.
func (s *Service) InsertHolidays(ctx context.Context, store session.Store, holidays []Holiday) (json.RawMessage, error) {
	if err := shared.Validate(s.validator, holidaySelection{Holidays: holidays}); err != nil {
		return nil, err
	}
	body := make([]insertHoliday, 0, len(holidays))
	for _, h := range holidays {
		body = append(body, insertHoliday{HolidayName: h.HolidayName, Date: h.Date})
	}
	res, err := s.client.Post(ctx, store, apiclient.PathInsertHolidays, body, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Inspect[json.RawMessage](res, msgInsertHolidaysFailed)
	if err != nil {
		return nil, err
	}
	s.logger.Info("holidays inserted", slog.Int("count", len(body)))
	return payload.Data, nil
}

// SubscriptionPlans lists the plans available for purchase.
func (s *Service) SubscriptionPlans(ctx context.Context, store session.Store) ([]SubscriptionPlan, error) {
	res, err := s.client.Get(ctx, store, apiclient.PathSubscriptionPlans, apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Inspect[[]SubscriptionPlan](res, msgPlansFailed)
	if err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 {
		return nil, emptyFailure(res, payload.Message, msgNoPlans)
	}
	plans := payload.Data
	for i := range plans {
		plans[i].Description = planDescription(plans[i])
	}
	return plans, nil
}

// BuySubscription opens a checkout session for a price.
func (s *Service) BuySubscription(ctx context.Context, store session.Store, priceID string) (*Checkout, error) {
	if strings.TrimSpace(priceID) == "" {
		return nil, shared.Invalid("priceId", shared.MsgRequired)
	}
	res, err := s.client.Get(ctx, store, apiclient.SubscriptionBuyPath(priceID), apiclient.WithAuth())
	if err != nil {
		return nil, err
	}
	payload, err := apiclient.Inspect[Checkout](res, msgCheckoutFailed)
	if err != nil {
		return nil, err
	}
	if payload.Data.StripeCheckoutURL == "" {
		return nil, emptyFailure(res, payload.Message, msgNoCheckoutURL)
	}
	return &Checkout{StripeCheckoutURL: payload.Data.StripeCheckoutURL}, nil
}

// planDescription prefers the feature body over the plain description.
func planDescription(plan SubscriptionPlan) *string {
	if plan.Features != nil && plan.Features.Body != "" {
		body := plan.Features.Body
		return &body
	}
	if plan.Description != nil && *plan.Description != "" {
		return plan.Description
	}
	return nil
}

func emptyFailure(res *apiclient.Result, message, fallback string) *apiclient.Failure {
	if message == "" {
		message = fallback
	}
	return &apiclient.Failure{Message: message, Status: res.Status}
}
