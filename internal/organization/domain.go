package organization

const (
	msgHolidayListFailed    = "Unable to fetch holiday list."
	msgNoHolidayPackages    = "No holiday packages available right now."
	msgInsertHolidaysFailed = "Unable to insert holidays."
	msgPlansFailed          = "Unable to fetch subscription plans."
	msgNoPlans              = "No subscription plans available right now."
	msgCheckoutFailed       = "Unable to create checkout session."
	msgNoCheckoutURL        = "Checkout URL not received from server."
)

// Holiday is a public holiday offered in a regional package.
type Holiday struct {
	ID            string `json:"_id"`
	HolidayName   string `json:"holiday_name" validate:"required"`
	Date          string `json:"date" validate:"required"`
	TechnicalName string `json:"technical_name"`
	Region        string `json:"region"`
}

// HolidaysPackage groups the holidays of one region.
type HolidaysPackage struct {
	Region   string    `json:"region"`
	Holidays []Holiday `json:"holidays"`
}

// SubscriptionPlan is a purchasable plan with its price.
type SubscriptionPlan struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Images      []string      `json:"images"`
	Features    *PlanFeatures `json:"features,omitempty"`
	Metadata    PlanMetadata  `json:"metadata"`
	Active      bool          `json:"active"`
	Prices      *PlanPrice    `json:"prices,omitempty"`
}

// PlanFeatures is the marketing copy of a plan.
type PlanFeatures struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// PlanMetadata drives how a plan card is drawn.
type PlanMetadata struct {
	Name     string `json:"name"`
	Range    string `json:"range,omitempty"`
	Badge    string `json:"badge,omitempty"`
	CTALabel string `json:"ctaLabel,omitempty"`
	Footnote string `json:"footnote,omitempty"`
	Features string `json:"features,omitempty"`
}

// PlanPrice is the price attached to a plan.
type PlanPrice struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Checkout carries the hosted payment page for a purchase.
type Checkout struct {
	StripeCheckoutURL string `json:"stripeCheckoutURL"`
}

type holidaySelection struct {
	Holidays []Holiday `json:"holidays" validate:"min=1,dive"`
}

type insertHoliday struct {
	HolidayName string `json:"holidayName"`
	Date        string `json:"date"`
}

type holidayListData struct {
	HolidayList []HolidaysPackage `json:"holidayList"`
}
