// Package dashboard assembles the widgets shown on the home page.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/auth"
	"github.com/niyo-hr/niyo-web/internal/leaves"
	"github.com/niyo-hr/niyo-web/internal/session"
)

const msgWidgetFailed = "Unable to load this section right now."

// Calendar supplies the upcoming events widgets.
type Calendar interface {
	UpcomingHolidays(ctx context.Context, store session.Store) ([]auth.UpcomingHoliday, error)
	UpcomingBirthdays(ctx context.Context, store session.Store) ([]auth.UpcomingBirthday, error)
}

// Balances supplies the leave balance widget.
type Balances interface {
	TotalBalance(ctx context.Context, store session.Store) (*leaves.BalanceSummary, error)
}

// Home is the view model of the home page.
type Home struct {
	Widgets []Widget
}

// Widget is one independently loaded panel.
type Widget struct {
	Title string
	Error string
	Empty string
	Items []Item
}

// Item is one row of a widget.
type Item struct {
	Label  string
	Date   string
	Detail string
}

// Loader fetches every widget of the home page concurrently.
type Loader struct {
	calendar Calendar
	balances Balances
	logger   *slog.Logger
}

// NewLoader constructs a Loader.
func NewLoader(calendar Calendar, balances Balances, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{calendar: calendar, balances: balances, logger: logger}
}

// Load fills every widget. A failing widget keeps its own error message and
// leaves the others intact, except when the backend rejected the session:
// then the redirect is returned and the remaining calls are cancelled.
func (l *Loader) Load(ctx context.Context, store session.Store) (*Home, error) {
	home := &Home{Widgets: []Widget{
		{Title: "Upcoming holidays", Empty: "No holidays coming up."},
		{Title: "Upcoming birthdays", Empty: "No birthdays coming up."},
		{Title: "Leave balance", Empty: "No leave balance to show."},
	}}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		holidays, err := l.calendar.UpcomingHolidays(ctx, store)
		if err != nil {
			return l.fail(&home.Widgets[0], err)
		}
		for _, h := range holidays {
			home.Widgets[0].Items = append(home.Widgets[0].Items, Item{Label: h.HolidayName, Date: h.Date})
		}
		return nil
	})
	g.Go(func() error {
		birthdays, err := l.calendar.UpcomingBirthdays(ctx, store)
		if err != nil {
			return l.fail(&home.Widgets[1], err)
		}
		for _, b := range birthdays {
			home.Widgets[1].Items = append(home.Widgets[1].Items, Item{Label: b.FullName, Date: b.DateOfBirth})
		}
		return nil
	})
	g.Go(func() error {
		summary, err := l.balances.TotalBalance(ctx, store)
		if err != nil {
			return l.fail(&home.Widgets[2], err)
		}
		for _, b := range summary.LeaveBalanceList {
			home.Widgets[2].Items = append(home.Widgets[2].Items, Item{
				Label:  b.Name,
				Detail: fmt.Sprintf("%g of %g days left", b.TotalLeaves-b.UtilizedLeaves, b.TotalLeaves),
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return home, nil
}

// fail records err on the widget. Only a redirect escapes the widget.
func (l *Loader) fail(w *Widget, err error) error {
	if apiclient.IsRedirect(err) {
		return err
	}
	var failure *apiclient.Failure
	if errors.As(err, &failure) {
		w.Error = failure.Message
		return nil
	}
	if errors.Is(err, context.Canceled) {
		w.Error = msgWidgetFailed
		return nil
	}
	l.logger.Error("load dashboard widget", slog.String("widget", w.Title), slog.Any("error", err))
	w.Error = msgWidgetFailed
	return nil
}
