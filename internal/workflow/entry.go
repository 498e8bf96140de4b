package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/service"
)

// User-facing validation messages.
const (
	MsgMissingSeriesOrCountry = "Please select both a series and a country."
	MsgMissingCustomer        = "Please enter the customer name/abbreviation."
	MsgNoProducts             = "No product series available. Please go to \"Manage Products\" to import them first."
	MsgUnknownSeries          = "Series %q is not in the product list. Import it first."
)

// NotificationLifetime is how long a notification stays visible.
const NotificationLifetime = 3 * time.Second

// Validation errors returned by Form.Validate.
var (
	ErrMissingSeriesOrCountry = errors.New(MsgMissingSeriesOrCountry)
	ErrMissingCustomer        = errors.New(MsgMissingCustomer)
	ErrNoProducts             = errors.New(MsgNoProducts)
)

// UnknownSeriesError reports a series that is not in the product set.
type UnknownSeriesError struct {
	Series string
}

func (e *UnknownSeriesError) Error() string {
	return fmt.Sprintf(MsgUnknownSeries, e.Series)
}

// NotificationKind distinguishes success from error notifications.
type NotificationKind string

// Notification kinds.
const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

// Notification is the transient message shown after a form submission.
type Notification struct {
	Kind      NotificationKind `json:"type"`
	Message   string           `json:"message"`
	Warning   string           `json:"warning,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Expired reports whether the notification has outlived NotificationLifetime.
func (n Notification) Expired(now time.Time) bool {
	return now.Sub(n.CreatedAt) >= NotificationLifetime
}

// IsError reports whether the notification describes a failed submission.
func (n Notification) IsError() bool {
	return n.Kind == KindError
}

// Form holds the fields of the sale entry form.
type Form struct {
	Series           string `json:"seriesName"`
	Country          string `json:"country"`
	CustomCountry    string `json:"customCountry,omitempty"`
	UseCustomCountry bool   `json:"useCustomCountry,omitempty"`
	Customer         string `json:"customerName"`

	// Now overrides the notification clock. Nil means time.Now.
	Now func() time.Time `json:"-"`
}

// SelectCountry applies a choice from the suggested country list. Choosing
// model.OtherCountry switches the form to custom entry.
func (f *Form) SelectCountry(choice string) {
	if choice == model.OtherCountry {
		f.UseCustomCountry = true
		f.Country = ""
		return
	}
	f.UseCustomCountry = false
	f.CustomCountry = ""
	f.Country = choice
}

// EffectiveCountry returns the country the sale will be recorded against.
func (f *Form) EffectiveCountry() string {
	if f.UseCustomCountry {
		return strings.TrimSpace(f.CustomCountry)
	}
	return f.Country
}

// Validate checks the form against products without recording anything.
// The series must be one of products.
func (f *Form) Validate(products []string) error {
	if len(products) == 0 {
		return ErrNoProducts
	}
	if f.Series == "" || f.EffectiveCountry() == "" {
		return ErrMissingSeriesOrCountry
	}
	if !slices.Contains(products, f.Series) {
		return &UnknownSeriesError{Series: f.Series}
	}
	if strings.TrimSpace(f.Customer) == "" {
		return ErrMissingCustomer
	}
	return nil
}

// Reset clears every field of the form.
func (f *Form) Reset() {
	now := f.Now
	*f = Form{Now: now}
}

// Submit validates the form against the book's products and records the
// sale. Invalid input yields an error notification and nothing is recorded.
// On success the form is reset. A persistence failure is reported in the
// Warning field of an otherwise successful notification because the sale
// is already held in memory.
func (f *Form) Submit(ctx context.Context, book service.SaleBook) Notification {
	if err := f.Validate(book.Products()); err != nil {
		return f.notify(KindError, err.Error())
	}

	series := f.Series
	country := f.EffectiveCountry()
	customer := strings.TrimSpace(f.Customer)

	_, err := book.AddSale(ctx, series, country, customer)

	n := f.notify(KindSuccess, fmt.Sprintf("Recorded: %s sold to %s (%s)", series, country, customer))
	if err != nil {
		n.Warning = fmt.Sprintf("Sale kept in memory but could not be saved: %v", err)
	}
	f.Reset()
	return n
}

func (f *Form) notify(kind NotificationKind, msg string) Notification {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	return Notification{Kind: kind, Message: msg, CreatedAt: now()}
}
