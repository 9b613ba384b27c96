// Package notify dispatches lead notifications. Every Notifier is
// best-effort from the caller's point of view: callers log and drop errors.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

// Notification is the payload sent for a captured lead. City is the value
// as typed by the visitor, not the normalized key.
type Notification struct {
	LeadID    string    `json:"leadId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// Location renders "city - state", or whichever part is present.
func (n Notification) Location() string {
	switch {
	case n.City != "" && n.State != "":
		return n.City + " - " + n.State
	case n.City != "":
		return n.City
	default:
		return n.State
	}
}

// SourceLabel is the human readable acquisition source.
func (n Notification) SourceLabel() string {
	switch n.Source {
	case "popup_home":
		return "Home pop-up"
	case "contact_form":
		return "Contact form"
	default:
		return n.Source
	}
}

// Notifier delivers a lead notification.
type Notifier interface {
	Name() string
	NotifyLead(ctx context.Context, n Notification) error
}

// LogNotifier writes the notification to the request logger.
type LogNotifier struct{}

func (LogNotifier) Name() string { return "log" }

func (LogNotifier) NotifyLead(ctx context.Context, n Notification) error {
	applog.LogInfo(ctx, "lead notification",
		zap.String("leadId", n.LeadID),
		zap.String("source", n.Source),
		zap.String("location", n.Location()),
	)
	return nil
}

// Multi fans a notification out to every notifier and joins their errors.
// A failing notifier does not prevent the others from running.
type Multi []Notifier

func (m Multi) Name() string { return "multi" }

func (m Multi) NotifyLead(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.NotifyLead(ctx, n); err != nil {
			errs = append(errs, &Error{Notifier: notifier.Name(), cause: err})
		}
	}
	return errors.Join(errs...)
}

// Error attributes a delivery failure to a notifier.
type Error struct {
	Notifier string
	cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s notifier: %v", e.Notifier, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Compile-time interface checks
var (
	_ Notifier = LogNotifier{}
	_ Notifier = Multi(nil)
)
