package intention

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/mklimuk/intent-pilot/pkg/reminder"
	"github.com/mklimuk/intent-pilot/pkg/scope"
)

// Dispatcher is the slice of the notification dispatcher the router
// needs: scheduling a single confirmation or error trigger.
type Dispatcher interface {
	Schedule(t reminder.TriggerSpec) error
}

// WidgetSync re-projects the active intention after a change.
type WidgetSync interface {
	Refresh(ctx context.Context) error
}

// RoutingResult describes what handling one reminder response did.
type RoutingResult struct {
	// Created is the new intention, when one was stored.
	Created *Intention
	// Trigger is the confirmation or error notification emitted, if
	// any.
	Trigger *reminder.TriggerSpec
	// OpenComposer asks the UI collaborator to navigate to the
	// intention-creation entry point.
	OpenComposer bool
}

// Router turns an inbound reminder response (action + category + free
// text) into an intention. Each response is handled atomically; the
// only state between invocations lives in the store.
type Router struct {
	store      Store
	dispatcher Dispatcher
	widget     WidgetSync
	cal        scope.Config
	now        func() time.Time
}

// NewRouter wires a response router. widget may be nil when no
// projection target is configured.
func NewRouter(store Store, dispatcher Dispatcher, widget WidgetSync, cal scope.Config) *Router {
	return &Router{
		store:      store,
		dispatcher: dispatcher,
		widget:     widget,
		cal:        cal,
		now:        time.Now,
	}
}

// ScopeForCategory maps a reminder category to the intention scope it
// asks about. Unknown categories fall back to Day.
func ScopeForCategory(categoryID string) scope.Scope {
	switch categoryID {
	case reminder.CategoryWeeklyIntention:
		return scope.Week
	case reminder.CategoryMonthlyIntention:
		return scope.Month
	default:
		return scope.Day
	}
}

// HandleResponse processes one inbound response.
//
// A set action with only whitespace is a silent no-op: skipping a
// reminder is not an error. A store failure on this path degrades to
// an error notification instead of propagating, so the user at least
// sees that their input was received.
func (r *Router) HandleResponse(ctx context.Context, actionID, categoryID, freeText string) (RoutingResult, error) {
	switch actionID {
	case reminder.ActionSetIntention:
		return r.handleSet(ctx, categoryID, freeText)
	case reminder.ActionSkip:
		return RoutingResult{}, nil
	default:
		// The implicit open action: hand off to the composer.
		return RoutingResult{OpenComposer: true}, nil
	}
}

func (r *Router) handleSet(ctx context.Context, categoryID, freeText string) (RoutingResult, error) {
	text := strings.TrimSpace(freeText)
	if text == "" {
		return RoutingResult{}, nil
	}

	s := ScopeForCategory(categoryID)
	now := r.now()

	var anchor time.Time
	switch s {
	case scope.Week, scope.Month:
		anchor = r.cal.Start(s, now)
	default:
		anchor = now
	}

	it, err := New(text, s, anchor, false)
	if err != nil {
		return RoutingResult{}, err
	}

	if err := r.store.Create(ctx, it); err != nil {
		log.Printf("response router: create %s intention failed: %v", s, err)
		trigger := r.errorTrigger(now, err)
		r.emit(trigger)
		return RoutingResult{Trigger: &trigger}, nil
	}

	trigger := r.confirmationTrigger(now, it)
	r.emit(trigger)

	if r.widget != nil {
		if err := r.widget.Refresh(ctx); err != nil {
			log.Printf("response router: widget refresh failed: %v", err)
		}
	}

	return RoutingResult{Created: it, Trigger: &trigger}, nil
}

func (r *Router) emit(t reminder.TriggerSpec) {
	if r.dispatcher == nil {
		return
	}
	if err := r.dispatcher.Schedule(t); err != nil {
		log.Printf("response router: schedule %s failed: %v", t.ID, err)
	}
}

func (r *Router) confirmationTrigger(now time.Time, it *Intention) reminder.TriggerSpec {
	return reminder.TriggerSpec{
		ID:         "set-intention-confirm",
		Hour:       now.Hour(),
		Minute:     now.Minute(),
		Repeating:  false,
		Title:      "Intention set",
		Body:       it.Scope.String() + ": " + it.Text,
		CategoryID: reminder.CategoryGeneralReminder,
	}
}

func (r *Router) errorTrigger(now time.Time, err error) reminder.TriggerSpec {
	body := "We couldn't save your intention. Please try again."
	if errors.Is(err, ErrDuplicateRange) {
		body = "You already have an intention for this period."
	}
	return reminder.TriggerSpec{
		ID:         "set-intention-error",
		Hour:       now.Hour(),
		Minute:     now.Minute(),
		Repeating:  false,
		Title:      "Something went wrong",
		Body:       body,
		CategoryID: reminder.CategoryGeneralReminder,
	}
}
