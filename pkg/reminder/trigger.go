package reminder

import (
	"fmt"
	"time"
)

// TriggerSpec describes one scheduled reminder for the dispatcher.
// The calendar match is at most one of DayOfMonth (1-31, 0 means
// unset) or Weekday (nil means unset); with neither set the trigger
// matches every day.
type TriggerSpec struct {
	ID         string        `json:"id"`
	DayOfMonth int           `json:"day_of_month,omitempty"`
	Weekday    *time.Weekday `json:"weekday,omitempty"`
	Hour       int           `json:"hour"`
	Minute     int           `json:"minute"`
	Repeating  bool          `json:"repeating"`
	Title      string        `json:"title"`
	Body       string        `json:"body"`
	CategoryID string        `json:"category_id"`
}

// Validate checks the spec is schedulable.
func (t TriggerSpec) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trigger has no id")
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("trigger %s: invalid time %02d:%02d", t.ID, t.Hour, t.Minute)
	}
	if t.DayOfMonth != 0 && (t.DayOfMonth < 1 || t.DayOfMonth > 31) {
		return fmt.Errorf("trigger %s: invalid day of month %d", t.ID, t.DayOfMonth)
	}
	if t.DayOfMonth != 0 && t.Weekday != nil {
		return fmt.Errorf("trigger %s: both day-of-month and weekday set", t.ID)
	}
	return nil
}

func weekdayPtr(d time.Weekday) *time.Weekday {
	return &d
}
