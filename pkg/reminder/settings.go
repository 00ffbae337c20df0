package reminder

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is the named cadence reminders are generated on.
type Frequency string

const (
	OncePerMonth  Frequency = "once_per_month"
	TwicePerMonth Frequency = "twice_per_month"
	OncePerWeek   Frequency = "once_per_week"
	TwicePerWeek  Frequency = "twice_per_week"
	EveryOtherDay Frequency = "every_other_day"
	Daily         Frequency = "daily"
	TwiceDaily    Frequency = "twice_daily"
)

// ParseFrequency validates a stored or user-supplied frequency name.
func ParseFrequency(v string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(v)))
	switch f {
	case OncePerMonth, TwicePerMonth, OncePerWeek, TwicePerWeek, EveryOtherDay, Daily, TwiceDaily:
		return f, nil
	default:
		return Daily, fmt.Errorf("unknown frequency %q", v)
	}
}

// Type is a kind of reminder content the user can enable.
type Type string

const (
	ReminderToAdd       Type = "reminder_to_add"
	ReminderOfIntention Type = "reminder_of_intention"
	Encouragement       Type = "encouragement"
	TimeOfDayGreeting   Type = "time_of_day"
)

// Clock is a time of day with no date component.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Window is a blackout time-of-day range. It may wrap past midnight
// (e.g. 22:00 to 08:00).
type Window struct {
	StartHour   int `json:"start_hour"`
	StartMinute int `json:"start_minute"`
	EndHour     int `json:"end_hour"`
	EndMinute   int `json:"end_minute"`
}

// Settings is the user's reminder preference set. It is an immutable
// value: the policy reads it, never mutates it, and callers pass a
// fresh copy on every schedule rebuild.
type Settings struct {
	Frequency    Frequency `json:"frequency"`
	EnabledTypes []Type    `json:"enabled_types"`
	MorningTime  Clock     `json:"morning_time"`
	EveningTime  Clock     `json:"evening_time"`

	BlackoutEnabled bool           `json:"blackout_enabled"`
	BlackoutWindow  Window         `json:"blackout_window"`
	BlackoutDays    []time.Weekday `json:"blackout_days"`

	// Pre-frequency single-purpose toggles, kept for migrated
	// profiles. Each adds its own trigger on top of the
	// frequency-derived set and is not deduplicated against it.
	DailyReminder   bool `json:"daily_reminder"`
	WeeklyReminder  bool `json:"weekly_reminder"`
	MonthlyReminder bool `json:"monthly_reminder"`
}

// DefaultSettings is the schedule used before the user has saved any
// preferences.
func DefaultSettings() Settings {
	return Settings{
		Frequency:    Daily,
		EnabledTypes: []Type{ReminderToAdd},
		MorningTime:  Clock{Hour: 8},
		EveningTime:  Clock{Hour: 20},
	}
}

// TypeEnabled reports whether the given content type is enabled.
func (s Settings) TypeEnabled(t Type) bool {
	for _, e := range s.EnabledTypes {
		if e == t {
			return true
		}
	}
	return false
}
