package notify

import (
	"time"

	"github.com/mklimuk/intent-pilot/pkg/reminder"
)

// nextFireHorizonDays bounds the forward scan. Every valid calendar
// match recurs at least yearly, so anything past this is a spec that
// can never fire (e.g. day-of-month 31 is still found within two
// months).
const nextFireHorizonDays = 370

// NextFire returns the first instant strictly after from at which the
// trigger matches, in the given location. The zero time means the
// spec never matches within the horizon.
func NextFire(t reminder.TriggerSpec, from time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := from.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	for i := 0; i <= nextFireHorizonDays; i++ {
		if dayMatches(t, day) {
			candidate := time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, loc)
			if candidate.After(from) {
				return candidate
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}
}

func dayMatches(t reminder.TriggerSpec, day time.Time) bool {
	if t.DayOfMonth != 0 {
		return day.Day() == t.DayOfMonth
	}
	if t.Weekday != nil {
		return day.Weekday() == *t.Weekday
	}
	return true
}
