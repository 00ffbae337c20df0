package reminder

import (
	"fmt"
	"time"
)

// Policy expands reminder settings into a concrete trigger set.
// BuildSchedule always produces the full set from scratch; callers
// cancel the previous set before installing the new one, so a rebuild
// briefly leaves zero active triggers. That window is accepted rather
// than papered over with a diff protocol.
type Policy struct {
	// Pick chooses the encouragement fragment. Defaults to
	// RandomSelector.
	Pick Selector
}

// NewPolicy creates a policy with the default random selector.
func NewPolicy() *Policy {
	return &Policy{Pick: RandomSelector}
}

func (p *Policy) selector() Selector {
	if p.Pick == nil {
		return RandomSelector
	}
	return p.Pick
}

// BuildSchedule returns the trigger set for the given settings.
// Trigger ids are stable per frequency so repeated builds are
// diffable. Candidates falling in the blackout window or on a
// blackout day are dropped with no substitute.
func (p *Policy) BuildSchedule(s Settings) []TriggerSpec {
	var out []TriggerSpec

	add := func(t TriggerSpec, sl slot, day *time.Weekday) {
		if s.SuppressedBy(Clock{Hour: t.Hour, Minute: t.Minute}, day) {
			return
		}
		t.Title = contentTitle(s, sl)
		t.Body = contentBody(s, sl, p.selector())
		out = append(out, t)
	}

	cat := contentCategory(s, s.Frequency)
	morning := s.MorningTime
	evening := s.EveningTime

	switch s.Frequency {
	case OncePerMonth:
		add(TriggerSpec{
			ID: "reminder-monthly-day1", DayOfMonth: 1,
			Hour: morning.Hour, Minute: morning.Minute,
			Repeating: true, CategoryID: cat,
		}, morningSlot, nil)
	case TwicePerMonth:
		for _, day := range []int{1, 15} {
			add(TriggerSpec{
				ID: fmt.Sprintf("reminder-monthly-day%d", day), DayOfMonth: day,
				Hour: morning.Hour, Minute: morning.Minute,
				Repeating: true, CategoryID: cat,
			}, morningSlot, nil)
		}
	case OncePerWeek:
		add(TriggerSpec{
			ID: "reminder-weekly-sun", Weekday: weekdayPtr(time.Sunday),
			Hour: morning.Hour, Minute: morning.Minute,
			Repeating: true, CategoryID: cat,
		}, morningSlot, weekdayPtr(time.Sunday))
	case TwicePerWeek:
		for _, wd := range []time.Weekday{time.Sunday, time.Wednesday} {
			id := "reminder-weekly-sun"
			if wd == time.Wednesday {
				id = "reminder-weekly-wed"
			}
			add(TriggerSpec{
				ID: id, Weekday: weekdayPtr(wd),
				Hour: morning.Hour, Minute: morning.Minute,
				Repeating: true, CategoryID: cat,
			}, morningSlot, weekdayPtr(wd))
		}
	case EveryOtherDay:
		// Fires on even days 2..28 and resets each month. Not a true
		// alternation: day 28 to day 2 of a short month is a longer
		// gap. The cadence the product wants across month boundaries
		// is unconfirmed, so the fixed-day set stands.
		for day := 2; day <= 28; day += 2 {
			add(TriggerSpec{
				ID: fmt.Sprintf("reminder-alt-day%d", day), DayOfMonth: day,
				Hour: morning.Hour, Minute: morning.Minute,
				Repeating: true, CategoryID: cat,
			}, morningSlot, nil)
		}
	case TwiceDaily:
		add(TriggerSpec{
			ID:   "reminder-daily-morning",
			Hour: morning.Hour, Minute: morning.Minute,
			Repeating: true, CategoryID: cat,
		}, morningSlot, nil)
		add(TriggerSpec{
			ID:   "reminder-daily-evening",
			Hour: evening.Hour, Minute: evening.Minute,
			Repeating: true, CategoryID: cat,
		}, eveningSlot, nil)
	default: // Daily
		add(TriggerSpec{
			ID:   "reminder-daily",
			Hour: morning.Hour, Minute: morning.Minute,
			Repeating: true, CategoryID: cat,
		}, morningSlot, nil)
	}

	// Pre-frequency toggles add their own triggers on top of the
	// frequency set. They are not deduplicated against it: overlaps
	// stay visible in the output instead of being resolved silently.
	if s.DailyReminder {
		add(TriggerSpec{
			ID:   "legacy-daily",
			Hour: morning.Hour, Minute: morning.Minute,
			Repeating: true, CategoryID: contentCategory(s, Daily),
		}, morningSlot, nil)
	}
	if s.WeeklyReminder {
		add(TriggerSpec{
			ID: "legacy-weekly", Weekday: weekdayPtr(time.Sunday),
			Hour: morning.Hour, Minute: morning.Minute,
			Repeating: true, CategoryID: contentCategory(s, OncePerWeek),
		}, morningSlot, weekdayPtr(time.Sunday))
	}
	if s.MonthlyReminder {
		add(TriggerSpec{
			ID: "legacy-monthly", DayOfMonth: 1,
			Hour: morning.Hour, Minute: morning.Minute,
			Repeating: true, CategoryID: contentCategory(s, OncePerMonth),
		}, morningSlot, nil)
	}

	return out
}
