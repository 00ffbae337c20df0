package reminder

import (
	"math/rand"
	"strings"
)

// Notification copy. Titles follow a priority order: the
// reminder-to-add titles win when that type is enabled, then the
// of-intention title, then encouragement, then the generic fallback.
const (
	titleSetMorning  = "Time to set your intention"
	titleSetEvening  = "Set tomorrow's intention"
	titleOfIntention = "Remember your intention"
	titleEncourage   = "A little encouragement"
	titleFallback    = "Intent Pilot"

	fragmentSetIntention = "Take a moment to set your intention."
	fragmentOfIntention  = "Keep your current intention in mind."
	fragmentMorning      = "Start the day with focus."
	fragmentEvening      = "Wind down and look ahead."

	bodySeparator = " "
)

// EncouragementPool is the fixed set of encouragement fragments.
var EncouragementPool = []string{
	"Small steps count.",
	"You are closer than you think.",
	"One intention at a time.",
	"Progress, not perfection.",
	"Keep showing up.",
}

// Selector picks one fragment from a pool. The policy takes it as a
// parameter so tests can pin the choice instead of fighting
// randomness.
type Selector func(pool []string) string

// RandomSelector picks uniformly.
func RandomSelector(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.Intn(len(pool))]
}

// slot distinguishes morning from evening trigger content. Only the
// twice-daily evening trigger uses the evening variant.
type slot int

const (
	morningSlot slot = iota
	eveningSlot
)

func contentTitle(s Settings, sl slot) string {
	switch {
	case s.TypeEnabled(ReminderToAdd):
		if sl == eveningSlot {
			return titleSetEvening
		}
		return titleSetMorning
	case s.TypeEnabled(ReminderOfIntention):
		return titleOfIntention
	case s.TypeEnabled(Encouragement):
		return titleEncourage
	default:
		return titleFallback
	}
}

func contentBody(s Settings, sl slot, pick Selector) string {
	var parts []string
	if s.TypeEnabled(ReminderToAdd) {
		parts = append(parts, fragmentSetIntention)
	}
	if s.TypeEnabled(ReminderOfIntention) {
		parts = append(parts, fragmentOfIntention)
	}
	if s.TypeEnabled(Encouragement) {
		if f := pick(EncouragementPool); f != "" {
			parts = append(parts, f)
		}
	}
	if s.TypeEnabled(TimeOfDayGreeting) {
		if sl == eveningSlot {
			parts = append(parts, fragmentEvening)
		} else {
			parts = append(parts, fragmentMorning)
		}
	}
	return strings.Join(parts, bodySeparator)
}

// contentCategory maps a frequency to the intention scope its
// reminders ask about. Reply-capable categories are only handed out
// when the reminder-to-add type is enabled; everything else is a
// plain reminder.
func contentCategory(s Settings, f Frequency) string {
	if !s.TypeEnabled(ReminderToAdd) {
		return CategoryGeneralReminder
	}
	switch f {
	case OncePerWeek, TwicePerWeek:
		return CategoryWeeklyIntention
	case OncePerMonth, TwicePerMonth:
		return CategoryMonthlyIntention
	default:
		return CategoryDailyIntention
	}
}
