package reminder

import (
	"strings"
	"testing"
	"time"
)

func firstSelector(pool []string) string {
	return pool[0]
}

func testPolicy() *Policy {
	return &Policy{Pick: firstSelector}
}

func baseSettings(f Frequency) Settings {
	return Settings{
		Frequency:    f,
		EnabledTypes: []Type{ReminderToAdd},
		MorningTime:  Clock{Hour: 8},
		EveningTime:  Clock{Hour: 20},
	}
}

func TestBuildScheduleDaily(t *testing.T) {
	got := testPolicy().BuildSchedule(baseSettings(Daily))
	if len(got) != 1 {
		t.Fatalf("expected 1 trigger, got %d", len(got))
	}
	tr := got[0]
	if tr.ID != "reminder-daily" {
		t.Errorf("id = %q", tr.ID)
	}
	if tr.DayOfMonth != 0 || tr.Weekday != nil {
		t.Errorf("daily trigger must have no calendar match, got day=%d weekday=%v", tr.DayOfMonth, tr.Weekday)
	}
	if !tr.Repeating {
		t.Error("daily trigger must repeat")
	}
	if tr.Hour != 8 || tr.Minute != 0 {
		t.Errorf("time = %02d:%02d, want 08:00", tr.Hour, tr.Minute)
	}
}

func TestBuildScheduleTwiceDaily(t *testing.T) {
	got := testPolicy().BuildSchedule(baseSettings(TwiceDaily))
	if len(got) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(got))
	}
	if got[0].Hour != 8 || got[1].Hour != 20 {
		t.Errorf("times = %d and %d, want 8 and 20", got[0].Hour, got[1].Hour)
	}
	if got[0].Title != titleSetMorning {
		t.Errorf("morning title = %q", got[0].Title)
	}
	if got[1].Title != titleSetEvening {
		t.Errorf("evening title = %q", got[1].Title)
	}
}

func TestBuildScheduleTwicePerMonth(t *testing.T) {
	got := testPolicy().BuildSchedule(baseSettings(TwicePerMonth))
	if len(got) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(got))
	}
	days := map[int]string{}
	for _, tr := range got {
		days[tr.DayOfMonth] = tr.ID
	}
	if days[1] != "reminder-monthly-day1" || days[15] != "reminder-monthly-day15" {
		t.Errorf("days = %v, want 1 and 15 with day-suffixed ids", days)
	}
}

func TestBuildScheduleWeekly(t *testing.T) {
	got := testPolicy().BuildSchedule(baseSettings(OncePerWeek))
	if len(got) != 1 {
		t.Fatalf("expected 1 trigger, got %d", len(got))
	}
	if got[0].Weekday == nil || *got[0].Weekday != time.Sunday {
		t.Errorf("weekday = %v, want Sunday", got[0].Weekday)
	}
	if got[0].CategoryID != CategoryWeeklyIntention {
		t.Errorf("category = %q", got[0].CategoryID)
	}

	got = testPolicy().BuildSchedule(baseSettings(TwicePerWeek))
	if len(got) != 2 {
		t.Fatalf("expected 2 triggers, got %d", len(got))
	}
	wds := map[time.Weekday]bool{}
	for _, tr := range got {
		if tr.Weekday != nil {
			wds[*tr.Weekday] = true
		}
	}
	if !wds[time.Sunday] || !wds[time.Wednesday] {
		t.Errorf("weekdays = %v, want Sunday and Wednesday", wds)
	}
}

func TestBuildScheduleEveryOtherDay(t *testing.T) {
	got := testPolicy().BuildSchedule(baseSettings(EveryOtherDay))
	if len(got) != 14 {
		t.Fatalf("expected 14 triggers, got %d", len(got))
	}
	want := 2
	for _, tr := range got {
		if tr.DayOfMonth != want {
			t.Errorf("day = %d, want %d", tr.DayOfMonth, want)
		}
		want += 2
	}
}

func TestBuildScheduleCategories(t *testing.T) {
	tests := []struct {
		freq Frequency
		want string
	}{
		{Daily, CategoryDailyIntention},
		{TwiceDaily, CategoryDailyIntention},
		{EveryOtherDay, CategoryDailyIntention},
		{OncePerWeek, CategoryWeeklyIntention},
		{TwicePerWeek, CategoryWeeklyIntention},
		{OncePerMonth, CategoryMonthlyIntention},
		{TwicePerMonth, CategoryMonthlyIntention},
	}
	for _, tt := range tests {
		got := testPolicy().BuildSchedule(baseSettings(tt.freq))
		for _, tr := range got {
			if tr.CategoryID != tt.want {
				t.Errorf("%s: category = %q, want %q", tt.freq, tr.CategoryID, tt.want)
			}
		}
	}

	// Without the reminder-to-add type the category carries no reply.
	s := baseSettings(Daily)
	s.EnabledTypes = []Type{Encouragement}
	got := testPolicy().BuildSchedule(s)
	if got[0].CategoryID != CategoryGeneralReminder {
		t.Errorf("category = %q, want %q", got[0].CategoryID, CategoryGeneralReminder)
	}
}

func TestBuildScheduleContentPriority(t *testing.T) {
	// Only reminder-to-add enabled: its title and only its fragment.
	s := baseSettings(Daily)
	got := testPolicy().BuildSchedule(s)
	if got[0].Title != titleSetMorning {
		t.Errorf("title = %q, want %q", got[0].Title, titleSetMorning)
	}
	if got[0].Body != fragmentSetIntention {
		t.Errorf("body = %q, want exactly %q", got[0].Body, fragmentSetIntention)
	}

	// All types: fragments concatenated in priority order.
	s.EnabledTypes = []Type{TimeOfDayGreeting, Encouragement, ReminderOfIntention, ReminderToAdd}
	got = testPolicy().BuildSchedule(s)
	wantBody := strings.Join([]string{
		fragmentSetIntention,
		fragmentOfIntention,
		EncouragementPool[0],
		fragmentMorning,
	}, bodySeparator)
	if got[0].Body != wantBody {
		t.Errorf("body = %q, want %q", got[0].Body, wantBody)
	}

	// Title falls through the priority chain.
	s.EnabledTypes = []Type{ReminderOfIntention}
	if got = testPolicy().BuildSchedule(s); got[0].Title != titleOfIntention {
		t.Errorf("title = %q, want %q", got[0].Title, titleOfIntention)
	}
	s.EnabledTypes = []Type{Encouragement}
	if got = testPolicy().BuildSchedule(s); got[0].Title != titleEncourage {
		t.Errorf("title = %q, want %q", got[0].Title, titleEncourage)
	}
	s.EnabledTypes = nil
	if got = testPolicy().BuildSchedule(s); got[0].Title != titleFallback {
		t.Errorf("title = %q, want %q", got[0].Title, titleFallback)
	}
}

func TestBuildScheduleLegacyAdditive(t *testing.T) {
	s := baseSettings(Daily)
	s.DailyReminder = true
	s.WeeklyReminder = true
	s.MonthlyReminder = true

	got := testPolicy().BuildSchedule(s)
	if len(got) != 4 {
		t.Fatalf("expected 4 triggers (1 frequency + 3 legacy), got %d", len(got))
	}

	ids := map[string]bool{}
	for _, tr := range got {
		ids[tr.ID] = true
	}
	for _, id := range []string{"reminder-daily", "legacy-daily", "legacy-weekly", "legacy-monthly"} {
		if !ids[id] {
			t.Errorf("missing trigger %s in %v", id, ids)
		}
	}
}

func TestBuildScheduleBlackoutDrops(t *testing.T) {
	// Morning trigger at 08:00 inside a 06:00-10:00 window: dropped,
	// no substitute.
	s := baseSettings(TwiceDaily)
	s.BlackoutEnabled = true
	s.BlackoutWindow = Window{StartHour: 6, EndHour: 10}

	got := testPolicy().BuildSchedule(s)
	if len(got) != 1 {
		t.Fatalf("expected 1 surviving trigger, got %d", len(got))
	}
	if got[0].ID != "reminder-daily-evening" {
		t.Errorf("survivor = %q, want the evening trigger", got[0].ID)
	}

	// Sunday excluded: the weekly trigger disappears entirely.
	s = baseSettings(OncePerWeek)
	s.BlackoutEnabled = true
	s.BlackoutDays = []time.Weekday{time.Sunday}
	if got = testPolicy().BuildSchedule(s); len(got) != 0 {
		t.Errorf("expected empty schedule, got %d triggers", len(got))
	}
}

func TestBuildScheduleStableIDs(t *testing.T) {
	s := baseSettings(TwicePerMonth)
	a := testPolicy().BuildSchedule(s)
	b := testPolicy().BuildSchedule(s)
	if len(a) != len(b) {
		t.Fatalf("rebuild changed trigger count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("rebuild changed id at %d: %q vs %q", i, a[i].ID, b[i].ID)
		}
	}
}
