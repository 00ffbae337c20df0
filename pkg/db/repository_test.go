package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mklimuk/intent-pilot/pkg/intention"
	"github.com/mklimuk/intent-pilot/pkg/reminder"
	"github.com/mklimuk/intent-pilot/pkg/scope"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	database, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return NewRepository(database, scope.DefaultConfig())
}

func newIntention(t *testing.T, text string, s scope.Scope, anchor time.Time) *intention.Intention {
	t.Helper()
	it, err := intention.New(text, s, anchor, false)
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func TestCreateAndFind(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	anchor := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	it := newIntention(t, "stay focused", scope.Day, anchor)

	if err := repo.Create(ctx, it); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(ctx, it.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got.Text != "stay focused" {
		t.Errorf("text = %q", got.Text)
	}
	if got.Scope != scope.Day {
		t.Errorf("scope = %v", got.Scope)
	}
	if !got.AnchorDate.Equal(anchor) {
		t.Errorf("anchor = %v, want %v", got.AnchorDate, anchor)
	}

	all, err := repo.FindAll(ctx, scope.Day)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 intention, got %d", len(all))
	}

	// Scope filter excludes it.
	weekly, err := repo.FindAll(ctx, scope.Week)
	if err != nil {
		t.Fatalf("find all week: %v", err)
	}
	if len(weekly) != 0 {
		t.Errorf("expected 0 weekly intentions, got %d", len(weekly))
	}
}

func TestDuplicateRangeRejected(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	// Two different anchors in the same January slot.
	first := newIntention(t, "january focus", scope.Month, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	second := newIntention(t, "also january", scope.Month, time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC))

	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, second)
	if !errors.Is(err, intention.ErrDuplicateRange) {
		t.Fatalf("second create err = %v, want ErrDuplicateRange", err)
	}

	// A different month is a different slot.
	feb := newIntention(t, "february focus", scope.Month, time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, feb); err != nil {
		t.Errorf("february create: %v", err)
	}

	// Same range start, different scope, is fine too.
	day := newIntention(t, "new year's day", scope.Day, time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, day); err != nil {
		t.Errorf("day create: %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	it := newIntention(t, "draft", scope.Day, time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, it); err != nil {
		t.Fatalf("create: %v", err)
	}

	it.Text = "final"
	it.Quote = "make it count"
	if err := repo.Update(ctx, it); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.FindByID(ctx, it.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Text != "final" || got.Quote != "make it count" {
		t.Errorf("got %+v", got)
	}

	// Moving onto an occupied slot fails.
	other := newIntention(t, "tomorrow", scope.Day, time.Date(2025, time.March, 13, 8, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("create other: %v", err)
	}
	other.AnchorDate = it.AnchorDate
	if err := repo.Update(ctx, other); !errors.Is(err, intention.ErrDuplicateRange) {
		t.Errorf("update err = %v, want ErrDuplicateRange", err)
	}

	// Unknown id.
	missing := newIntention(t, "ghost", scope.Day, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	if err := repo.Update(ctx, missing); !errors.Is(err, intention.ErrNotFound) {
		t.Errorf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	it := newIntention(t, "temporary", scope.Week, time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, it); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, it.ID); !errors.Is(err, intention.ErrNotFound) {
		t.Errorf("find after delete err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, it.ID); !errors.Is(err, intention.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}

	// Deleting frees the slot for a new intention.
	again := newIntention(t, "replacement", scope.Week, time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))
	if err := repo.Create(ctx, again); err != nil {
		t.Errorf("create after delete: %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	// Defaults before anything is saved.
	got, err := repo.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if got.Frequency != reminder.Daily {
		t.Errorf("default frequency = %q", got.Frequency)
	}

	s := reminder.Settings{
		Frequency:       reminder.TwicePerWeek,
		EnabledTypes:    []reminder.Type{reminder.ReminderToAdd, reminder.Encouragement},
		MorningTime:     reminder.Clock{Hour: 7, Minute: 30},
		EveningTime:     reminder.Clock{Hour: 21},
		BlackoutEnabled: true,
		BlackoutWindow:  reminder.Window{StartHour: 22, EndHour: 8},
		BlackoutDays:    []time.Weekday{time.Saturday},
		WeeklyReminder:  true,
	}
	if err := repo.SaveSettings(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = repo.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Frequency != reminder.TwicePerWeek {
		t.Errorf("frequency = %q", got.Frequency)
	}
	if got.MorningTime != (reminder.Clock{Hour: 7, Minute: 30}) {
		t.Errorf("morning = %v", got.MorningTime)
	}
	if !got.BlackoutEnabled || got.BlackoutWindow.StartHour != 22 {
		t.Errorf("blackout = %+v", got)
	}
	if len(got.BlackoutDays) != 1 || got.BlackoutDays[0] != time.Saturday {
		t.Errorf("blackout days = %v", got.BlackoutDays)
	}
	if !got.WeeklyReminder {
		t.Error("legacy weekly flag lost")
	}

	// Second save overwrites the single row.
	s.Frequency = reminder.Daily
	if err := repo.SaveSettings(ctx, s); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, _ = repo.LoadSettings(ctx)
	if got.Frequency != reminder.Daily {
		t.Errorf("frequency after resave = %q", got.Frequency)
	}
}
