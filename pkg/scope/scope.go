package scope

import (
	"fmt"
	"strings"
	"time"
)

// Scope is the time horizon an intention applies to.
type Scope int

const (
	Day Scope = iota
	Week
	Month
)

// String returns the lowercase name used in storage and on the wire.
func (s Scope) String() string {
	switch s {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// MarshalJSON encodes the scope as its lowercase name.
func (s Scope) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the names Parse accepts.
func (s *Scope) UnmarshalJSON(b []byte) error {
	v, err := Parse(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Parse converts a stored or user-supplied scope name.
func Parse(v string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "day", "daily":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	default:
		return Day, fmt.Errorf("unknown scope %q", v)
	}
}

// Config carries the calendar parameters that vary by locale.
// Week boundaries depend on FirstWeekday; all range math happens in
// Location rather than whatever the host happens to be set to.
type Config struct {
	FirstWeekday time.Weekday
	Location     *time.Location
}

// DefaultConfig uses Sunday weeks in UTC.
func DefaultConfig() Config {
	return Config{FirstWeekday: time.Sunday, Location: time.UTC}
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Range computes the half-open [start, end) calendar range of the
// given scope containing ref. For any ref, start <= ref < end.
func (c Config) Range(s Scope, ref time.Time) (time.Time, time.Time) {
	loc := c.location()
	local := ref.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	switch s {
	case Week:
		back := (int(local.Weekday()) - int(c.FirstWeekday) + 7) % 7
		start := midnight.AddDate(0, 0, -back)
		return start, start.AddDate(0, 0, 7)
	case Month:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	default:
		return midnight, midnight.AddDate(0, 0, 1)
	}
}

// Start returns only the lower bound of Range.
func (c Config) Start(s Scope, ref time.Time) time.Time {
	start, _ := c.Range(s, ref)
	return start
}

// Contains reports whether t falls inside the scope range anchored at ref.
func (c Config) Contains(s Scope, ref, t time.Time) bool {
	start, end := c.Range(s, ref)
	return !t.Before(start) && t.Before(end)
}
