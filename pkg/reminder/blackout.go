package reminder

import "time"

// Suppressed reports whether a candidate trigger time falls inside
// the blackout window or lands on an excluded weekday. candidateDay
// is nil for triggers with no fixed weekday.
//
// Window bounds are compared as minutes since midnight. A window
// whose start is after its end wraps past midnight: 22:00-08:00
// suppresses 23:00 and 07:00 but not 12:00.
func Suppressed(candidate Clock, candidateDay *time.Weekday, window Window, enabled bool, days []time.Weekday) bool {
	if !enabled {
		return false
	}

	if candidateDay != nil {
		for _, d := range days {
			if d == *candidateDay {
				return true
			}
		}
	}

	start := window.StartHour*60 + window.StartMinute
	end := window.EndHour*60 + window.EndMinute
	m := candidate.Minutes()

	if start <= end {
		return m >= start && m < end
	}
	return m >= start || m < end
}

// SuppressedBy applies the settings' blackout configuration to a
// candidate; convenience wrapper used by the policy.
func (s Settings) SuppressedBy(candidate Clock, candidateDay *time.Weekday) bool {
	return Suppressed(candidate, candidateDay, s.BlackoutWindow, s.BlackoutEnabled, s.BlackoutDays)
}
