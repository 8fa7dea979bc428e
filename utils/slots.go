package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is a half-open [Start, End) window in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports half-open interval intersection with other.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Slot is one bookable window as presented to clients.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ParseClock converts an "HH:MM" 24h string to minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hours*60 + minutes, nil
}

// FormatClock converts minutes since midnight back to "HH:MM". Values past
// midnight wrap into the next day's clock.
func FormatClock(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateSlots walks from openTime toward closeTime in slotMinutes steps
// and returns every window that does not overlap a busy interval.
//
// Clipping policy: a window is emitted whenever its start is before
// closeTime, so the final window may run past close. "Last job starts
// before close" is the contract here, pinned by tests.
func GenerateSlots(openTime, closeTime string, slotMinutes int, busy []Interval) ([]Slot, error) {
	open, err := ParseClock(openTime)
	if err != nil {
		return nil, err
	}
	close, err := ParseClock(closeTime)
	if err != nil {
		return nil, err
	}
	if slotMinutes <= 0 {
		slotMinutes = 120
	}

	var slots []Slot
	for start := open; start < close; start += slotMinutes {
		candidate := Interval{Start: start, End: start + slotMinutes}
		if overlapsAny(candidate, busy) {
			continue
		}
		slots = append(slots, Slot{
			StartTime: FormatClock(candidate.Start),
			EndTime:   FormatClock(candidate.End),
		})
	}
	return slots, nil
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
