package utils

import (
	"testing"
)

func TestGenerateSlots_OpenDay(t *testing.T) {
	slots, err := GenerateSlots("08:00", "17:00", 120, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The walk emits every window whose start is before close, so the last
	// one runs past 17:00.
	want := []Slot{
		{StartTime: "08:00", EndTime: "10:00"},
		{StartTime: "10:00", EndTime: "12:00"},
		{StartTime: "12:00", EndTime: "14:00"},
		{StartTime: "14:00", EndTime: "16:00"},
		{StartTime: "16:00", EndTime: "18:00"},
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(slots), slots)
	}
	for i, slot := range slots {
		if slot != want[i] {
			t.Errorf("slot %d: expected %v, got %v", i, want[i], slot)
		}
	}
}

func TestGenerateSlots_BookedWindowRemoved(t *testing.T) {
	booked := []Interval{{Start: 10 * 60, End: 12 * 60}}
	slots, err := GenerateSlots("08:00", "17:00", 120, booked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d: %v", len(slots), slots)
	}
	for _, slot := range slots {
		if slot.StartTime == "10:00" {
			t.Errorf("booked 10:00-12:00 window should be absent, got %v", slots)
		}
	}
}

func TestGenerateSlots_PartialOverlapRemoved(t *testing.T) {
	// A block covering 09:00-11:00 straddles two candidate windows; both go.
	blocked := []Interval{{Start: 9 * 60, End: 11 * 60}}
	slots, err := GenerateSlots("08:00", "17:00", 120, blocked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d: %v", len(slots), slots)
	}
	if slots[0].StartTime != "12:00" {
		t.Errorf("expected first surviving slot at 12:00, got %s", slots[0].StartTime)
	}
}

func TestGenerateSlots_AdjacentIntervalsDoNotConflict(t *testing.T) {
	// Half-open intervals: a booking ending exactly at a window's start
	// does not block it.
	booked := []Interval{{Start: 8 * 60, End: 10 * 60}}
	slots, err := GenerateSlots("10:00", "12:00", 120, booked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0].StartTime != "10:00" {
		t.Fatalf("expected single 10:00 slot, got %v", slots)
	}
}

func TestGenerateSlots_ZeroDurationDefaults(t *testing.T) {
	slots, err := GenerateSlots("08:00", "12:00", 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 default-width slots, got %d", len(slots))
	}
}

func TestGenerateSlots_InvalidTimes(t *testing.T) {
	if _, err := GenerateSlots("8am", "17:00", 120, nil); err == nil {
		t.Error("expected error for invalid open time")
	}
	if _, err := GenerateSlots("08:00", "25:00", 120, nil); err == nil {
		t.Error("expected error for invalid close time")
	}
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{0, 60}, Interval{120, 180}, false},
		{"adjacent", Interval{0, 60}, Interval{60, 120}, false},
		{"partial", Interval{0, 90}, Interval{60, 120}, true},
		{"contained", Interval{30, 60}, Interval{0, 120}, true},
		{"identical", Interval{0, 60}, Interval{0, 60}, true},
	}
	for _, tc := range cases {
		if got := tc.a.Overlaps(tc.b); got != tc.want {
			t.Errorf("%s: Overlaps(%v, %v) = %v, want %v", tc.name, tc.a, tc.b, got, tc.want)
		}
		if got := tc.b.Overlaps(tc.a); got != tc.want {
			t.Errorf("%s (reversed): Overlaps(%v, %v) = %v, want %v", tc.name, tc.b, tc.a, got, tc.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(510); got != "08:30" {
		t.Errorf("FormatClock(510) = %q, want 08:30", got)
	}
	// Past-midnight values wrap onto the next day's clock.
	if got := FormatClock(25 * 60); got != "01:00" {
		t.Errorf("FormatClock(1500) = %q, want 01:00", got)
	}
}
