package controllers

import (
	"testing"
	"time"
)

func TestBookingLockKey(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	classID, dateID := bookingLockKey(7, date)
	if classID != 7 {
		t.Errorf("class key = %d, want the business id 7", classID)
	}
	wantDay := int32(date.Unix() / 86400)
	if dateID != wantDay {
		t.Errorf("date key = %d, want %d days since epoch", dateID, wantDay)
	}

	// Two bookings for the same business and day must contend for the
	// same lock regardless of time-of-day noise on the date value.
	c2, d2 := bookingLockKey(7, time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC))
	if c2 != classID || d2 != dateID {
		t.Errorf("same business/day produced different keys: (%d,%d) vs (%d,%d)", classID, dateID, c2, d2)
	}

	// Different day or different business must not share a lock.
	if _, dNext := bookingLockKey(7, date.AddDate(0, 0, 1)); dNext == dateID {
		t.Error("next day should map to a different date key")
	}
	if cOther, _ := bookingLockKey(8, date); cOther == classID {
		t.Error("different business should map to a different class key")
	}
}

func TestBookingLockKeyEpoch(t *testing.T) {
	if _, d := bookingLockKey(1, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)); d != 1 {
		t.Errorf("1970-01-02 should be day 1, got %d", d)
	}
}
