package models

import (
	"testing"
)

func TestQuoteTransitions(t *testing.T) {
	allowed := []struct {
		from, to QuoteStatus
	}{
		{QuoteNew, QuoteInReview},
		{QuoteInReview, QuoteAccepted},
		{QuoteAccepted, QuoteScheduled},
		{QuoteScheduled, QuoteCompleted},
		{QuoteNew, QuoteCancelled},
		{QuoteInReview, QuoteClosed},
		{QuoteAccepted, QuoteCancelled},
		{QuoteScheduled, QuoteClosed},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	rejected := []struct {
		from, to QuoteStatus
	}{
		{QuoteNew, QuoteAccepted},
		{QuoteNew, QuoteScheduled},
		{QuoteNew, QuoteCompleted},
		{QuoteInReview, QuoteScheduled},
		{QuoteAccepted, QuoteCompleted},
		{QuoteAccepted, QuoteInReview},
		{QuoteScheduled, QuoteAccepted},
		{QuoteCompleted, QuoteCancelled},
		{QuoteCancelled, QuoteNew},
		{QuoteClosed, QuoteInReview},
	}
	for _, tc := range rejected {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestQuoteTerminalStatesAllowNothing(t *testing.T) {
	terminal := []QuoteStatus{QuoteCompleted, QuoteCancelled, QuoteClosed}
	all := []QuoteStatus{QuoteNew, QuoteInReview, QuoteAccepted, QuoteScheduled,
		QuoteCompleted, QuoteCancelled, QuoteClosed}
	for _, from := range terminal {
		for _, to := range all {
			if from.CanTransition(to) {
				t.Errorf("terminal state %s should not transition to %s", from, to)
			}
		}
	}
}

func TestQuoteResponseTransitions(t *testing.T) {
	if !ResponsePending.CanTransition(ResponseApproved) {
		t.Error("pending -> approved should be allowed")
	}
	if !ResponsePending.CanTransition(ResponseRejected) {
		t.Error("pending -> rejected should be allowed")
	}
	if ResponseApproved.CanTransition(ResponsePending) {
		t.Error("approved responses must stay approved")
	}
	if ResponseApproved.CanTransition(ResponseRejected) {
		t.Error("approved -> rejected should be rejected")
	}
	if ResponseRejected.CanTransition(ResponseApproved) {
		t.Error("rejected -> approved should be rejected")
	}
}

func TestAppointmentTransitions(t *testing.T) {
	allowed := []struct {
		from, to AppointmentStatus
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	rejected := []struct {
		from, to AppointmentStatus
	}{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusNoShow},
		{StatusCompleted, StatusConfirmed},
		{StatusCancelled, StatusConfirmed},
		{StatusNoShow, StatusCompleted},
	}
	for _, tc := range rejected {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestAppointmentBlocks(t *testing.T) {
	cases := []struct {
		status AppointmentStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
		{StatusNoShow, false},
	}
	for _, tc := range cases {
		a := Appointment{Status: tc.status}
		if got := a.Blocks(); got != tc.want {
			t.Errorf("Blocks() with status %s = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestInvoiceTransitions(t *testing.T) {
	if !InvoiceDraft.CanTransition(InvoiceSent) {
		t.Error("draft -> sent should be allowed")
	}
	if !InvoiceSent.CanTransition(InvoicePaid) {
		t.Error("sent -> paid should be allowed")
	}
	if InvoiceDraft.CanTransition(InvoicePaid) {
		t.Error("draft -> paid should be rejected")
	}
	if InvoicePaid.CanTransition(InvoiceVoid) {
		t.Error("paid invoices cannot be voided")
	}
}
