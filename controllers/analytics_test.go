package controllers

import (
	"testing"

	"github.com/hoodshookups/hoods-app/models"
)

func TestBuildQuoteFunnel(t *testing.T) {
	counts := map[models.QuoteStatus]int64{
		models.QuoteNew:       4,
		models.QuoteInReview:  3,
		models.QuoteAccepted:  2,
		models.QuoteScheduled: 1,
		models.QuoteCompleted: 5,
	}
	f := buildQuoteFunnel(15, counts)

	if f.Total != 15 {
		t.Errorf("Total = %d, want 15", f.Total)
	}
	// Counts are cumulative down the funnel: completed quotes were also
	// responded to, accepted and scheduled.
	if f.Responded != 11 {
		t.Errorf("Responded = %d, want 11", f.Responded)
	}
	if f.Accepted != 8 {
		t.Errorf("Accepted = %d, want 8", f.Accepted)
	}
	if f.Scheduled != 6 {
		t.Errorf("Scheduled = %d, want 6", f.Scheduled)
	}
	if f.Completed != 5 {
		t.Errorf("Completed = %d, want 5", f.Completed)
	}
}

func TestBuildQuoteFunnelEmpty(t *testing.T) {
	f := buildQuoteFunnel(0, map[models.QuoteStatus]int64{})
	if f.Responded != 0 || f.Accepted != 0 || f.Scheduled != 0 || f.Completed != 0 {
		t.Errorf("empty funnel should be all zeros, got %+v", f)
	}
	rates := f.rates()
	if rates["overall_conversion"] != 0.0 {
		t.Errorf("overall_conversion on empty funnel = %v, want 0", rates["overall_conversion"])
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        float64
	}{
		{1, 3, 33.3},
		{2, 3, 66.7},
		{5, 5, 100},
		{0, 10, 0},
		{3, 0, 0},
		{1, 8, 12.5},
	}
	for _, tc := range cases {
		if got := percent(tc.part, tc.whole); got != tc.want {
			t.Errorf("percent(%d, %d) = %v, want %v", tc.part, tc.whole, got, tc.want)
		}
	}
}
