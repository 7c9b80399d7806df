package domain

import (
	"testing"
	"time"
)

func TestPeriodStartDaily(t *testing.T) {
	now := time.Date(2026, 8, 26, 15, 42, 7, 0, time.UTC) // a Wednesday
	got := PeriodStart(now, FrequencyDaily)
	want := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPeriodStartWeekly(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek resolves to preceding Sunday",
			now:  time.Date(2026, 8, 26, 15, 42, 7, 0, time.UTC), // Wednesday
			want: time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),   // Sunday
		},
		{
			name: "Sunday resolves to that same Sunday",
			now:  time.Date(2026, 8, 23, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Saturday resolves to the week's start, not the next Sunday",
			now:  time.Date(2026, 8, 29, 1, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PeriodStart(tc.now, FrequencyWeekly)
			if !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPeriodStartKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2026, 8, 26, 3, 0, 0, 0, loc)
	got := PeriodStart(now, FrequencyDaily)
	if got.Location() != loc {
		t.Fatalf("expected boundary in the caller's location, got %v", got.Location())
	}
	if got.Hour() != 0 {
		t.Fatalf("expected local midnight, got hour %d", got.Hour())
	}
}
