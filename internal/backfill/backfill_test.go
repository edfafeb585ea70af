package backfill

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEnumerateDates(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", day(2025, time.June, 1), day(2025, time.June, 1), 1},
		{"one week", day(2025, time.June, 1), day(2025, time.June, 7), 7},
		{"reversed bounds swap", day(2025, time.June, 7), day(2025, time.June, 1), 7},
		{"month boundary", day(2025, time.May, 30), day(2025, time.June, 2), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := enumerateDates(tt.start, tt.end)
			if len(dates) != tt.want {
				t.Fatalf("enumerateDates() returned %d dates, want %d", len(dates), tt.want)
			}
			for i := 1; i < len(dates); i++ {
				if !dates[i].After(dates[i-1]) {
					t.Errorf("dates not strictly increasing at index %d: %v", i, dates[i])
				}
			}
		})
	}
}

func TestEnumerateDatesIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.June, 1, 23, 50, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 2, 0, 10, 0, 0, time.UTC)

	dates := enumerateDates(start, end)
	if len(dates) != 2 {
		t.Fatalf("enumerateDates() returned %d dates, want 2", len(dates))
	}
	if h := dates[0].Hour(); h != 0 {
		t.Errorf("dates should be truncated to midnight, got hour %d", h)
	}
}

func TestRequestDeriveType(t *testing.T) {
	start := day(2025, time.June, 1)
	end := day(2025, time.June, 7)

	tests := []struct {
		name    string
		req     Request
		want    JobType
		wantErr bool
	}{
		{"season only", Request{SeasonYear: 2025}, JobTypeSeason, false},
		{"date range", Request{SeasonYear: 2025, StartDate: &start, EndDate: &end}, JobTypeDateRange, false},
		{"missing season", Request{StartDate: &start, EndDate: &end}, "", true},
		{"start without end", Request{SeasonYear: 2025, StartDate: &start}, "", true},
		{"end without start", Request{SeasonYear: 2025, EndDate: &end}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.DeriveType()
			if tt.wantErr {
				if err == nil {
					t.Fatal("DeriveType() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("DeriveType() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DeriveType() = %s, want %s", got, tt.want)
			}
		})
	}
}
