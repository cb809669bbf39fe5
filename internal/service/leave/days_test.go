package leave

import (
	"testing"
	"time"
)

func TestLeaveDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"single day", "2026-03-10", "2026-03-10", 1},
		{"two days", "2026-03-10", "2026-03-11", 2},
		{"work week", "2026-03-09", "2026-03-13", 5},
		{"across month boundary", "2026-03-30", "2026-04-02", 4},
		{"across year boundary", "2025-12-30", "2026-01-02", 4},
		{"across leap day", "2028-02-28", "2028-03-01", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LeaveDays(day(tt.start), day(tt.end))
			if got != tt.want {
				t.Errorf("LeaveDays(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestLeaveDaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 11, 0, 15, 0, 0, time.UTC)
	if got := LeaveDays(start, end); got != 2 {
		t.Errorf("LeaveDays = %d, want 2", got)
	}
}
