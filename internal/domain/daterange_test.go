package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewDateRange(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

	if _, err := NewDateRange(from, to); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if _, err := NewDateRange(from, from); err != nil {
		t.Fatalf("empty range rejected: %v", err)
	}
	if _, err := NewDateRange(to, from); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("inverted range: got %v", err)
	}
}

func TestDateRangeContains(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	r := DateRange{From: from, To: to}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"start included", from, true},
		{"inside", from.Add(12 * time.Hour), true},
		{"last nanosecond", to.Add(-time.Nanosecond), true},
		{"end excluded", to, false},
		{"before", from.Add(-time.Nanosecond), false},
		{"after", to.Add(time.Hour), false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.t); got != tt.want {
			t.Errorf("%s: Contains(%s) = %v, want %v", tt.name, tt.t, got, tt.want)
		}
	}
}

func TestDateRangeIsZero(t *testing.T) {
	if !(DateRange{}).IsZero() {
		t.Error("zero range should report IsZero")
	}
	r := DateRange{From: time.Now(), To: time.Now().Add(time.Hour)}
	if r.IsZero() {
		t.Error("populated range should not report IsZero")
	}
}
