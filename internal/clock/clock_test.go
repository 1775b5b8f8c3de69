package clock

import (
	"testing"
	"time"
)

// Buenos Aires has no DST, a fixed UTC-3 zone models it exactly.
var testZone = time.FixedZone("-03", -3*60*60)

func TestDayStart(t *testing.T) {
	c := NewFixed(time.Now(), testZone)

	// 01:30 UTC on Aug 16 is 22:30 on Aug 15 in the configured zone.
	instant := time.Date(2026, 8, 16, 1, 30, 0, 0, time.UTC)
	got := c.DayStart(instant)

	want := time.Date(2026, 8, 15, 0, 0, 0, 0, testZone)
	if !got.Equal(want) {
		t.Fatalf("DayStart = %s, want %s", got, want)
	}
}

func TestDateKey(t *testing.T) {
	c := NewFixed(time.Now(), testZone)

	tests := []struct {
		name    string
		instant time.Time
		want    string
	}{
		{"midday", time.Date(2026, 8, 15, 15, 0, 0, 0, time.UTC), "2026-08-15"},
		{"utc after midnight, local before", time.Date(2026, 8, 16, 2, 59, 0, 0, time.UTC), "2026-08-15"},
		{"local midnight exactly", time.Date(2026, 8, 16, 3, 0, 0, 0, time.UTC), "2026-08-16"},
	}

	for _, tt := range tests {
		if got := c.DateKey(tt.instant); got != tt.want {
			t.Errorf("%s: DateKey = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	c := NewFixed(time.Now(), testZone)

	got, err := c.ParseDate("2026-08-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, testZone)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %s, want %s", got, want)
	}

	for _, bad := range []string{"", "15/08/2026", "2026-13-01", "yesterday"} {
		if _, err := c.ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestNewUnknownTimezone(t *testing.T) {
	if _, err := New("Mars/Olympus_Mons"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
