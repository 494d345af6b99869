package datemath

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "2024-13-01", "2024/01/01", "yesterday", "2024-02-30"} {
		_, err := ParseDate(in)
		if err == nil {
			t.Fatalf("parse %q: expected error", in)
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("parse %q: expected ErrInvalidDate, got %v", in, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Input != in {
			t.Fatalf("parse %q: expected ParseError carrying input, got %#v", in, err)
		}
	}
}

func TestParseDateIsMidnightAligned(t *testing.T) {
	ts, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if int64(ts)%SecondsPerDay != 0 {
		t.Fatalf("expected midnight aligned timestamp, got %d", ts)
	}
	if ts.String() != "2024-01-02" {
		t.Fatalf("unexpected round trip: %s", ts)
	}
}

func TestDayDifferenceProperties(t *testing.T) {
	cases := []struct {
		a, b string
		want int64
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-11", 10},
		{"2024-02-28", "2024-03-01", 2},
		{"2023-02-28", "2023-03-01", 1},
		{"2023-12-31", "2024-01-01", 1},
		{"2024-03-09", "2024-03-11", 2},
	}
	for _, tc := range cases {
		got, err := DayDifference(tc.a, tc.b)
		if err != nil {
			t.Fatalf("diff %s..%s: %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Fatalf("diff %s..%s = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		back, err := DayDifference(tc.b, tc.a)
		if err != nil {
			t.Fatalf("reverse diff: %v", err)
		}
		if back != -got {
			t.Fatalf("diff not antisymmetric: %d vs %d", got, back)
		}
	}
}

func TestDayDifferencePropagatesParseError(t *testing.T) {
	if _, err := DayDifference("2024-01-01", "nope"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestNowTimestampMatchesParseAlignment(t *testing.T) {
	clock := FixedClock(time.Date(2024, 1, 6, 23, 59, 0, 0, time.Local))
	now := NowTimestamp(clock)
	day, err := ParseDate("2024-01-06")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if now != day {
		t.Fatalf("now %s not aligned with %s", now, day)
	}
	if Today(clock.Now()) != "2024-01-06" {
		t.Fatalf("unexpected today: %s", Today(clock.Now()))
	}
}

func TestTimestampAddDaysAndLocal(t *testing.T) {
	ts, _ := ParseDate("2024-12-31")
	next := ts.AddDays(1)
	if next.String() != "2025-01-01" {
		t.Fatalf("unexpected next day: %s", next)
	}
	local := next.Local()
	if local.Hour() != 0 || local.Day() != 1 || local.Month() != time.January {
		t.Fatalf("unexpected local midnight: %s", local)
	}
}
