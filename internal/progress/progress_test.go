package progress

import (
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklog/internal/model"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.Local)
}

func TestFractionTimeBased(t *testing.T) {
	cases := []struct {
		start, end string
		now        time.Time
		want       float32
	}{
		{"2024-01-01", "2024-01-11", at(2024, 1, 6), 0.5},
		{"2024-01-01", "2024-01-11", at(2023, 12, 25), 0},
		{"2024-01-01", "2024-01-11", at(2024, 1, 11), 1},
		{"2024-01-01", "2024-01-11", at(2024, 2, 1), 1},
		{"2024-01-01", "2024-01-01", at(2024, 1, 1), 0},
		{"2024-01-01", "2024-01-01", at(2024, 1, 2), 1},
		{"2024-01-01", "2024-01-05", at(2024, 1, 2), 0.25},
	}
	for _, tc := range cases {
		got := Fraction(nil, tc.start, tc.end, tc.now)
		if got != tc.want {
			t.Fatalf("fraction %s..%s at %s = %v, want %v", tc.start, tc.end, tc.now.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestFractionChecklistOverridesDates(t *testing.T) {
	plan := []model.PlanStep{{Detail: "a", IsFinished: true}, {Detail: "b"}}
	if got := Fraction(plan, "2024-01-01", "2024-01-11", at(2030, 1, 1)); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := Fraction(plan, "garbage", "", at(2030, 1, 1)); got != 0.5 {
		t.Fatalf("expected checklist progress with bad dates, got %v", got)
	}
	all := []model.PlanStep{{IsFinished: true}, {IsFinished: true}, {IsFinished: true}}
	if got := Fraction(all, "", "", time.Now()); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestFractionBadDates(t *testing.T) {
	if got := Fraction(nil, "x", "2024-01-01", time.Now()); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestRemainingDays(t *testing.T) {
	if got := RemainingDays("2024-01-01", "2024-01-11"); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := RemainingDays("2024-01-11", "2024-01-01"); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := RemainingDays("x", "2024-01-01"); got != 0 {
		t.Fatalf("expected 0 for bad input, got %d", got)
	}
}

func TestDigits(t *testing.T) {
	cases := map[int][]int{
		0:   {0, 0},
		7:   {0, 7},
		10:  {1, 0},
		42:  {4, 2},
		365: {3, 6, 5},
	}
	for in, want := range cases {
		if got := Digits(in); !reflect.DeepEqual(got, want) {
			t.Fatalf("digits(%d) = %v, want %v", in, got, want)
		}
	}
	if got := RemainingDaysDigits("2024-01-01", "2024-02-12"); !reflect.DeepEqual(got, []int{4, 2}) {
		t.Fatalf("unexpected remaining digits: %v", got)
	}
}

func TestCurrentPlanStep(t *testing.T) {
	if got := CurrentPlanStep(nil); got != 0 {
		t.Fatalf("empty plan: %d", got)
	}
	plan := []model.PlanStep{{IsFinished: true}, {IsFinished: false}, {IsFinished: false}}
	if got := CurrentPlanStep(plan); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	done := []model.PlanStep{{IsFinished: true}, {IsFinished: true}}
	if got := CurrentPlanStep(done); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
