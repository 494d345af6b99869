package lifecycle

import (
	"testing"
	"time"

	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := datemath.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return ts.Local().Add(15 * time.Hour)
}

func TestDeriveTerminalStatesNeverMove(t *testing.T) {
	nows := []string{"2023-01-01", "2024-01-05", "2030-01-01"}
	for _, state := range []model.RecordState{model.StateFinished, model.StateGiveup} {
		for _, now := range nows {
			if next, ok := Derive("2024-01-01", "2024-01-10", state, day(t, now)); ok {
				t.Fatalf("%s at %s moved to %s", state, now, next)
			}
		}
		if _, ok := Derive("bad", "worse", state, day(t, "2024-01-01")); ok {
			t.Fatalf("%s moved with bad dates", state)
		}
	}
}

func TestDeriveTransitionTable(t *testing.T) {
	const start, end = "2024-01-10", "2024-01-15"
	cases := []struct {
		current model.RecordState
		now     string
		want    model.RecordState
		ok      bool
	}{
		{model.StateNotStarted, "2024-01-09", "", false},
		{model.StateNotStarted, "2024-01-10", model.StateRunning, true},
		{model.StateNotStarted, "2024-01-15", model.StateRunning, true},
		{model.StateNotStarted, "2024-01-16", model.StateTimeout, true},
		{model.StateRunning, "2024-01-09", model.StateNotStarted, true},
		{model.StateRunning, "2024-01-12", "", false},
		{model.StateRunning, "2024-01-15", "", false},
		{model.StateRunning, "2024-01-16", model.StateTimeout, true},
		{model.StateTimeout, "2024-01-09", model.StateNotStarted, true},
		{model.StateTimeout, "2024-01-15", model.StateRunning, true},
		{model.StateTimeout, "2024-01-20", "", false},
	}
	for _, tc := range cases {
		got, ok := Derive(start, end, tc.current, day(t, tc.now))
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%s at %s = (%q, %v), want (%q, %v)", tc.current, tc.now, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDeriveEndDayIsInclusiveAllDay(t *testing.T) {
	late := time.Date(2024, 1, 15, 23, 59, 0, 0, time.Local)
	if got, ok := Derive("2024-01-10", "2024-01-15", model.StateRunning, late); ok {
		t.Fatalf("expected running through end day, got %s", got)
	}
}

func TestDeriveRelativeToToday(t *testing.T) {
	today := datemath.FromTime(time.Now())
	start := today.String()
	end := today.AddDays(5).String()

	got, ok := Derive(start, end, model.StateNotStarted, today.AddDays(1).Local())
	if !ok || got != model.StateRunning {
		t.Fatalf("expected Running, got (%q, %v)", got, ok)
	}
	got, ok = Derive(start, end, model.StateNotStarted, today.AddDays(6).Local())
	if !ok || got != model.StateTimeout {
		t.Fatalf("expected Timeout, got (%q, %v)", got, ok)
	}
}

func TestDeriveUnparsableDates(t *testing.T) {
	for _, tc := range [][2]string{{"", "2024-01-01"}, {"2024-01-01", "x"}} {
		if _, ok := Derive(tc[0], tc[1], model.StateNotStarted, day(t, "2024-06-01")); ok {
			t.Fatalf("expected no transition for %v", tc)
		}
	}
}

func TestRefreshReportsChangedIndexes(t *testing.T) {
	in := []model.Record{
		{UUID: "a", StartDate: "2024-01-01", EndDate: "2024-01-05", State: model.StateRunning},
		{UUID: "b", StartDate: "2024-01-01", EndDate: "2024-01-31", State: model.StateRunning},
		{UUID: "c", StartDate: "2024-01-01", EndDate: "2024-01-05", State: model.StateFinished},
		{UUID: "d", StartDate: "2024-03-01", EndDate: "2024-03-05", State: model.StateNotStarted},
	}
	out, changed := Refresh(in, day(t, "2024-01-10"))
	if len(changed) != 1 || changed[0] != 0 {
		t.Fatalf("unexpected changed indexes: %v", changed)
	}
	if out[0].State != model.StateTimeout {
		t.Fatalf("expected Timeout, got %s", out[0].State)
	}
	if in[0].State != model.StateRunning {
		t.Fatal("refresh mutated input")
	}

	again, changed := Refresh(out, day(t, "2024-01-10"))
	if len(changed) != 0 {
		t.Fatalf("refresh is not idempotent: %v", changed)
	}
	if again[0].State != model.StateTimeout {
		t.Fatalf("unexpected state: %s", again[0].State)
	}
}

func TestApplyUserStateStampsAndCorrects(t *testing.T) {
	r := model.Record{UUID: "a", StartDate: "2024-02-01", EndDate: "2024-02-10", State: model.StateNotStarted}

	running := ApplyUserState(r, model.StateRunning, day(t, "2024-01-20"))
	if running.StartDate != "2024-01-20" || running.EndDate != "2024-02-10" || running.State != model.StateRunning {
		t.Fatalf("unexpected running record: %+v", running)
	}

	finished := ApplyUserState(r, model.StateFinished, day(t, "2024-01-20"))
	if finished.EndDate != "2024-02-01" || finished.StartDate != "2024-02-01" {
		t.Fatalf("expected end corrected to start, got %+v", finished)
	}

	giveup := ApplyUserState(r, model.StateGiveup, day(t, "2024-02-05"))
	if giveup.EndDate != "2024-02-05" || giveup.State != model.StateGiveup {
		t.Fatalf("unexpected giveup record: %+v", giveup)
	}

	late := ApplyUserState(model.Record{StartDate: "2024-01-01", EndDate: "2024-01-02"}, model.StateRunning, day(t, "2024-01-09"))
	if late.EndDate != "2024-01-09" {
		t.Fatalf("expected end corrected to new start, got %+v", late)
	}
}

func TestInitialState(t *testing.T) {
	now := day(t, "2024-01-10")
	if s := InitialState("2024-01-11", "2024-01-12", now); s != model.StateNotStarted {
		t.Fatalf("future record: %s", s)
	}
	if s := InitialState("2024-01-10", "2024-01-12", now); s != model.StateRunning {
		t.Fatalf("current record: %s", s)
	}
	if s := InitialState("2024-01-01", "2024-01-02", now); s != model.StateTimeout {
		t.Fatalf("past record: %s", s)
	}
}

func TestNextBoundary(t *testing.T) {
	r := model.Record{StartDate: "2024-01-10", EndDate: "2024-01-15", State: model.StateNotStarted}
	at, ok := NextBoundary(r, day(t, "2024-01-05"))
	if !ok || at.Format("2006-01-02 15:04") != "2024-01-10 00:00" {
		t.Fatalf("unexpected boundary before start: %v %v", at, ok)
	}
	r.State = model.StateRunning
	at, ok = NextBoundary(r, day(t, "2024-01-12"))
	if !ok || at.Format("2006-01-02 15:04") != "2024-01-16 00:00" {
		t.Fatalf("unexpected boundary while running: %v %v", at, ok)
	}
	if _, ok := NextBoundary(r, day(t, "2024-01-20")); ok {
		t.Fatal("expected no boundary after end")
	}
	r.State = model.StateFinished
	if _, ok := NextBoundary(r, day(t, "2024-01-12")); ok {
		t.Fatal("expected no boundary for terminal record")
	}
}
