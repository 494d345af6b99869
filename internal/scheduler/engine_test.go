package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklog/internal/model"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(BoundaryEvent{RecordID: "later", Kind: BoundaryEnd, At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(BoundaryEvent{RecordID: "sooner", Kind: BoundaryStart, At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.RecordID != "sooner" || second.RecordID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.RecordID, second.RecordID)
	}
}

func TestScheduleReplacesPendingEventForRecord(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(BoundaryEvent{RecordID: "a", Kind: BoundaryStart, At: now.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(BoundaryEvent{RecordID: "a", Kind: BoundaryEnd, At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() > 1 {
		t.Fatalf("expected replacement, got %d pending", engine.Pending())
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.RecordID != "a" || ev.Kind != BoundaryEnd {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestCancel(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(BoundaryEvent{RecordID: "a", At: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !engine.Cancel("a") || engine.Cancel("a") {
		t.Fatal("expected exactly one successful cancel")
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestScheduleRecordsQueuesNextBoundaries(t *testing.T) {
	engine := NewEngine(1)
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	records := []model.Record{
		{UUID: "future", StartDate: "2024-01-12", EndDate: "2024-01-20", State: model.StateNotStarted},
		{UUID: "running", StartDate: "2024-01-01", EndDate: "2024-01-10", State: model.StateRunning},
		{UUID: "done", StartDate: "2024-01-01", EndDate: "2024-01-20", State: model.StateFinished},
		{UUID: "late", StartDate: "2024-01-01", EndDate: "2024-01-02", State: model.StateTimeout},
		{UUID: "bad", StartDate: "nope", EndDate: "2024-01-02", State: model.StateRunning},
	}
	count, err := engine.ScheduleRecords(records, now)
	if err != nil {
		t.Fatalf("schedule records: %v", err)
	}
	if count != 2 || engine.Pending() != 3 {
		t.Fatalf("unexpected queue: count=%d pending=%d", count, engine.Pending())
	}

	got := engine.popDue(time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local))
	if len(got) != 3 {
		t.Fatalf("expected 3 due events, got %+v", got)
	}
	want := []struct {
		key  string
		kind BoundaryKind
		at   string
	}{
		{midnightKey, BoundaryMidnight, "2024-01-11 00:00"},
		{"running", BoundaryEnd, "2024-01-11 00:00"},
		{"future", BoundaryStart, "2024-01-12 00:00"},
	}
	seen := map[string]BoundaryEvent{}
	for _, ev := range got {
		seen[ev.key()] = ev
	}
	for _, w := range want {
		ev, ok := seen[w.key]
		if !ok || ev.Kind != w.kind || ev.At.Format("2006-01-02 15:04") != w.at {
			t.Fatalf("missing or wrong event %s: %+v", w.key, ev)
		}
	}
	if got[2].RecordID != "future" {
		t.Fatalf("events not in time order: %+v", got)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(BoundaryEvent{
			RecordID: fmt.Sprintf("evt-%d", i),
			Kind:     BoundaryEnd,
			At:       now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(BoundaryEvent{RecordID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(BoundaryEvent{RecordID: "a", At: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, err := engine.ScheduleRecords(nil, time.Now()); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local)
	if got := NextMidnight(now).Format("2006-01-02 15:04"); got != "2024-03-10 00:00" {
		t.Fatalf("unexpected midnight: %s", got)
	}
}

func waitEvent(t *testing.T, ch <-chan BoundaryEvent, timeout time.Duration) BoundaryEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return BoundaryEvent{}
	}
}
