// Package lifecycle derives record states from their date window and the
// current day.
package lifecycle

import (
	"time"

	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/model"
)

// Derive returns the state a record should move to, or false when the
// current state stands. Unparsable dates never produce a transition.
func Derive(start, end string, current model.RecordState, now time.Time) (model.RecordState, bool) {
	if current.IsTerminal() {
		return "", false
	}
	s, err := datemath.ParseDate(start)
	if err != nil {
		return "", false
	}
	e, err := datemath.ParseDate(end)
	if err != nil {
		return "", false
	}
	today := datemath.FromTime(now)

	switch current {
	case model.StateNotStarted:
		if today > e {
			return model.StateTimeout, true
		}
		if today >= s {
			return model.StateRunning, true
		}
	case model.StateRunning:
		if today < s {
			return model.StateNotStarted, true
		}
		if today > e {
			return model.StateTimeout, true
		}
	case model.StateTimeout:
		if today < s {
			return model.StateNotStarted, true
		}
		if today <= e {
			return model.StateRunning, true
		}
	}
	return "", false
}

// Refresh re-derives every record. It returns a new slice and the indexes
// whose state changed so the caller can persist them.
func Refresh(records []model.Record, now time.Time) ([]model.Record, []int) {
	out := make([]model.Record, len(records))
	var changed []int
	for i, r := range records {
		out[i] = r.Clone()
		if next, ok := Derive(r.StartDate, r.EndDate, r.State, now); ok {
			out[i].State = next
			changed = append(changed, i)
		}
	}
	return out, changed
}

// ApplyUserState records an explicit state change. Entering Running stamps
// the start date, entering Finished or Giveup stamps the end date.
func ApplyUserState(r model.Record, state model.RecordState, now time.Time) model.Record {
	out := r.Clone()
	out.State = state
	today := datemath.Today(now)
	switch state {
	case model.StateRunning:
		out.StartDate = today
	case model.StateFinished, model.StateGiveup:
		out.EndDate = today
	}
	return CorrectDates(out)
}

// CorrectDates enforces end_date >= start_date.
func CorrectDates(r model.Record) model.Record {
	diff, err := datemath.DayDifference(r.StartDate, r.EndDate)
	if err != nil || diff >= 0 {
		return r
	}
	r.EndDate = r.StartDate
	return r
}

// InitialState derives the state of a freshly created record.
func InitialState(start, end string, now time.Time) model.RecordState {
	if next, ok := Derive(start, end, model.StateNotStarted, now); ok {
		return next
	}
	return model.StateNotStarted
}

// NextBoundary reports the next local instant at which Derive may answer
// differently for r.
func NextBoundary(r model.Record, now time.Time) (time.Time, bool) {
	if r.State.IsTerminal() {
		return time.Time{}, false
	}
	s, err := datemath.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	e, err := datemath.ParseDate(r.EndDate)
	if err != nil {
		return time.Time{}, false
	}
	today := datemath.FromTime(now)
	switch {
	case today < s:
		return s.Local(), true
	case today <= e:
		return e.AddDays(1).Local(), true
	default:
		return time.Time{}, false
	}
}
