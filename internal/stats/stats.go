package stats

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/model"
)

type Bucket struct {
	Label string
	Value int
	Color lipgloss.Color
}

type Summary struct {
	TotalDays int
	Counts    []Bucket
	Days      []Bucket
	MeanDays  []Bucket
}

// spentStates are the states that carry elapsed time, in bucket order.
var spentStates = []model.RecordState{model.StateRunning, model.StateFinished, model.StateGiveup, model.StateTimeout}

var stateColors = map[model.RecordState]lipgloss.Color{
	model.StateNotStarted: lipgloss.Color("8"),
	model.StateRunning:    lipgloss.Color("12"),
	model.StateFinished:   lipgloss.Color("10"),
	model.StateGiveup:     lipgloss.Color("11"),
	model.StateTimeout:    lipgloss.Color("9"),
}

func StateColor(s model.RecordState) lipgloss.Color {
	if c, ok := stateColors[s]; ok {
		return c
	}
	return lipgloss.Color("7")
}

// daysSpent counts whole days from start to min(today, end). Records that
// have not started yet or carry bad dates report false.
func daysSpent(r model.Record, today datemath.Timestamp) (int, bool) {
	s, err := datemath.ParseDate(r.StartDate)
	if err != nil {
		return 0, false
	}
	e, err := datemath.ParseDate(r.EndDate)
	if err != nil {
		return 0, false
	}
	if today < s {
		return 0, false
	}
	if today < e {
		return int(datemath.Days(s, today)), true
	}
	return int(datemath.Days(s, e)), true
}

func TotalDaysSpent(records []model.Record, now time.Time) int {
	today := datemath.FromTime(now)
	total := 0
	for _, r := range records {
		if days, ok := daysSpent(r, today); ok {
			total += days
		}
	}
	return total
}

func CountsByState(records []model.Record) []Bucket {
	out := newBuckets(model.States)
	index := bucketIndex(model.States)
	for _, r := range records {
		if i, ok := index[r.State]; ok {
			out[i].Value++
		}
	}
	return out
}

func DaysByState(records []model.Record, now time.Time) []Bucket {
	out, _ := daysByState(records, now)
	return out
}

func MeanDaysByState(records []model.Record, now time.Time) []Bucket {
	out, counts := daysByState(records, now)
	for i := range out {
		if counts[i] > 0 {
			out[i].Value /= counts[i]
		}
	}
	return out
}

func Summarize(records []model.Record, now time.Time) Summary {
	days, counts := daysByState(records, now)
	mean := make([]Bucket, len(days))
	copy(mean, days)
	for i := range mean {
		if counts[i] > 0 {
			mean[i].Value /= counts[i]
		}
	}
	return Summary{
		TotalDays: TotalDaysSpent(records, now),
		Counts:    CountsByState(records),
		Days:      days,
		MeanDays:  mean,
	}
}

func daysByState(records []model.Record, now time.Time) ([]Bucket, []int) {
	today := datemath.FromTime(now)
	out := newBuckets(spentStates)
	counts := make([]int, len(spentStates))
	index := bucketIndex(spentStates)
	for _, r := range records {
		i, ok := index[r.State]
		if !ok {
			continue
		}
		days, ok := daysSpent(r, today)
		if !ok {
			continue
		}
		out[i].Value += days
		counts[i]++
	}
	return out, counts
}

func newBuckets(states []model.RecordState) []Bucket {
	out := make([]Bucket, len(states))
	for i, s := range states {
		out[i] = Bucket{Label: string(s), Color: StateColor(s)}
	}
	return out
}

func bucketIndex(states []model.RecordState) map[model.RecordState]int {
	index := make(map[model.RecordState]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	return index
}
