package progress

import (
	"time"

	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/model"
)

// Fraction reports completion in [0, 1]. A non-empty checklist always wins
// over the date window.
func Fraction(plan []model.PlanStep, start, end string, now time.Time) float32 {
	if len(plan) > 0 {
		done := 0
		for _, step := range plan {
			if step.IsFinished {
				done++
			}
		}
		return float32(done) / float32(len(plan))
	}

	s, err := datemath.ParseDate(start)
	if err != nil {
		return 0
	}
	e, err := datemath.ParseDate(end)
	if err != nil {
		return 0
	}
	elapsed := max(0, datemath.Days(s, datemath.FromTime(now)))
	span := max(1, datemath.Days(s, e))
	if elapsed >= span {
		return 1
	}
	return float32(elapsed) / float32(span)
}

func RemainingDays(start, end string) int {
	diff, err := datemath.DayDifference(start, end)
	if err != nil || diff < 0 {
		return 0
	}
	return int(diff)
}

func RemainingDaysDigits(start, end string) []int {
	return Digits(RemainingDays(start, end))
}

// Digits splits n for a two-slot minimum display: 7 -> [0 7], 42 -> [4 2].
func Digits(n int) []int {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return []int{0, n}
	}
	var out []int
	for n > 0 {
		out = append([]int{n % 10}, out...)
		n /= 10
	}
	return out
}

// CurrentPlanStep returns the first unfinished step, or len(plan).
func CurrentPlanStep(plan []model.PlanStep) int {
	for i, step := range plan {
		if !step.IsFinished {
			return i
		}
	}
	return len(plan)
}
