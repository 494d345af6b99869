package records

import (
	"strings"

	"github.com/sandeepkv93/tasklog/internal/model"
	"github.com/sandeepkv93/tasklog/internal/reorder"
)

// Plan edits return a new record; the input is left untouched.

func AddStep(r model.Record, detail string) model.Record {
	out := r.Clone()
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return out
	}
	out.Plan = append(out.Plan, model.PlanStep{Detail: detail})
	return out
}

func ToggleStep(r model.Record, index int) model.Record {
	out := r.Clone()
	if index < 0 || index >= len(out.Plan) {
		return out
	}
	out.Plan[index].IsFinished = !out.Plan[index].IsFinished
	return out
}

func RemoveStep(r model.Record, index int) model.Record {
	out := r.Clone()
	out.Plan = reorder.Remove(out.Plan, index)
	return out
}

func ClearPlan(r model.Record) model.Record {
	out := r.Clone()
	out.Plan = nil
	return out
}

func MoveStep(r model.Record, from, to int) model.Record {
	out := r.Clone()
	out.Plan = reorder.MoveIndex(out.Plan, from, to)
	return out
}

// DragStep drops the step at start onto the slot under targetY, with
// steps laid out itemHeight apart.
func DragStep(r model.Record, start int, targetY, itemHeight float64) model.Record {
	out := r.Clone()
	out.Plan = reorder.Move(out.Plan, start, targetY, itemHeight)
	return out
}

// ReplacePlan installs generated step descriptions as an unfinished
// checklist.
func ReplacePlan(r model.Record, steps []string) model.Record {
	out := r.Clone()
	out.Plan = make([]model.PlanStep, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out.Plan = append(out.Plan, model.PlanStep{Detail: s})
		}
	}
	return out
}
