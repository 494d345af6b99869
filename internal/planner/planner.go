package planner

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyPlan    = errors.New("planner: empty plan")
	ErrInvalidInput = errors.New("planner: invalid request")
)

// Request describes the task a plan should be generated for.
type Request struct {
	Days   int
	Task   string
	Locale string
}

func (r Request) Validate() error {
	if strings.TrimSpace(r.Task) == "" {
		return errors.Join(ErrInvalidInput, errors.New("task is required"))
	}
	if r.Days <= 0 {
		return errors.Join(ErrInvalidInput, errors.New("days must be positive"))
	}
	return nil
}

// Generator turns a task into an ordered list of step descriptions. A
// failed call returns no steps at all.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]string, error)
}

var stepPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)]|(?i:day)\s*\d+\s*[:.)-])\s*`)

// ParseSteps splits model output into one step per non-empty line with list
// markers removed.
func ParseSteps(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(stepPrefix.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
