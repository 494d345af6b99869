package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasklog/internal/datemath"
)

var (
	ErrInvalidState = errors.New("model: invalid record state")
	ErrDateOrder    = errors.New("model: end_date before start_date")
)

type RecordState string

const (
	StateNotStarted RecordState = "NotStarted"
	StateRunning    RecordState = "Running"
	StateFinished   RecordState = "Finished"
	StateGiveup     RecordState = "Giveup"
	StateTimeout    RecordState = "Timeout"
)

// States lists every state in display order.
var States = []RecordState{StateNotStarted, StateRunning, StateFinished, StateGiveup, StateTimeout}

func (s RecordState) IsValid() bool {
	switch s {
	case StateNotStarted, StateRunning, StateFinished, StateGiveup, StateTimeout:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether automatic re-derivation must leave s alone.
func (s RecordState) IsTerminal() bool {
	return s == StateFinished || s == StateGiveup
}

func ParseRecordState(raw string) (RecordState, error) {
	s := RecordState(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, raw)
	}
	return s, nil
}

func (s RecordState) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, string(s))
	}
	return json.Marshal(string(s))
}

func (s *RecordState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidState, string(data))
	}
	parsed, err := ParseRecordState(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type PlanStep struct {
	Detail     string `json:"detail"`
	IsFinished bool   `json:"is_finished"`
}

type Record struct {
	UUID      string      `json:"uuid"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Title     string      `json:"title"`
	Plan      []PlanStep  `json:"plan"`
	Tags      []string    `json:"tags"`
	State     RecordState `json:"state"`
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.UUID) == "" {
		return errors.New("model: record uuid is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("model: record title is required")
	}
	if !r.State.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, r.State)
	}
	diff, err := datemath.DayDifference(r.StartDate, r.EndDate)
	if err != nil {
		return fmt.Errorf("model: record dates: %w", err)
	}
	if diff < 0 {
		return fmt.Errorf("%w: %s > %s", ErrDateOrder, r.StartDate, r.EndDate)
	}
	return nil
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	out := r
	if r.Plan != nil {
		out.Plan = append([]PlanStep(nil), r.Plan...)
	}
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	return out
}

func (r Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func Encode(r Record) (string, error) {
	if r.Plan == nil {
		r.Plan = []PlanStep{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode record %s: %w", r.UUID, err)
	}
	return string(data), nil
}

func Decode(data string) (Record, error) {
	var out Record
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if !out.State.IsValid() {
		return Record{}, fmt.Errorf("decode record %s: %w: missing state", out.UUID, ErrInvalidState)
	}
	return out, nil
}
