package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tasklog/internal/datemath"
	"github.com/sandeepkv93/tasklog/internal/model"
)

type Type string

const (
	TypeNew     Type = "new"
	TypeSearch  Type = "search"
	TypeState   Type = "state"
	TypeArchive Type = "archive"
	TypeRecover Type = "recover"
	TypePlan    Type = "plan"
	TypeMove    Type = "move"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TargetSelected refers to the record under the list cursor.
const TargetSelected = "selected"

type NewArgs struct {
	Title     string
	StartDate string
	EndDate   string
	Tags      []string
}

type SearchArgs struct {
	Keyword string
}

type StateArgs struct {
	Target string
	State  model.RecordState
}

type TargetArgs struct {
	Target string
}

type PlanAction string

const (
	PlanAdd      PlanAction = "add"
	PlanToggle   PlanAction = "toggle"
	PlanRemove   PlanAction = "remove"
	PlanClear    PlanAction = "clear"
	PlanGenerate PlanAction = "generate"
)

type PlanArgs struct {
	Action PlanAction
	Detail string
	Index  int
}

type MoveArgs struct {
	From int
	To   int
}

type Command struct {
	Type    Type
	Raw     string
	New     *NewArgs
	Search  *SearchArgs
	State   *StateArgs
	Archive *TargetArgs
	Recover *TargetArgs
	Plan    *PlanArgs
	Move    *MoveArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeNew:
		return parseNew(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Keyword: strings.Join(args, " ")}}, nil
	case TypeState:
		return parseState(input, args)
	case TypeArchive:
		return Command{Type: TypeArchive, Raw: input, Archive: &TargetArgs{Target: target(args)}}, nil
	case TypeRecover:
		if len(args) == 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "recover requires an archived record id"}
		}
		return Command{Type: TypeRecover, Raw: input, Recover: &TargetArgs{Target: args[0]}}, nil
	case TypePlan:
		return parsePlan(input, args)
	case TypeMove:
		return parseMove(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseNew reads "/new title words [start:DATE] [end:DATE] [tag:NAME]...".
func parseNew(raw string, args []string) (Command, error) {
	out := NewArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		switch {
		case ok && strings.EqualFold(key, "start"):
			if _, err := datemath.ParseDate(value); err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			out.StartDate = value
		case ok && strings.EqualFold(key, "end"):
			if _, err := datemath.ParseDate(value); err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			out.EndDate = value
		case ok && strings.EqualFold(key, "tag") && value != "":
			out.Tags = append(out.Tags, value)
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "new requires a title"}
	}
	return Command{Type: TypeNew, Raw: raw, New: &out}, nil
}

func parseState(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "state requires a state name"}
	}
	name := args[len(args)-1]
	state, ok := matchState(name)
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown state: %s", name)}
	}
	return Command{Type: TypeState, Raw: raw, State: &StateArgs{Target: target(args[:len(args)-1]), State: state}}, nil
}

func parsePlan(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "plan requires an action"}
	}
	action := PlanAction(strings.ToLower(args[0]))
	rest := args[1:]
	out := PlanArgs{Action: action}
	switch action {
	case PlanAdd:
		out.Detail = strings.TrimSpace(strings.Join(rest, " "))
		if out.Detail == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "plan add requires a step"}
		}
	case PlanToggle, PlanRemove:
		if len(rest) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("plan %s requires a step number", action)}
		}
		n, err := stepNumber(rest[0])
		if err != nil {
			return Command{}, err
		}
		out.Index = n
	case PlanClear, PlanGenerate:
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown plan action: %s", args[0])}
	}
	return Command{Type: TypePlan, Raw: raw, Plan: &out}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires from and to step numbers"}
	}
	from, err := stepNumber(args[0])
	if err != nil {
		return Command{}, err
	}
	to, err := stepNumber(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{From: from, To: to}}, nil
}

// stepNumber converts a 1-based step number into an index.
func stepNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid step number: %s", s)}
	}
	return n - 1, nil
}

func matchState(name string) (model.RecordState, bool) {
	for _, s := range model.States {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

func target(args []string) string {
	if len(args) == 0 {
		return TargetSelected
	}
	return args[0]
}
