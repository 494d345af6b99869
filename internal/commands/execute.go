package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	New     func(NewArgs) (Result, error)
	Search  func(SearchArgs) (Result, error)
	State   func(StateArgs) (Result, error)
	Archive func(TargetArgs) (Result, error)
	Recover func(TargetArgs) (Result, error)
	Plan    func(PlanArgs) (Result, error)
	Move    func(MoveArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeNew:
		if handlers.New == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.New(*cmd.New)
	case TypeSearch:
		if handlers.Search == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Search(*cmd.Search)
	case TypeState:
		if handlers.State == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.State(*cmd.State)
	case TypeArchive:
		if handlers.Archive == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Archive(*cmd.Archive)
	case TypeRecover:
		if handlers.Recover == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Recover(*cmd.Recover)
	case TypePlan:
		if handlers.Plan == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Plan(*cmd.Plan)
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
