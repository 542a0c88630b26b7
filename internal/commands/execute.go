package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	World  func(WorldArgs) (Result, error)
	Search func(SearchArgs) (Result, error)
	Saga   func(SagaArgs) (Result, error)
	Timer  func(TimerArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeWorld:
		if handlers.World == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.World(*cmd.World)
	case TypeSearch:
		if handlers.Search == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Search(*cmd.Search)
	case TypeSaga:
		if handlers.Saga == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Saga(*cmd.Saga)
	case TypeTimer:
		if handlers.Timer == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Timer(*cmd.Timer)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
