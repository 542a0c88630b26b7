package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskquest/internal/focus"
	"github.com/sandeepkv93/taskquest/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeWorld  Type = "world"
	TypeSearch Type = "search"
	TypeSaga   Type = "saga"
	TypeTimer  Type = "timer"
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

const DeadlineLayout = "2006-01-02"

// AddArgs is a parsed quest. Zero World or Priority means "use the default".
type AddArgs struct {
	Title    string
	World    model.World
	Priority model.Priority
	Deadline *time.Time
}

type WorldArgs struct {
	World model.World
}

// SearchArgs with an empty Query clears the search.
type SearchArgs struct {
	Query string
}

type SagaArgs struct {
	Saga model.Saga
}

type TimerAction string

const (
	TimerToggle TimerAction = "toggle"
	TimerReset  TimerAction = "reset"
	TimerSwitch TimerAction = "switch"
)

type TimerArgs struct {
	Action TimerAction
	Mode   focus.Mode
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	World  *WorldArgs
	Search *SearchArgs
	Saga   *SagaArgs
	Timer  *TimerArgs
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
	case TypeAdd:
		add, err := parseAddArgs(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeAdd, Raw: input, Add: &add}, nil
	case TypeWorld:
		return parseWorld(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: strings.Join(args, " ")}}, nil
	case TypeSaga:
		return parseSaga(input, args)
	case TypeTimer:
		return parseTimer(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// ParseAdd reads a quick-add line: free text plus optional p:, w: and due:
// tokens.
func ParseAdd(input string) (AddArgs, error) {
	return parseAddArgs(strings.Fields(input))
}

func parseAddArgs(args []string) (AddArgs, error) {
	var out AddArgs
	words := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok || value == "" {
			words = append(words, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "p", "priority":
			p, err := model.ParsePriority(value)
			if err != nil {
				return AddArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			out.Priority = p
		case "w", "world":
			w, err := model.ParseWorld(value)
			if err != nil {
				return AddArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			out.World = w
		case "due":
			d, err := time.ParseInLocation(DeadlineLayout, value, time.UTC)
			if err != nil {
				return AddArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("due date must look like %s", DeadlineLayout)}
			}
			out.Deadline = &d
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return AddArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return out, nil
}

func parseWorld(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "world requires a name"}
	}
	w, err := model.ParseWorld(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeWorld, Raw: raw, World: &WorldArgs{World: w}}, nil
}

func parseSaga(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "saga requires a name"}
	}
	s, err := model.ParseSaga(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeSaga, Raw: raw, Saga: &SagaArgs{Saga: s}}, nil
}

func parseTimer(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "timer requires start, pause, reset, work, short or long"}
	}
	var out TimerArgs
	switch strings.ToLower(args[0]) {
	case "start", "pause", "toggle":
		out.Action = TimerToggle
	case "reset":
		out.Action = TimerReset
	case "work":
		out = TimerArgs{Action: TimerSwitch, Mode: focus.ModeWork}
	case "short":
		out = TimerArgs{Action: TimerSwitch, Mode: focus.ModeShortBreak}
	case "long":
		out = TimerArgs{Action: TimerSwitch, Mode: focus.ModeLongBreak}
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown timer action: %s", args[0])}
	}
	return Command{Type: TypeTimer, Raw: raw, Timer: &out}, nil
}
