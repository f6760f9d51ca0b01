package commands

import (
	"fmt"

	"github.com/sandeepkv93/taskbot/internal/model"
)

const (
	ByeMessage     = "Bye. Hope to see you again soon!"
	InvalidMessage = "Invalid command"
)

type Result struct {
	Message string
	Exit    bool
}

type Handlers struct {
	List   func() (Result, error)
	Add    func(model.Task) (Result, error)
	Mark   func(index int) (Result, error)
	Unmark func(index int) (Result, error)
	Delete func(indices []int) (Result, error)
	Find   func(keyword string) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeBye:
		return Result{Message: ByeMessage, Exit: true}, nil
	case TypeInvalid:
		return Result{Message: InvalidMessage}, nil
	case TypeList:
		if handlers.List == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.List()
	case TypeTodo, TypeDeadline, TypeEvent:
		if handlers.Add == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		if cmd.Task == nil {
			return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("%s command carries no task", cmd.Type)}
		}
		return handlers.Add(*cmd.Task)
	case TypeMark:
		if handlers.Mark == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Mark(cmd.Index)
	case TypeUnmark:
		if handlers.Unmark == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Unmark(cmd.Index)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Delete(cmd.Indices)
	case TypeFind:
		if handlers.Find == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Find(cmd.Keyword)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
