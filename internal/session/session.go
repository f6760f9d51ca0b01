package session

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskbot/internal/commands"
	"github.com/sandeepkv93/taskbot/internal/logging"
	"github.com/sandeepkv93/taskbot/internal/model"
	"github.com/sandeepkv93/taskbot/internal/tasklist"
)

const Greeting = "Hello! I'm Taskbot.\nWhat can I do for you?"

type Reply struct {
	Text    string
	Exit    bool
	IsError bool
}

// Session owns the task list for one run and turns input lines into replies.
type Session struct {
	tasks  *tasklist.TaskList
	logger *log.Logger
}

func New(tasks *tasklist.TaskList, logger *log.Logger) *Session {
	return &Session{tasks: tasks, logger: logging.OrDiscard(logger)}
}

func (s *Session) Tasks() *tasklist.TaskList {
	return s.tasks
}

// Reply handles one input line. Format and index errors become the reply
// text; the session always continues unless the line was bye.
func (s *Session) Reply(ctx context.Context, line string) Reply {
	cmd, err := commands.Parse(line)
	if err != nil {
		return s.failure(line, err)
	}

	res, err := commands.Execute(cmd, s.handlers(ctx))
	if err != nil {
		return s.failure(line, err)
	}
	s.logger.Debug("command handled", "type", cmd.Type, "exit", res.Exit)
	return Reply{Text: res.Message, Exit: res.Exit}
}

func (s *Session) handlers(ctx context.Context) commands.Handlers {
	return commands.Handlers{
		List: func() (commands.Result, error) {
			return commands.Result{Message: s.tasks.List()}, nil
		},
		Add: func(t model.Task) (commands.Result, error) {
			return commands.Result{Message: s.tasks.Add(ctx, t)}, nil
		},
		Mark: func(idx int) (commands.Result, error) {
			msg, err := s.tasks.Mark(ctx, idx)
			return commands.Result{Message: msg}, err
		},
		Unmark: func(idx int) (commands.Result, error) {
			msg, err := s.tasks.Unmark(ctx, idx)
			return commands.Result{Message: msg}, err
		},
		Delete: func(indices []int) (commands.Result, error) {
			msg, err := s.tasks.Delete(ctx, indices)
			return commands.Result{Message: msg}, err
		},
		Find: func(keyword string) (commands.Result, error) {
			return commands.Result{Message: s.tasks.Find(keyword)}, nil
		},
	}
}

func (s *Session) failure(line string, err error) Reply {
	var fe *commands.FormatError
	var ie *tasklist.IndexError
	switch {
	case errors.As(err, &fe):
		s.logger.Debug("format error", "line", line, "command", fe.Command)
	case errors.As(err, &ie):
		s.logger.Debug("index error", "line", line, "number", ie.Number)
	default:
		s.logger.Error("command failed", "line", line, "err", err)
	}
	return Reply{Text: err.Error(), IsError: true}
}
