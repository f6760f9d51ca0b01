package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskbot/internal/model"
)

type Type string

const (
	TypeBye      Type = "bye"
	TypeList     Type = "list"
	TypeTodo     Type = "todo"
	TypeDeadline Type = "deadline"
	TypeEvent    Type = "event"
	TypeMark     Type = "mark"
	TypeUnmark   Type = "unmark"
	TypeDelete   Type = "delete"
	TypeFind     Type = "find"
	TypeInvalid  Type = "invalid"
)

// DateTimeFormatMessage is the reply for any date time that does not match model.DateTimeLayout.
const DateTimeFormatMessage = "Date time must be in this format: 28/01/2023 1800"

type ErrorCode string

const (
	ErrCodeUnknownCommand ErrorCode = "unknown_command"
	ErrCodeHandlerMissing ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FormatError reports a line that does not match the grammar of its command.
type FormatError struct {
	Command Type
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	return e.Message
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func usageError(cmd Type, usage string) *FormatError {
	return &FormatError{
		Command: cmd,
		Message: fmt.Sprintf("Invalid '%s' command format. Usage: %s", cmd, usage),
	}
}

func dateTimeError(cmd Type, err error) *FormatError {
	return &FormatError{Command: cmd, Message: DateTimeFormatMessage, Err: err}
}

var (
	todoPattern     = regexp.MustCompile(`^todo\s(\S.*)$`)
	deadlinePattern = regexp.MustCompile(`^deadline\s(\S.*)\s/by\s(\S.*)$`)
	eventPattern    = regexp.MustCompile(`^event\s(\S.*)\s/from\s(\S.*)\s/to\s(\S.*)$`)
	markPattern     = regexp.MustCompile(`^mark\s(\d+)$`)
	unmarkPattern   = regexp.MustCompile(`^unmark\s(\d+)$`)
	deletePattern   = regexp.MustCompile(`^delete(\s\d+)+$`)
	findPattern     = regexp.MustCompile(`^find\s(\S.*)$`)
)

type Command struct {
	Type    Type
	Raw     string
	Task    *model.Task
	Index   int
	Indices []int
	Keyword string
}

// Parse turns one raw line into a command. Lines that name no known command
// parse to TypeInvalid without error; a known command with a malformed body
// returns a *FormatError.
func Parse(input string) (Command, error) {
	switch input {
	case "bye":
		return Command{Type: TypeBye, Raw: input}, nil
	case "list":
		return Command{Type: TypeList, Raw: input}, nil
	}

	switch {
	case strings.HasPrefix(input, "mark"):
		idx, err := ParseMark(input)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeMark, Raw: input, Index: idx}, nil
	case strings.HasPrefix(input, "unmark"):
		idx, err := ParseUnmark(input)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeUnmark, Raw: input, Index: idx}, nil
	case strings.HasPrefix(input, "delete"):
		indices, err := ParseDelete(input)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDelete, Raw: input, Indices: indices}, nil
	case strings.HasPrefix(input, "todo"):
		return taskCommand(TypeTodo, input, ParseTodo)
	case strings.HasPrefix(input, "deadline"):
		return taskCommand(TypeDeadline, input, ParseDeadline)
	case strings.HasPrefix(input, "event"):
		return taskCommand(TypeEvent, input, ParseEvent)
	case strings.HasPrefix(input, "find"):
		keyword, err := ParseFind(input)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeFind, Raw: input, Keyword: keyword}, nil
	default:
		return Command{Type: TypeInvalid, Raw: input}, nil
	}
}

func taskCommand(typ Type, input string, parse func(string) (model.Task, error)) (Command, error) {
	task, err := parse(input)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: input, Task: &task}, nil
}

func ParseTodo(input string) (model.Task, error) {
	m := todoPattern.FindStringSubmatch(input)
	if m == nil {
		return model.Task{}, usageError(TypeTodo, "todo <description>")
	}
	return model.NewTodo(m[1]), nil
}

func ParseDeadline(input string) (model.Task, error) {
	m := deadlinePattern.FindStringSubmatch(input)
	if m == nil {
		return model.Task{}, usageError(TypeDeadline, "deadline <description> /by <date time>")
	}
	by, err := model.ParseDateTime(m[2])
	if err != nil {
		return model.Task{}, dateTimeError(TypeDeadline, err)
	}
	return model.NewDeadline(m[1], by), nil
}

func ParseEvent(input string) (model.Task, error) {
	m := eventPattern.FindStringSubmatch(input)
	if m == nil {
		return model.Task{}, usageError(TypeEvent, "event <description> /from <date time> /to <date time>")
	}
	from, err := model.ParseDateTime(m[2])
	if err != nil {
		return model.Task{}, dateTimeError(TypeEvent, err)
	}
	to, err := model.ParseDateTime(m[3])
	if err != nil {
		return model.Task{}, dateTimeError(TypeEvent, err)
	}
	return model.NewEvent(m[1], from, to), nil
}

func ParseMark(input string) (int, error) {
	return parseSingleIndex(TypeMark, markPattern, input)
}

func ParseUnmark(input string) (int, error) {
	return parseSingleIndex(TypeUnmark, unmarkPattern, input)
}

// ParseDelete returns the zero-based indices named by a delete command, in the
// order given. Whether they exist is left to the task list.
func ParseDelete(input string) ([]int, error) {
	bad := usageError(TypeDelete, "delete <existing task number> [more task numbers]")
	if !deletePattern.MatchString(input) {
		return nil, bad
	}
	fields := strings.Fields(input)[1:]
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		idx, ok := toIndex(f)
		if !ok {
			return nil, bad
		}
		out = append(out, idx)
	}
	return out, nil
}

func ParseFind(input string) (string, error) {
	m := findPattern.FindStringSubmatch(input)
	if m == nil {
		return "", usageError(TypeFind, "find <keyword>")
	}
	return m[1], nil
}

func parseSingleIndex(typ Type, pattern *regexp.Regexp, input string) (int, error) {
	bad := usageError(typ, fmt.Sprintf("%s <existing task number>", typ))
	m := pattern.FindStringSubmatch(input)
	if m == nil {
		return 0, bad
	}
	idx, ok := toIndex(m[1])
	if !ok {
		return 0, bad
	}
	return idx, nil
}

// toIndex converts a one-based task number to a zero-based index.
func toIndex(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
