package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyDescription   = errors.New("model: task description is required")
	ErrInvalidKind        = errors.New("model: invalid task kind")
	ErrMissingDateTime    = errors.New("model: task date time is required")
	ErrUnexpectedDateTime = errors.New("model: task kind does not carry this date time")
	ErrInvalidDateTime    = errors.New("model: invalid date time")
)

// DateTimeLayout is the input and persisted form, e.g. 28/01/2023 1800.
const DateTimeLayout = "02/01/2006 1504"

const displayLayout = "Jan 02 2006 15:04"

// blankChars are the characters a description may not consist of alone. It is
// the same set the command grammar treats as whitespace.
const blankChars = " \t\n\f\r"

type Kind string

const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindTodo, KindDeadline, KindEvent:
		return true
	default:
		return false
	}
}

type Task struct {
	Kind        Kind
	Description string
	Done        bool
	By          time.Time
	From        time.Time
	To          time.Time
}

func NewTodo(description string) Task {
	return Task{Kind: KindTodo, Description: description}
}

func NewDeadline(description string, by time.Time) Task {
	return Task{Kind: KindDeadline, Description: description, By: by}
}

func NewEvent(description string, from, to time.Time) Task {
	return Task{Kind: KindEvent, Description: description, From: from, To: to}
}

func ParseDateTime(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, raw)
	}
	return t, nil
}

func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// IsBlank reports whether s holds nothing but spaces, tabs, newlines, form
// feeds and carriage returns.
func IsBlank(s string) bool {
	return strings.Trim(s, blankChars) == ""
}

func (t Task) Validate() error {
	if IsBlank(t.Description) {
		return ErrEmptyDescription
	}
	switch t.Kind {
	case KindTodo:
		if !t.By.IsZero() || !t.From.IsZero() || !t.To.IsZero() {
			return fmt.Errorf("%w: todo", ErrUnexpectedDateTime)
		}
	case KindDeadline:
		if t.By.IsZero() {
			return fmt.Errorf("%w: deadline needs by", ErrMissingDateTime)
		}
		if !t.From.IsZero() || !t.To.IsZero() {
			return fmt.Errorf("%w: deadline", ErrUnexpectedDateTime)
		}
	case KindEvent:
		if t.From.IsZero() || t.To.IsZero() {
			return fmt.Errorf("%w: event needs from and to", ErrMissingDateTime)
		}
		if !t.By.IsZero() {
			return fmt.Errorf("%w: event", ErrUnexpectedDateTime)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	return nil
}

func (t Task) Equal(other Task) bool {
	return t.Kind == other.Kind &&
		t.Description == other.Description &&
		t.Done == other.Done &&
		t.By.Equal(other.By) &&
		t.From.Equal(other.From) &&
		t.To.Equal(other.To)
}

func (t Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

func (t Task) String() string {
	base := fmt.Sprintf("[%s][%s] %s", t.Kind, t.StatusIcon(), t.Description)
	switch t.Kind {
	case KindDeadline:
		return fmt.Sprintf("%s (by: %s)", base, t.By.Format(displayLayout))
	case KindEvent:
		return fmt.Sprintf("%s (from: %s to: %s)", base, t.From.Format(displayLayout), t.To.Format(displayLayout))
	default:
		return base
	}
}
