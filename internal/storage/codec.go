package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskbot/internal/model"
)

const fieldSep = " | "

// EncodeTask renders one task as a persisted line, e.g.
// "1 | D | return books | 29/01/2024 1800".
func EncodeTask(t model.Task) string {
	done := "0"
	if t.Done {
		done = "1"
	}
	fields := []string{done, string(t.Kind), t.Description}
	switch t.Kind {
	case model.KindDeadline:
		fields = append(fields, model.FormatDateTime(t.By))
	case model.KindEvent:
		fields = append(fields, model.FormatDateTime(t.From), model.FormatDateTime(t.To))
	}
	return strings.Join(fields, fieldSep)
}

// DecodeTask parses a line written by EncodeTask. Date fields are peeled off
// the end of the line so the description keeps any separators it contains.
func DecodeTask(line string) (model.Task, error) {
	parts := strings.SplitN(line, fieldSep, 3)
	if len(parts) < 3 {
		return model.Task{}, fmt.Errorf("%w: want at least 3 fields, got %d", ErrMalformedRecord, len(parts))
	}

	var t model.Task
	switch parts[0] {
	case "0":
	case "1":
		t.Done = true
	default:
		return model.Task{}, fmt.Errorf("%w: bad done flag %q", ErrMalformedRecord, parts[0])
	}

	t.Kind = model.Kind(parts[1])
	rest := parts[2]
	var dateCount int
	switch t.Kind {
	case model.KindTodo:
	case model.KindDeadline:
		dateCount = 1
	case model.KindEvent:
		dateCount = 2
	default:
		return model.Task{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedRecord, parts[1])
	}

	dates := make([]time.Time, dateCount)
	for i := dateCount - 1; i >= 0; i-- {
		cut := strings.LastIndex(rest, fieldSep)
		if cut < 0 {
			return model.Task{}, fmt.Errorf("%w: kind %s needs %d date fields", ErrMalformedRecord, t.Kind, dateCount)
		}
		dt, err := model.ParseDateTime(rest[cut+len(fieldSep):])
		if err != nil {
			return model.Task{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		dates[i] = dt
		rest = rest[:cut]
	}
	t.Description = rest
	switch t.Kind {
	case model.KindDeadline:
		t.By = dates[0]
	case model.KindEvent:
		t.From, t.To = dates[0], dates[1]
	}

	if err := t.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return t, nil
}

