package tasklist

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskbot/internal/logging"
	"github.com/sandeepkv93/taskbot/internal/model"
	"github.com/sandeepkv93/taskbot/internal/storage"
)

const (
	EmptyListMessage = "You have no tasks in your list."
	NoMatchesMessage = "No matching tasks found."
)

var ErrNoTaskNumbers = errors.New("tasklist: no task numbers given")

// IndexError reports a task number that does not refer to an existing task.
type IndexError struct {
	Number int
	Count  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("Task %d does not exist. You have %s in the list.", e.Number, countTasks(e.Count))
}

// Entry is a task together with its one-based position in the full list.
type Entry struct {
	Number int
	Task   model.Task
}

func (e Entry) String() string {
	return fmt.Sprintf("%d.%s", e.Number, e.Task)
}

// TaskList is the ordered task collection of one session. It writes the full
// list to its store after every mutation.
type TaskList struct {
	tasks   []model.Task
	store   storage.Storage
	logger  *log.Logger
	saveErr error
}

func New(store storage.Storage, tasks []model.Task, logger *log.Logger) *TaskList {
	return &TaskList{
		tasks:  slices.Clone(tasks),
		store:  store,
		logger: logging.OrDiscard(logger),
	}
}

// Load reads the persisted tasks once and wraps them in a TaskList.
func Load(ctx context.Context, store storage.Storage, logger *log.Logger) (*TaskList, error) {
	tasks, err := store.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	l := New(store, tasks, logger)
	l.logger.Info("task list loaded", "count", len(tasks))
	return l, nil
}

func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the current tasks.
func (l *TaskList) Tasks() []model.Task {
	return slices.Clone(l.tasks)
}

// LastSaveError is the error of the most recent save, or nil if it succeeded.
func (l *TaskList) LastSaveError() error {
	return l.saveErr
}

// Entries yields every task with its one-based number. Each call starts over.
func (l *TaskList) Entries() iter.Seq[Entry] {
	return l.Matches("")
}

// Matches yields the tasks whose description contains keyword, numbered by
// their position in the full list.
func (l *TaskList) Matches(keyword string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i, t := range l.tasks {
			if !strings.Contains(t.Description, keyword) {
				continue
			}
			if !yield(Entry{Number: i + 1, Task: t}) {
				return
			}
		}
	}
}

func (l *TaskList) List() string {
	return render("Here are the tasks in your list:", EmptyListMessage, l.Entries())
}

func (l *TaskList) Find(keyword string) string {
	return render("Here are the matching tasks in your list:", NoMatchesMessage, l.Matches(keyword))
}

func (l *TaskList) Add(ctx context.Context, task model.Task) string {
	l.tasks = append(l.tasks, task)
	l.logger.Debug("task added", "kind", task.Kind, "count", len(l.tasks))
	msg := fmt.Sprintf("Got it. I've added this task:\n  %s\nNow you have %s in the list.", task, countTasks(len(l.tasks)))
	return l.persist(ctx, msg)
}

// Delete removes the tasks at the given zero-based indices. Every index is
// checked before anything is removed; repeated indices remove one task. At
// least one index is required.
func (l *TaskList) Delete(ctx context.Context, indices []int) (string, error) {
	if len(indices) == 0 {
		return "", ErrNoTaskNumbers
	}
	doomed := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if err := l.check(idx); err != nil {
			return "", err
		}
		doomed[idx] = true
	}

	removed := make([]model.Task, 0, len(doomed))
	kept := make([]model.Task, 0, len(l.tasks)-len(doomed))
	for i, t := range l.tasks {
		if doomed[i] {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	l.tasks = kept
	l.logger.Debug("tasks deleted", "removed", len(removed), "count", len(l.tasks))

	var b strings.Builder
	if len(removed) == 1 {
		b.WriteString("Noted. I've removed this task:")
	} else {
		b.WriteString("Noted. I've removed these tasks:")
	}
	for _, t := range removed {
		b.WriteString("\n  ")
		b.WriteString(t.String())
	}
	fmt.Fprintf(&b, "\nNow you have %s in the list.", countTasks(len(l.tasks)))
	return l.persist(ctx, b.String()), nil
}

func (l *TaskList) Mark(ctx context.Context, idx int) (string, error) {
	if err := l.check(idx); err != nil {
		return "", err
	}
	l.tasks[idx].Done = true
	msg := fmt.Sprintf("Nice! I've marked this task as done:\n  %s", l.tasks[idx])
	return l.persist(ctx, msg), nil
}

func (l *TaskList) Unmark(ctx context.Context, idx int) (string, error) {
	if err := l.check(idx); err != nil {
		return "", err
	}
	l.tasks[idx].Done = false
	msg := fmt.Sprintf("OK, I've marked this task as not done yet:\n  %s", l.tasks[idx])
	return l.persist(ctx, msg), nil
}

func (l *TaskList) check(idx int) error {
	if idx < 0 || idx >= len(l.tasks) {
		return &IndexError{Number: idx + 1, Count: len(l.tasks)}
	}
	return nil
}

// persist saves the full list. A failed save keeps the in-memory change and
// adds a warning line to msg.
func (l *TaskList) persist(ctx context.Context, msg string) string {
	if l.store == nil {
		return msg
	}
	l.saveErr = l.store.SaveTasks(ctx, l.Tasks())
	if l.saveErr != nil {
		l.logger.Error("save tasks failed", "count", len(l.tasks), "err", l.saveErr)
		return msg + "\nWarning: your changes could not be saved: " + l.saveErr.Error()
	}
	return msg
}

func render(header, empty string, entries iter.Seq[Entry]) string {
	var b strings.Builder
	for e := range entries {
		if b.Len() == 0 {
			b.WriteString(header)
		}
		b.WriteString("\n")
		b.WriteString(e.String())
	}
	if b.Len() == 0 {
		return empty
	}
	return b.String()
}

func countTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
