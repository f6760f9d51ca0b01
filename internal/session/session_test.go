package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/taskbot/internal/commands"
	"github.com/sandeepkv93/taskbot/internal/storage"
	"github.com/sandeepkv93/taskbot/internal/tasklist"
)

func newSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store, err := storage.NewFileStore(path, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	list, err := tasklist.Load(t.Context(), store, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(list, nil), path
}

func TestReplyConversation(t *testing.T) {
	s, path := newSession(t)
	ctx := t.Context()

	steps := []struct {
		in      string
		want    string
		isError bool
	}{
		{"list", tasklist.EmptyListMessage, false},
		{"todo read book", "Got it. I've added this task:\n  [T][ ] read book\nNow you have 1 task in the list.", false},
		{"deadline return books /by 29/01/2024 1800", "Got it. I've added this task:\n  [D][ ] return books (by: Jan 29 2024 18:00)\nNow you have 2 tasks in the list.", false},
		{"event club /from 30/01/2024 1400 /to 30/01/2024 1600", "Got it. I've added this task:\n  [E][ ] club (from: Jan 30 2024 14:00 to: Jan 30 2024 16:00)\nNow you have 3 tasks in the list.", false},
		{"mark 2", "Nice! I've marked this task as done:\n  [D][X] return books (by: Jan 29 2024 18:00)", false},
		{"find book", "Here are the matching tasks in your list:\n1.[T][ ] read book\n2.[D][X] return books (by: Jan 29 2024 18:00)", false},
		{"delete 2 5", "Task 5 does not exist. You have 3 tasks in the list.", true},
		{"mark abc", "Invalid 'mark' command format. Usage: mark <existing task number>", true},
		{"deadline x /by tomorrow", commands.DateTimeFormatMessage, true},
		{"hello", commands.InvalidMessage, false},
		{"unmark 2", "OK, I've marked this task as not done yet:\n  [D][ ] return books (by: Jan 29 2024 18:00)", false},
		{"delete 1 3", "Noted. I've removed these tasks:\n  [T][ ] read book\n  [E][ ] club (from: Jan 30 2024 14:00 to: Jan 30 2024 16:00)\nNow you have 1 task in the list.", false},
	}
	for _, step := range steps {
		r := s.Reply(ctx, step.in)
		if r.Text != step.want {
			t.Fatalf("reply to %q =\n%q\nwant\n%q", step.in, r.Text, step.want)
		}
		if r.IsError != step.isError || r.Exit {
			t.Fatalf("reply to %q flags: %+v", step.in, r)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "0 | D | return books | 29/01/2024 1800" {
		t.Fatalf("unexpected persisted content: %q", raw)
	}
}

func TestReplyBye(t *testing.T) {
	s, _ := newSession(t)
	r := s.Reply(t.Context(), "bye")
	if !r.Exit || r.Text != commands.ByeMessage {
		t.Fatalf("unexpected bye reply: %+v", r)
	}
}
