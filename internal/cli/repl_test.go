package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/taskbot/internal/commands"
	"github.com/sandeepkv93/taskbot/internal/session"
	"github.com/sandeepkv93/taskbot/internal/storage"
	"github.com/sandeepkv93/taskbot/internal/tasklist"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "tasks.txt"), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	list, err := tasklist.Load(t.Context(), store, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return session.New(list, nil)
}

func TestRunStopsOnBye(t *testing.T) {
	in := strings.NewReader("todo read book\r\nlist\nbye\ntodo never reached\n")
	var out bytes.Buffer

	sess := newSession(t)
	if err := Run(t.Context(), in, &out, sess); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, session.Greeting+"\n") {
		t.Fatalf("expected greeting first: %q", got)
	}
	if !strings.Contains(got, "1.[T][ ] read book") {
		t.Fatalf("expected list output: %q", got)
	}
	if !strings.Contains(got, commands.ByeMessage) {
		t.Fatalf("expected farewell: %q", got)
	}
	if sess.Tasks().Len() != 1 {
		t.Fatalf("lines after bye must not run, got %d tasks", sess.Tasks().Len())
	}
}

func TestRunKeepsGoingAfterErrors(t *testing.T) {
	in := strings.NewReader("mark 1\nblah\ntodo ok\n")
	var out bytes.Buffer

	sess := newSession(t)
	if err := Run(t.Context(), in, &out, sess); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Task 1 does not exist.", commands.InvalidMessage, "Now you have 1 task in the list."} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output: %q", want, got)
		}
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	var out bytes.Buffer
	if err := Run(ctx, strings.NewReader("list\n"), &out, newSession(t)); err == nil {
		t.Fatal("expected context error")
	}
}
