package views

import (
	"strings"
	"testing"
)

func TestRenderDialogKeepsOrderAndText(t *testing.T) {
	out := RenderDialog([]DialogLine{
		{Speaker: SpeakerBot, Text: "Hello!"},
		{Speaker: SpeakerUser, Text: "list"},
		{Speaker: SpeakerBot, Text: "Invalid command", IsError: true},
	}, 60)

	hello := strings.Index(out, "Hello!")
	list := strings.Index(out, "list")
	invalid := strings.Index(out, "Invalid command")
	if hello < 0 || list < 0 || invalid < 0 {
		t.Fatalf("missing dialog text: %q", out)
	}
	if !(hello < list && list < invalid) {
		t.Fatalf("dialog out of order: %q", out)
	}
	if !strings.Contains(out, "you") || !strings.Contains(out, "taskbot") {
		t.Fatalf("expected speaker labels: %q", out)
	}
}

func TestRenderAppSections(t *testing.T) {
	out := RenderApp(AppData{
		Header:        "taskbot | 2 tasks",
		Dialog:        "dialog body",
		Input:         "> todo",
		StatusLine:    "status: error: boom",
		StatusIsError: true,
		Footer:        "keys: enter send",
		Width:         70,
	})
	for _, want := range []string{"taskbot | 2 tasks", "dialog body", "> todo", "status: error: boom", "keys: enter send"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestRenderAppWithHelpPane(t *testing.T) {
	out := RenderApp(AppData{Dialog: "left side", HelpPane: "right side", Width: 90})
	if !strings.Contains(out, "left side") || !strings.Contains(out, "right side") {
		t.Fatalf("expected both panes: %q", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	if RenderMarkdown("   ") != "" {
		t.Fatal("expected empty output for blank markdown")
	}
	out := RenderMarkdown("# Commands\n\n- `list` shows tasks")
	if !strings.Contains(out, "Commands") || !strings.Contains(out, "shows") {
		t.Fatalf("unexpected markdown render: %q", out)
	}
}
