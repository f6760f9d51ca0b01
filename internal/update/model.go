package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskbot/internal/session"
	"github.com/sandeepkv93/taskbot/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Model is the chat window: the dialog so far, an input line, and an optional
// help panel.
type Model struct {
	Session     *session.Session
	Dialog      []views.DialogLine
	Status      StatusBar
	HelpVisible bool
	Quitting    bool

	ctx        context.Context
	farewell   string
	statusSeq  int
	keys       keyMap
	input      textinput.Model
	dialogView viewport.Model
	helpModel  help.Model
	width      int
	height     int
}

// ClearStatusMsg clears the status line if it still shows status Seq.
type ClearStatusMsg struct {
	Seq int
}

// SubmitLineMsg sends a line as if it had been typed and entered.
type SubmitLineMsg struct {
	Line string
}

// statusTTL is how long a status line stays up before it clears itself.
const statusTTL = 4 * time.Second

const (
	defaultWidth  = 80
	defaultHeight = 24
	inputLimit    = 512
)

func NewModel(ctx context.Context, sess *session.Session) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		Session: sess,
		Dialog:  []views.DialogLine{{Speaker: views.SpeakerBot, Text: session.Greeting}},
		ctx:     ctx,
		keys:    defaultKeyMap(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.initBubbleComponents()
	m.syncDialog()
	return m
}

func (m *Model) initBubbleComponents() {
	m.input = textinput.New()
	m.input.Placeholder = "type a command, e.g. todo read book"
	m.input.Prompt = "> "
	m.input.CharLimit = inputLimit
	m.input.Focus()

	m.helpModel = help.New()
	m.dialogView = viewport.New(m.width-4, m.dialogHeight())
}

// dialogHeight leaves room for the header, input panel, status and footer.
func (m Model) dialogHeight() int {
	h := m.height - 9
	if h < 3 {
		return 3
	}
	return h
}

func (m Model) dialogWidth() int {
	w := m.width - 8
	if m.HelpVisible {
		w = m.width/2 - 8
	}
	if w < 20 {
		return 20
	}
	return w
}

func (m *Model) resize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
	m.input.Width = m.width - 10
	m.dialogView.Width = m.dialogWidth()
	m.dialogView.Height = m.dialogHeight()
	m.syncDialog()
}

// syncDialog re-renders the history into the viewport and scrolls to the
// latest line.
func (m *Model) syncDialog() {
	m.dialogView.SetContent(views.RenderDialog(m.Dialog, m.dialogWidth()))
	m.dialogView.GotoBottom()
}

// Farewell is the reply that ended the session, or empty if the user quit
// with a key. The caller prints it once the alternate screen is gone.
func (m Model) Farewell() string {
	return m.farewell
}

// setStatus shows text on the status line and schedules its removal.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: isError}
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
