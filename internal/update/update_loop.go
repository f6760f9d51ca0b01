package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskbot/internal/views"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(typed, m.keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(typed, m.keys.Help):
			m.HelpVisible = !m.HelpVisible
			m.resize(0, 0)
			return m, nil
		case key.Matches(typed, m.keys.PageUp, m.keys.PageDown):
			var cmd tea.Cmd
			m.dialogView, cmd = m.dialogView.Update(typed)
			return m, cmd
		case key.Matches(typed, m.keys.Send):
			line := m.input.Value()
			m.input.Reset()
			return m.submit(line)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(typed)
		return m, cmd
	case SubmitLineMsg:
		return m.submit(typed.Line)
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands one line to the session and appends both sides of the exchange
// to the dialog. A bye reply ends the program; the caller prints the farewell
// after the screen is restored.
func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	if m.Quitting {
		return m, nil
	}
	m.Dialog = append(m.Dialog, views.DialogLine{Speaker: views.SpeakerUser, Text: line})

	reply := m.Session.Reply(m.ctx, line)
	m.Dialog = append(m.Dialog, views.DialogLine{Speaker: views.SpeakerBot, Text: reply.Text, IsError: reply.IsError})
	var cmd tea.Cmd
	switch {
	case m.Session.Tasks().LastSaveError() != nil:
		cmd = m.setStatus("save failed: "+m.Session.Tasks().LastSaveError().Error(), true)
	case reply.IsError:
		cmd = m.setStatus("last command failed", true)
	default:
		m.Status = StatusBar{}
	}
	m.syncDialog()

	if reply.Exit {
		m.Quitting = true
		m.farewell = reply.Text
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}
	input := m.input.View()
	if m.Quitting {
		input = "session ended"
	}
	return views.RenderApp(views.AppData{
		Header:        "taskbot",
		Dialog:        m.dialogView.View(),
		HelpPane:      m.renderHelpIfVisible(),
		Input:         input,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer:        m.helpModel.View(m.keys),
		Width:         m.width,
	})
}
