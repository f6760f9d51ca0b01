package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskbot/internal/views"
)

type keyMap struct {
	Send     key.Binding
	Help     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "toggle help")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Help, k.Quit},
		{k.PageUp, k.PageDown},
	}
}

const commandReference = "" +
	"| command | usage |\n" +
	"| --- | --- |\n" +
	"| `todo` | `todo <description>` |\n" +
	"| `deadline` | `deadline <description> /by dd/MM/yyyy HHmm` |\n" +
	"| `event` | `event <description> /from <date time> /to <date time>` |\n" +
	"| `list` | show every task |\n" +
	"| `find` | `find <keyword>` |\n" +
	"| `mark` / `unmark` | `mark <task number>` |\n" +
	"| `delete` | `delete <task number> [more numbers]` |\n" +
	"| `bye` | save and leave |\n"

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	hm := m.helpModel
	hm.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		Commands: commandReference,
		KeysView: hm.View(m.keys),
	})
}
