package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header        string
	Dialog        string
	HelpPane      string
	Input         string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Width         int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const defaultWidth = 80

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 {
		width = defaultWidth
	}

	dialogWidth := width - 4
	var body string
	if data.HelpPane != "" {
		dialogWidth = width/2 - 4
		left := panelStyle.Width(dialogWidth).Render(data.Dialog)
		right := panelStyle.Width(width/2 - 4).Render(data.HelpPane)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		body = panelStyle.Width(dialogWidth).Render(data.Dialog)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		body,
		panelStyle.Width(width - 4).Render(data.Input),
	}
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
