package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

type DialogLine struct {
	Speaker Speaker
	Text    string
	IsError bool
}

type HelpPanelData struct {
	Commands string
	KeysView string
}

var (
	bubbleStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userBubble     = bubbleStyle.BorderForeground(lipgloss.Color("12"))
	botBubble      = bubbleStyle.BorderForeground(lipgloss.Color("10"))
	botErrorBubble = bubbleStyle.BorderForeground(lipgloss.Color("9"))
	speakerStyle   = lipgloss.NewStyle().Faint(true)
)

// RenderDialog lays out the conversation: user lines on the right, replies on
// the left, each in its own bubble no wider than width.
func RenderDialog(lines []DialogLine, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bubbleMax := width * 3 / 4
	blocks := make([]string, 0, len(lines))
	for _, line := range lines {
		text := line.Text
		if text == "" {
			text = " "
		}
		switch line.Speaker {
		case SpeakerUser:
			bubble := userBubble.MaxWidth(bubbleMax).Render(text)
			label := speakerStyle.Render("you")
			block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, block))
		default:
			style := botBubble
			if line.IsError {
				style = botErrorBubble
			}
			bubble := style.MaxWidth(bubbleMax).Render(text)
			label := speakerStyle.Render("taskbot")
			blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, label, bubble))
		}
	}
	return strings.Join(blocks, "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	parts := []string{"help:"}
	if md := RenderMarkdown(data.Commands); md != "" {
		parts = append(parts, md)
	}
	if data.KeysView != "" {
		parts = append(parts, "keys:", data.KeysView)
	}
	return strings.Join(parts, "\n")
}
