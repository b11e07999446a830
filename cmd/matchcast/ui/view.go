package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"matchcast/internal/match"
)

func (m Model) View() string {
	headerHeight := 1
	footerHeight := 2
	chatHeight := m.height - headerHeight - footerHeight

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("2")).
		Bold(true).
		Padding(0, 1).
		Width(m.width)

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	bannerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Bold(true)

	debugStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	loadingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("6"))

	chatPanel := lipgloss.NewStyle().
		Width(m.width).
		Height(chatHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1)

	var chatContent strings.Builder

	visibleMessages := m.messages
	maxMessages := chatHeight - 2
	if maxMessages < 1 {
		maxMessages = 1
	}
	if len(visibleMessages) > maxMessages {
		visibleMessages = visibleMessages[len(visibleMessages)-maxMessages:]
	}

	contentWidth := m.width - 4

	for _, message := range visibleMessages {
		switch {
		case message == "":
			chatContent.WriteString("\n")
		case message == "LOADING_ANIMATION":
			animationText := getLoadingAnimation(m.animationFrame)
			chatContent.WriteString(loadingStyle.Render(" "+animationText) + "\n")
		case strings.HasPrefix(message, "[DEBUG] "):
			chatContent.WriteString(debugStyle.Render(wrapAndIndent(message, contentWidth, " ")) + "\n")
		case strings.HasPrefix(message, "GOAL!") || strings.HasPrefix(message, "OWN GOAL") || strings.HasPrefix(message, "Minute ") || strings.HasPrefix(message, "Full time!"):
			chatContent.WriteString(bannerStyle.Render(wrapAndIndent(message, contentWidth, " ")) + "\n")
		default:
			chatContent.WriteString(messageStyle.Render(wrapAndIndent(message, contentWidth, " ")) + "\n")
		}
	}

	header := headerStyle.Render(match.ShortScoreline(m.home, m.away, m.score))
	chat := chatPanel.Render(chatContent.String())
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("enter: next phrase · q: quit")

	return header + "\n" + chat + "\n" + hint
}

func wrapAndIndent(text string, width int, indent string) string {
	if len(text) <= width {
		return indent + text
	}

	var result strings.Builder
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + text
	}

	currentLine := indent + words[0]

	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine + "\n")
			currentLine = indent + word
		}
	}

	result.WriteString(currentLine)
	return result.String()
}
