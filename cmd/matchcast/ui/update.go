package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"matchcast/internal/match"
	"matchcast/internal/match/narration"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			return m, animationTimer()
		}
		return m, nil

	case groupMsg:
		m = m.clearLoading()
		m.pending = msg.group.Phrases
		m.banner = groupBanner(msg.group)
		m.score = m.seq.CurrentScore()
		m.debugLogger.Printf("Group ready: minute %d, %d phrases, %s", msg.group.Minute, len(msg.group.Phrases), msg.group.Kind)
		return m.advance(), nil

	case matchOverMsg:
		m = m.clearLoading()
		m.matchOver = true
		m.messages = append(m.messages,
			"",
			fmt.Sprintf("Full time! %s", match.ShortScoreline(m.home, m.away, m.score)),
			"Press q to leave the stadium.")
		return m, nil

	case groupErrorMsg:
		m = m.clearLoading()
		m.failed = true
		m.messages = append(m.messages, "", fmt.Sprintf("Narration unavailable: %v", msg.err))
		m.debugLogger.Printf("Narration pipeline failed: %v", msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "enter", " ":
			if m.loading || m.matchOver || m.failed {
				return m, nil
			}
			if len(m.pending) > 0 || m.banner != "" {
				return m.advance(), nil
			}
			m.loading = true
			m.animationFrame = 0
			m.messages = append(m.messages, "LOADING_ANIMATION")
			return m, tea.Batch(fetchNextGroup(m.seq), animationTimer())
		}
	}

	return m, nil
}

// advance shows the next phrase of the current group, or its closing score
// banner once the phrases ran out.
func (m Model) advance() Model {
	if len(m.pending) > 0 {
		m.messages = append(m.messages, m.pending[0])
		m.pending = m.pending[1:]
		return m
	}
	if m.banner != "" {
		m.messages = append(m.messages, "", m.banner, "")
		m.banner = ""
	}
	return m
}

func (m Model) clearLoading() Model {
	if m.loading && len(m.messages) > 0 && m.messages[len(m.messages)-1] == "LOADING_ANIMATION" {
		m.messages = m.messages[:len(m.messages)-1]
	}
	m.loading = false
	return m
}

func groupBanner(group narration.Bound) string {
	switch group.Kind {
	case narration.GoalStandard:
		return fmt.Sprintf("GOAL! %s scores at minute %d — %s", group.ScorerName, group.Minute, group.Score)
	case narration.GoalOwn:
		return fmt.Sprintf("OWN GOAL by %s at minute %d — %s", group.ScorerName, group.Minute, group.Score)
	default:
		return fmt.Sprintf("Minute %d — still %s", group.Minute, group.Score)
	}
}
