package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"matchcast/internal/match/narration"
)

func animationTimer() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

func getLoadingAnimation(frame int) string {
	// "arc" spinner from cli-spinners - battle-tested smooth circular motion
	arc := []string{"◜", "◠", "◝", "◞", "◡", "◟"}
	return arc[frame%len(arc)]
}

// fetchNextGroup pulls the next in-order narration group off the sequencer.
// Blocks until an earlier-dispatched batch is bound and ready.
func fetchNextGroup(seq *narration.Sequencer) tea.Cmd {
	return func() tea.Msg {
		group, err := seq.Next(context.Background())
		if errors.Is(err, narration.ErrMatchOver) {
			return matchOverMsg{}
		}
		if err != nil {
			return groupErrorMsg{err: err}
		}
		return groupMsg{group: group}
	}
}
