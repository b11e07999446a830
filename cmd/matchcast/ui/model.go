package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"matchcast/internal/debug"
	"matchcast/internal/match"
	"matchcast/internal/match/narration"
)

type Model struct {
	messages       []string
	width          int
	height         int
	home           match.Team
	away           match.Team
	seq            *narration.Sequencer
	pending        []string // phrases of the current group not yet shown
	banner         string   // score banner to append after the group's phrases
	score          match.Score
	loading        bool
	matchOver      bool
	failed         bool
	animationFrame int
	debug          bool
	debugLogger    *debug.Logger
}

func NewModel(seq *narration.Sequencer, home, away match.Team, debugLogger *debug.Logger, debugMode bool) Model {
	messages := []string{
		fmt.Sprintf("%s vs %s — kick-off! Press enter for the next phrase, q to quit.", home.Name, away.Name),
		"",
	}
	if debugMode {
		messages = append(messages, "[DEBUG] narration pipeline started", "")
	}

	return Model{
		messages:    messages,
		home:        home,
		away:        away,
		seq:         seq,
		debug:       debugMode,
		debugLogger: debugLogger,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

type animationTickMsg struct{}

type groupMsg struct {
	group narration.Bound
}

type matchOverMsg struct{}

type groupErrorMsg struct {
	err error
}
