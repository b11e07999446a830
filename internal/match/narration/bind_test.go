package narration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindResolvesEveryToken(t *testing.T) {
	home, away := testTeams(t)
	b := NewBinder(home, away, testVenue)

	unit := Unit{
		Phrases: []string{
			"{A_1} slides it to {A_goalkeeper} as {referee} waves play on.",
			"{B_team_name} press high at {stadium}.",
			"GOAL! {B_3} beats {A_goalkeeper}!",
		},
		Scorer: "B_3",
		Kind:   GoalStandard,
	}
	action := goalAction()

	bound, err := b.Bind(action, unit)
	require.NoError(t, err)

	assert.Equal(t, "Dani slides it to Kien as Sig. Mariani waves play on.", bound.Phrases[0])
	assert.Equal(t, "F.C. PASTA CALCISTICA press high at Stadio San Paolo.", bound.Phrases[1])
	assert.Equal(t, "GOAL! Stef beats Kien!", bound.Phrases[2])
	assert.Equal(t, "Stef", bound.ScorerName)
	assert.Equal(t, action.Minute, bound.Minute)
	assert.Equal(t, action.ScoreAfter, bound.Score)
	assert.Equal(t, GoalStandard, bound.Kind)
}

func TestBindTeamOrderDoesNotMatter(t *testing.T) {
	home, away := testTeams(t)
	unit := Unit{Phrases: []string{"{A_goalkeeper} to {B_goalkeeper}."}}

	first, err := NewBinder(home, away, testVenue).Bind(noGoalAction(), unit)
	require.NoError(t, err)
	second, err := NewBinder(away, home, testVenue).Bind(noGoalAction(), unit)
	require.NoError(t, err)
	assert.Equal(t, first.Phrases, second.Phrases)
}

func TestBindIsRepeatable(t *testing.T) {
	home, away := testTeams(t)
	b := NewBinder(home, away, testVenue)
	unit := Unit{Phrases: goalPhrases(16, "B_3"), Scorer: "B_3", Kind: GoalStandard}

	first, err := b.Bind(goalAction(), unit)
	require.NoError(t, err)
	second, err := b.Bind(goalAction(), unit)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBindLeavesPlainTextAlone(t *testing.T) {
	home, away := testTeams(t)
	b := NewBinder(home, away, testVenue)

	bound, err := b.Bind(noGoalAction(), Unit{Phrases: []string{"A long ball with no names in it."}})
	require.NoError(t, err)
	assert.Equal(t, "A long ball with no names in it.", bound.Phrases[0])
	assert.Empty(t, bound.ScorerName)
}

func TestBindUnresolvedTokenIsFatal(t *testing.T) {
	home, away := testTeams(t)
	b := NewBinder(home, away, testVenue)

	_, err := b.Bind(noGoalAction(), Unit{Phrases: []string{"{A_9} appears from nowhere."}})
	var unresolved *UnresolvedPlaceholderError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "A_9", unresolved.Token)

	_, err = b.Bind(goalAction(), Unit{Phrases: []string{"GOAL!"}, Scorer: "C_1"})
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "C_1", unresolved.Token)
}
