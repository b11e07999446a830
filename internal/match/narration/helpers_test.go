package narration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"matchcast/internal/match"
)

func strptr(s string) *string { return &s }

// goalPhrases builds n vocabulary-clean phrases ending in a celebration of
// the given scorer token.
func goalPhrases(n int, scorer string) []string {
	phrases := make([]string, n)
	for i := 0; i < n-1; i++ {
		phrases[i] = fmt.Sprintf("{A_1} plays it forward under the eyes of {referee}, phrase %d", i)
	}
	phrases[n-1] = fmt.Sprintf("GOAL! {%s} sends {stadium} into raptures!", scorer)
	return phrases
}

func noGoalPhrases() []string {
	return []string{"{B_2} shoots wide, goal kick for {A_team_name}."}
}

// replyJSON serializes entries into the service's wire shape.
func replyJSON(t *testing.T, entries []responseEntry) string {
	t.Helper()
	raw, err := json.Marshal(responseBody{Result: entries})
	require.NoError(t, err)
	return string(raw)
}

// validReply builds an accepting reply for the batch.
func validReply(t *testing.T, batch []match.Action) string {
	t.Helper()
	entries := make([]responseEntry, len(batch))
	for i, a := range batch {
		if a.Goal {
			entries[i] = responseEntry{Narration: goalPhrases(minGoalPhrases, a.Scorer), Scorer: strptr(a.Scorer)}
		} else {
			entries[i] = responseEntry{Narration: noGoalPhrases()}
		}
	}
	return replyJSON(t, entries)
}

var testVenue = match.Venue{Stadium: "Stadio San Paolo", Referee: "Sig. Mariani"}

func testTeams(t *testing.T) (match.Team, match.Team) {
	t.Helper()
	home, err := match.NewTeam(match.SideA, "A.C. FORGIA", [4]string{"Dani", "Dario", "Dav", "Max"}, "Kien")
	require.NoError(t, err)
	away, err := match.NewTeam(match.SideB, "F.C. PASTA CALCISTICA", [4]string{"Giammy", "Pit", "Stef", "Paso"}, "Gio")
	require.NoError(t, err)
	return home, away
}
