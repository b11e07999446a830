package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionValidate(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		wantErr string
	}{
		{
			name:   "no goal keeps score",
			action: Action{Minute: 65, Attacking: SideB, ScoreBefore: Score{1, 1}, ScoreAfter: Score{1, 1}},
		},
		{
			name:   "goal credits attacking side",
			action: Action{Minute: 37, Attacking: SideB, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{0, 1}, Scorer: "B_3"},
		},
		{
			name:   "own goal still credits attacking side",
			action: Action{Minute: 52, Attacking: SideA, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{1, 0}, Scorer: "B_2"},
		},
		{
			name:   "goalkeeper is a valid scorer",
			action: Action{Minute: 93, Attacking: SideA, Goal: true, ScoreBefore: Score{2, 2}, ScoreAfter: Score{3, 2}, Scorer: "A_goalkeeper"},
		},
		{
			name:    "zero minute",
			action:  Action{Minute: 0, Attacking: SideA, ScoreBefore: Score{}, ScoreAfter: Score{}},
			wantErr: "not positive",
		},
		{
			name:    "no goal but score changed",
			action:  Action{Minute: 10, Attacking: SideA, ScoreBefore: Score{0, 0}, ScoreAfter: Score{1, 0}},
			wantErr: "score changed",
		},
		{
			name:    "no goal with scorer",
			action:  Action{Minute: 10, Attacking: SideA, ScoreBefore: Score{}, ScoreAfter: Score{}, Scorer: "A_1"},
			wantErr: "scorer",
		},
		{
			name:    "goal credited to wrong side",
			action:  Action{Minute: 20, Attacking: SideA, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{0, 1}, Scorer: "A_1"},
			wantErr: "score went",
		},
		{
			name:    "goal without scorer",
			action:  Action{Minute: 20, Attacking: SideA, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{1, 0}},
			wantErr: "scorer token",
		},
		{
			name:    "scorer token from no known side",
			action:  Action{Minute: 20, Attacking: SideA, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{1, 0}, Scorer: "C_1"},
			wantErr: "scorer token",
		},
		{
			name:    "scorer slot out of range",
			action:  Action{Minute: 20, Attacking: SideA, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{1, 0}, Scorer: "A_5"},
			wantErr: "scorer token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestActionOwnGoal(t *testing.T) {
	standard := Action{Minute: 37, Attacking: SideB, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{0, 1}, Scorer: "B_3"}
	assert.False(t, standard.OwnGoal())

	own := Action{Minute: 52, Attacking: SideA, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{1, 0}, Scorer: "B_2"}
	assert.True(t, own.OwnGoal())
}

func TestValidateScript(t *testing.T) {
	good := []Action{
		{Minute: 12, Attacking: SideA, ScoreBefore: Score{0, 0}, ScoreAfter: Score{0, 0}},
		{Minute: 37, Attacking: SideB, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{0, 1}, Scorer: "B_3"},
		{Minute: 37, Attacking: SideA, ScoreBefore: Score{0, 1}, ScoreAfter: Score{0, 1}},
		{Minute: 88, Attacking: SideA, Goal: true, ScoreBefore: Score{0, 1}, ScoreAfter: Score{1, 1}, Scorer: "A_goalkeeper"},
	}
	assert.NoError(t, ValidateScript(good))

	backwards := []Action{
		{Minute: 40, Attacking: SideA, ScoreBefore: Score{0, 0}, ScoreAfter: Score{0, 0}},
		{Minute: 12, Attacking: SideB, ScoreBefore: Score{0, 0}, ScoreAfter: Score{0, 0}},
	}
	err := ValidateScript(backwards)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minute")

	discontinuous := []Action{
		{Minute: 12, Attacking: SideA, Goal: true, ScoreBefore: Score{0, 0}, ScoreAfter: Score{1, 0}, Scorer: "A_1"},
		{Minute: 30, Attacking: SideB, ScoreBefore: Score{0, 0}, ScoreAfter: Score{0, 0}},
	}
	err = ValidateScript(discontinuous)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not continue")
}

func TestParsePlayerToken(t *testing.T) {
	side, slot, ok := ParsePlayerToken("A_3")
	require.True(t, ok)
	assert.Equal(t, SideA, side)
	assert.Equal(t, 3, slot)

	side, slot, ok = ParsePlayerToken("B_goalkeeper")
	require.True(t, ok)
	assert.Equal(t, SideB, side)
	assert.Equal(t, 0, slot)

	for _, bad := range []string{"", "A_0", "A_5", "C_1", "A_", "goalkeeper", "{A_1}", "A_1 "} {
		_, _, ok := ParsePlayerToken(bad)
		assert.False(t, ok, "token %q should not parse", bad)
	}
}

func TestTeamPlayerName(t *testing.T) {
	team, err := NewTeam(SideB, "F.C. PASTA CALCISTICA", [4]string{"Giammy", "Pit", "Stef", "Paso"}, "Gio")
	require.NoError(t, err)

	name, ok := team.PlayerName("B_3")
	require.True(t, ok)
	assert.Equal(t, "Stef", name)

	name, ok = team.PlayerName("B_goalkeeper")
	require.True(t, ok)
	assert.Equal(t, "Gio", name)

	_, ok = team.PlayerName("A_3")
	assert.False(t, ok)
}

func TestNewTeamRejectsEmptySlots(t *testing.T) {
	_, err := NewTeam(SideA, "A.C. FORGIA", [4]string{"Dani", "", "Dav", "Max"}, "Kien")
	assert.Error(t, err)

	_, err = NewTeam(SideA, "A.C. FORGIA", [4]string{"Dani", "Dario", "Dav", "Max"}, "")
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	s := Score{1, 2}
	assert.Equal(t, "1-2", s.String())
	assert.Equal(t, Score{2, 2}, s.Add(SideA))
	assert.Equal(t, Score{1, 3}, s.Add(SideB))
}
