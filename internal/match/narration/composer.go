package narration

import (
	"encoding/json"
	"fmt"
	"strings"

	"matchcast/internal/match"
)

// DefaultLanguage is the narration locale used when no override is given.
// The original sportscaster register.
const DefaultLanguage = "Italian"

// Composer turns an ordered action batch into one self-contained generation
// request. It is the single source of truth for the contract text the
// response has to satisfy, and it never embeds real player or team names.
type Composer struct {
	language string
}

func NewComposer(language string) *Composer {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	return &Composer{language: language}
}

// requestAction is the wire form of one action inside the request payload.
// Scorer is present only on goals and carries the bare placeholder token.
type requestAction struct {
	Minute        int    `json:"minute"`
	AttackingTeam string `json:"attacking_team"`
	Goal          bool   `json:"goal"`
	ScoreBefore   string `json:"score_before"`
	ScoreAfter    string `json:"score_after"`
	Scorer        string `json:"scorer,omitempty"`
}

// Compose builds the prompt for a batch. The match data is never mutated;
// composing the same batch twice yields the same prompt.
func (c *Composer) Compose(batch []match.Action) (Prompt, error) {
	return c.compose(batch, nil, "")
}

// ComposeCorrective rebuilds the prompt for a failed attempt, quoting the
// prior violations (or the malformed-reply reason) so the service can
// self-correct.
func (c *Composer) ComposeCorrective(batch []match.Action, violations []Violation, malformed string) (Prompt, error) {
	return c.compose(batch, violations, malformed)
}

func (c *Composer) compose(batch []match.Action, violations []Violation, malformed string) (Prompt, error) {
	if len(batch) == 0 {
		return Prompt{}, fmt.Errorf("empty action batch")
	}

	actions := make([]requestAction, len(batch))
	for i, a := range batch {
		if err := a.Validate(); err != nil {
			return Prompt{}, fmt.Errorf("action %d: %w", i, err)
		}
		actions[i] = requestAction{
			Minute:        a.Minute,
			AttackingTeam: string(a.Attacking),
			Goal:          a.Goal,
			ScoreBefore:   a.ScoreBefore.String(),
			ScoreAfter:    a.ScoreAfter.String(),
			Scorer:        a.Scorer,
		}
	}
	payload, err := json.MarshalIndent(map[string]any{"actions": actions}, "", "  ")
	if err != nil {
		return Prompt{}, fmt.Errorf("marshal action batch: %w", err)
	}

	user := "Narrate the following match actions, in order:\n\n" + string(payload)
	if len(violations) > 0 || malformed != "" {
		var b strings.Builder
		b.WriteString(user)
		b.WriteString("\n\nYour previous reply was rejected. Fix the following and regenerate everything:\n")
		if malformed != "" {
			b.WriteString("- " + malformed + "\n")
		}
		for _, v := range violations {
			b.WriteString("- " + v.String() + "\n")
		}
		user = b.String()
	}

	return Prompt{
		System:     c.contractText(),
		User:       user,
		SchemaName: responseSchemaName,
		Schema:     responseSchema(),
	}, nil
}

// contractText restates, verbatim for every request, the structural and
// semantic rules the validator will enforce on the reply.
func (c *Composer) contractText() string {
	return fmt.Sprintf(`You are a sportscaster narrating an interactive soccer game. You must speak %[1]s.

You receive a JSON list of match actions. Each action has: minute, attacking_team ("A" or "B"), goal (true or false), score_before and score_after as "goalsA-goalsB" strings, and, only when goal is true, the scorer's placeholder token.

# Placeholders

Never invent names. Refer to players and teams only through these placeholders, written inside curly braces:
{A_1} {A_2} {A_3} {A_4} {A_goalkeeper} for the players of team A, and {B_1} {B_2} {B_3} {B_4} {B_goalkeeper} for the players of team B. {A_team_name} and {B_team_name} hold the team names. {referee} and {stadium} are optional support placeholders you may use to enrich the narration. No other curly-brace token is allowed anywhere in your reply.

# Response shape

Reply with a JSON object with a single key "result": a list with exactly one entry per action, in the same order. Each entry has "narration", a list of phrase strings, and "scorer", a placeholder token string or null.

# Rules per action

- goal is true: the narration list must contain between %[2]d and %[3]d phrases, building up the action and ending with the goal celebration. Dedicate at least one or two phrases to how the action began. The "scorer" field must repeat exactly the scorer token from the request, without braces. When the scorer belongs to the defending team the action is an own goal awarding the attacking team: narrate it as such.
- goal is false: the narration list must contain %[4]d or %[5]d phrases, and "scorer" must be null. Make sure the final phrase hands possession to the defending team (a throw-in, goal kick, interception, foul, or anything similar).

Assume the game is already in progress; do not introduce the stadium or the lineups. Do not assume anything about the match beyond the actions given.`,
		c.language, minGoalPhrases, maxGoalPhrases, minNoGoalPhrases, maxNoGoalPhrases)
}
