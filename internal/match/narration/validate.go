package narration

import (
	"encoding/json"
	"fmt"
	"strings"

	"matchcast/internal/match"
)

// Phrase-count bounds per outcome type.
const (
	minGoalPhrases   = 15
	maxGoalPhrases   = 20
	minNoGoalPhrases = 1
	maxNoGoalPhrases = 2
)

// GoalKind classifies a narrated action.
type GoalKind int

const (
	GoalNone GoalKind = iota
	GoalStandard
	GoalOwn
)

func (k GoalKind) String() string {
	switch k {
	case GoalStandard:
		return "goal"
	case GoalOwn:
		return "own goal"
	default:
		return "no goal"
	}
}

// Unit is the validated, still placeholder-bearing narration for one
// action: the ordered phrase list and the scorer token ("" when none).
type Unit struct {
	Phrases []string
	Scorer  string
	Kind    GoalKind
}

// Validator checks generation-service replies against the narration
// contract. The zero value is not usable; use NewValidator.
type Validator struct {
	vocab map[string]struct{}
}

func NewValidator() *Validator {
	return &Validator{vocab: Vocabulary()}
}

// Validate parses the raw reply and checks it against the submitted batch.
// Shape failures return *MalformedResponseError; rule failures return
// *SemanticViolationError carrying every violation found, so the retry
// controller can quote all of them back at once.
func (v *Validator) Validate(batch []match.Action, raw string) ([]Unit, error) {
	var body responseBody
	if err := json.Unmarshal([]byte(stripFences(raw)), &body); err != nil {
		return nil, &MalformedResponseError{Reason: "reply is not valid JSON", Err: err}
	}
	if body.Result == nil {
		return nil, &MalformedResponseError{Reason: `reply has no "result" list`}
	}

	var violations []Violation
	if len(body.Result) != len(batch) {
		violations = append(violations, Violation{
			Entry:    0,
			Rule:     RuleEntryCount,
			Observed: fmt.Sprintf("%d entries for %d actions", len(body.Result), len(batch)),
		})
		return nil, &SemanticViolationError{Violations: violations}
	}

	units := make([]Unit, len(batch))
	for i, entry := range body.Result {
		unit, vs := v.validateEntry(i, batch[i], entry)
		units[i] = unit
		violations = append(violations, vs...)
	}
	if len(violations) > 0 {
		return nil, &SemanticViolationError{Violations: violations}
	}
	return units, nil
}

func (v *Validator) validateEntry(i int, action match.Action, entry responseEntry) (Unit, []Violation) {
	var violations []Violation

	min, max := minNoGoalPhrases, maxNoGoalPhrases
	if action.Goal {
		min, max = minGoalPhrases, maxGoalPhrases
	}
	if n := len(entry.Narration); n < min || n > max {
		violations = append(violations, Violation{
			Entry:    i,
			Rule:     RulePhraseCount,
			Observed: fmt.Sprintf("%d phrases, want %d-%d", n, min, max),
		})
	}

	for _, phrase := range entry.Narration {
		for _, tok := range invalidTokens(phrase, v.vocab) {
			violations = append(violations, Violation{
				Entry:    i,
				Rule:     RulePlaceholder,
				Observed: fmt.Sprintf("unknown placeholder {%s} in %q", tok, phrase),
			})
		}
	}

	unit := Unit{Phrases: entry.Narration}
	if !action.Goal {
		if entry.Scorer != nil && *entry.Scorer != "" {
			violations = append(violations, Violation{
				Entry:    i,
				Rule:     RuleScorerUnexpected,
				Observed: fmt.Sprintf("scorer %q on a no-goal action", *entry.Scorer),
			})
		}
		return unit, violations
	}

	if entry.Scorer == nil || *entry.Scorer == "" {
		violations = append(violations, Violation{
			Entry:    i,
			Rule:     RuleScorerMissing,
			Observed: "null scorer on a goal action",
		})
		return unit, violations
	}

	scorer := strings.Trim(*entry.Scorer, "{}")
	side, _, ok := match.ParsePlayerToken(scorer)
	if !ok || !side.Valid() {
		violations = append(violations, Violation{
			Entry:    i,
			Rule:     RuleScorerToken,
			Observed: fmt.Sprintf("scorer %q is not a player token of side A or B", *entry.Scorer),
		})
		return unit, violations
	}
	if scorer != action.Scorer {
		violations = append(violations, Violation{
			Entry:    i,
			Rule:     RuleScorerMismatch,
			Observed: fmt.Sprintf("scorer %q, request said %q", scorer, action.Scorer),
		})
		return unit, violations
	}

	unit.Scorer = scorer
	if side == action.Attacking {
		unit.Kind = GoalStandard
	} else {
		unit.Kind = GoalOwn
	}
	return unit, violations
}

// stripFences removes optional markdown code fences some models wrap
// around JSON output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"```json", "```"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
			break
		}
	}
	if before, ok := strings.CutSuffix(s, "```"); ok {
		s = before
	}
	return strings.TrimSpace(s)
}
