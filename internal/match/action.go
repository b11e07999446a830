package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Action is one attacking sequence of a match. Instances are built once by
// the upstream simulator and are read-only inputs to the narration pipeline.
//
// Scorer is a bare player token such as "B_3" or "A_goalkeeper", empty when
// Goal is false. The scorer's side classifies the goal: attacking side means
// a standard goal, defending side an own goal.
type Action struct {
	Minute      int
	Attacking   Side
	Goal        bool
	ScoreBefore Score
	ScoreAfter  Score
	Scorer      string
}

// Defending returns the complement of the attacking side.
func (a Action) Defending() Side {
	return a.Attacking.Opponent()
}

// OwnGoal reports whether the scorer belongs to the defending side. Only
// meaningful when Goal is true.
func (a Action) OwnGoal() bool {
	side, _, ok := ParsePlayerToken(a.Scorer)
	return ok && side == a.Defending()
}

// Validate checks the single-action invariants from the data model:
// positive minute, valid sides, score continuity, and scorer presence
// exactly on goals with a token resolving to one of the two sides.
func (a Action) Validate() error {
	if a.Minute < 1 {
		return fmt.Errorf("minute %d is not positive", a.Minute)
	}
	if !a.Attacking.Valid() {
		return fmt.Errorf("invalid attacking side %q", a.Attacking)
	}
	if !a.ScoreBefore.valid() || !a.ScoreAfter.valid() {
		return fmt.Errorf("negative score component in %s -> %s", a.ScoreBefore, a.ScoreAfter)
	}

	if !a.Goal {
		if a.ScoreAfter != a.ScoreBefore {
			return fmt.Errorf("no goal but score changed %s -> %s", a.ScoreBefore, a.ScoreAfter)
		}
		if a.Scorer != "" {
			return fmt.Errorf("no goal but scorer %q set", a.Scorer)
		}
		return nil
	}

	// A goal always credits the attacking side's tally, whoever put the
	// ball in: an own goal still counts for the attackers.
	if a.ScoreAfter != a.ScoreBefore.Add(a.Attacking) {
		return fmt.Errorf("goal for side %s but score went %s -> %s", a.Attacking, a.ScoreBefore, a.ScoreAfter)
	}
	side, _, ok := ParsePlayerToken(a.Scorer)
	if !ok {
		return fmt.Errorf("goal with invalid scorer token %q", a.Scorer)
	}
	if !side.Valid() {
		return fmt.Errorf("scorer %q does not resolve to a known side", a.Scorer)
	}
	return nil
}

// ValidateScript checks a full action sequence: each action valid on its
// own, minutes monotonically non-decreasing, and every ScoreBefore equal to
// the previous ScoreAfter starting from 0-0.
func ValidateScript(actions []Action) error {
	running := Score{}
	lastMinute := 0
	for i, a := range actions {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
		if a.Minute < lastMinute {
			return fmt.Errorf("action %d: minute %d before previous minute %d", i, a.Minute, lastMinute)
		}
		if a.ScoreBefore != running {
			return fmt.Errorf("action %d: score before %s does not continue from %s", i, a.ScoreBefore, running)
		}
		running = a.ScoreAfter
		lastMinute = a.Minute
	}
	return nil
}

var playerTokenRe = regexp.MustCompile(`^([AB])_([1-9][0-9]*|goalkeeper)$`)

// ParsePlayerToken splits a bare player token like "A_3" or "B_goalkeeper"
// into its side and slot. Slot 0 means the goalkeeper. ok is false when the
// token is not syntactically a player token or the slot is out of range.
func ParsePlayerToken(token string) (side Side, slot int, ok bool) {
	m := playerTokenRe.FindStringSubmatch(token)
	if m == nil {
		return "", 0, false
	}
	side = Side(m[1])
	if m[2] == "goalkeeper" {
		return side, 0, true
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 || n > OutfieldSlots {
		return "", 0, false
	}
	return side, n, true
}

// PlayerToken builds the bare token for a slot, 0 meaning the goalkeeper.
func PlayerToken(side Side, slot int) string {
	if slot == 0 {
		return string(side) + "_goalkeeper"
	}
	return string(side) + "_" + strconv.Itoa(slot)
}

// PlayerName resolves a bare player token against the given team. The team's
// side must match the token's side.
func (t Team) PlayerName(token string) (string, bool) {
	side, slot, ok := ParsePlayerToken(token)
	if !ok || side != t.Side {
		return "", false
	}
	if slot == 0 {
		return t.Goalkeeper, true
	}
	return t.Outfield[slot-1], true
}

// ShortScoreline renders "NameA x-y NameB" for display headers.
func ShortScoreline(home, away Team, s Score) string {
	var b strings.Builder
	b.WriteString(home.Name)
	b.WriteString(" ")
	b.WriteString(s.String())
	b.WriteString(" ")
	b.WriteString(away.Name)
	return b.String()
}
