package narration

import (
	"strings"

	"matchcast/internal/match"
)

// Bound is display-ready narration for one action: every placeholder
// resolved to a concrete name. Immutable once produced.
type Bound struct {
	Minute     int
	Phrases    []string
	ScorerName string
	Kind       GoalKind
	Score      match.Score
}

// Binder substitutes placeholder tokens with the names of the two teams
// and their players. The substitution table is built once per match from
// the Team records and applied as a pure mapping; binding the same unit
// twice yields identical output.
type Binder struct {
	names map[string]string
}

// NewBinder builds the token table for a match. The teams must cover sides
// A and B in either order.
func NewBinder(first, second match.Team, venue match.Venue) *Binder {
	names := make(map[string]string)
	for _, t := range []match.Team{first, second} {
		for slot := 1; slot <= match.OutfieldSlots; slot++ {
			names[match.PlayerToken(t.Side, slot)] = t.Outfield[slot-1]
		}
		names[match.PlayerToken(t.Side, 0)] = t.Goalkeeper
		names[teamNameToken(t.Side)] = t.Name
	}
	names[tokenReferee] = venue.Referee
	names[tokenStadium] = venue.Stadium
	return &Binder{names: names}
}

// Bind resolves one validated unit against the action it narrates. A token
// the table cannot resolve means the validator accepted something it should
// not have; that surfaces as *UnresolvedPlaceholderError, never as a
// silent pass-through.
func (b *Binder) Bind(action match.Action, unit Unit) (Bound, error) {
	phrases := make([]string, len(unit.Phrases))
	for i, phrase := range unit.Phrases {
		bound, err := b.bindPhrase(phrase)
		if err != nil {
			return Bound{}, err
		}
		phrases[i] = bound
	}

	scorerName := ""
	if unit.Scorer != "" {
		name, ok := b.names[unit.Scorer]
		if !ok {
			return Bound{}, &UnresolvedPlaceholderError{Token: unit.Scorer}
		}
		scorerName = name
	}

	return Bound{
		Minute:     action.Minute,
		Phrases:    phrases,
		ScorerName: scorerName,
		Kind:       unit.Kind,
		Score:      action.ScoreAfter,
	}, nil
}

func (b *Binder) bindPhrase(phrase string) (string, error) {
	var out strings.Builder
	rest := phrase
	for {
		loc := placeholderRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			out.WriteString(rest)
			return out.String(), nil
		}
		token := rest[loc[2]:loc[3]]
		name, ok := b.names[token]
		if !ok {
			return "", &UnresolvedPlaceholderError{Token: token}
		}
		out.WriteString(rest[:loc[0]])
		out.WriteString(name)
		rest = rest[loc[1]:]
	}
}
