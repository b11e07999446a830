package narration

import (
	"regexp"

	"matchcast/internal/match"
)

// The generation service never sees real names. Phrases reference players
// and teams through a fixed vocabulary of curly-brace placeholders:
//
//	{A_1}..{A_4} {A_goalkeeper} {A_team_name}
//	{B_1}..{B_4} {B_goalkeeper} {B_team_name}
//
// plus the optional support placeholders {referee} and {stadium}. Scorer
// fields carry the bare token without braces ("B_3").

const (
	tokenReferee = "referee"
	tokenStadium = "stadium"
)

func teamNameToken(side match.Side) string {
	return string(side) + "_team_name"
}

// Vocabulary returns the set of every bare token allowed inside narration
// phrases.
func Vocabulary() map[string]struct{} {
	vocab := make(map[string]struct{})
	for _, side := range []match.Side{match.SideA, match.SideB} {
		for slot := 0; slot <= match.OutfieldSlots; slot++ {
			vocab[match.PlayerToken(side, slot)] = struct{}{}
		}
		vocab[teamNameToken(side)] = struct{}{}
	}
	vocab[tokenReferee] = struct{}{}
	vocab[tokenStadium] = struct{}{}
	return vocab
}

var placeholderRe = regexp.MustCompile(`\{([^{}]*)\}`)

// extractTokens returns every curly-brace token appearing in the phrase,
// braces stripped, in order of appearance.
func extractTokens(phrase string) []string {
	matches := placeholderRe.FindAllStringSubmatch(phrase, -1)
	if matches == nil {
		return nil
	}
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens
}

// invalidTokens returns the tokens in the phrase that are not part of the
// fixed vocabulary.
func invalidTokens(phrase string, vocab map[string]struct{}) []string {
	var bad []string
	for _, tok := range extractTokens(phrase) {
		if _, ok := vocab[tok]; !ok {
			bad = append(bad, tok)
		}
	}
	return bad
}
