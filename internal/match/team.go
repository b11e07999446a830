package match

import "fmt"

// Side identifies one of the two teams in a match.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// OutfieldSlots is the number of outfield players per team. Slot numbers
// in placeholder tokens run 1..OutfieldSlots.
const OutfieldSlots = 4

// Team is the immutable per-match record for one side. Slot 1..4 map to
// Outfield in order, the goalkeeper has its own dedicated slot.
type Team struct {
	Side       Side
	Name       string
	Outfield   [OutfieldSlots]string
	Goalkeeper string
}

// NewTeam builds a Team and checks that every player slot is filled.
func NewTeam(side Side, name string, outfield [OutfieldSlots]string, goalkeeper string) (Team, error) {
	if !side.Valid() {
		return Team{}, fmt.Errorf("invalid side %q", side)
	}
	if name == "" {
		return Team{}, fmt.Errorf("team %s: empty name", side)
	}
	for i, p := range outfield {
		if p == "" {
			return Team{}, fmt.Errorf("team %s: empty outfield slot %d", side, i+1)
		}
	}
	if goalkeeper == "" {
		return Team{}, fmt.Errorf("team %s: empty goalkeeper", side)
	}
	return Team{Side: side, Name: name, Outfield: outfield, Goalkeeper: goalkeeper}, nil
}

// Venue carries the per-match flavor names available to the narration as
// optional support placeholders.
type Venue struct {
	Stadium string
	Referee string
}

// Score is the pair of goal tallies, team A first.
type Score struct {
	A int
	B int
}

func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.A, s.B)
}

// Add returns the score with the given side's tally incremented.
func (s Score) Add(side Side) Score {
	if side == SideA {
		s.A++
	} else {
		s.B++
	}
	return s
}

func (s Score) valid() bool {
	return s.A >= 0 && s.B >= 0
}
