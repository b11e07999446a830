package sim

import (
	"math/rand"
	"sort"

	"matchcast/internal/match"
)

// Package sim is the upstream collaborator of the narration pipeline: it
// decides the match outcome. The pipeline only consumes the resulting
// action script.

// Config tunes the random match script.
type Config struct {
	Actions        int     // attacking sequences per match
	GoalChance     float64 // probability an action ends in a goal
	OwnGoalChance  float64 // probability a goal is an own goal
	KeeperChance   float64 // probability the scorer is a goalkeeper
	RegulationTime int     // minutes of regulation play
	InjuryTime     int     // extra minutes available past regulation
}

func DefaultConfig() Config {
	return Config{
		Actions:        9,
		GoalChance:     0.35,
		OwnGoalChance:  0.08,
		KeeperChance:   0.04,
		RegulationTime: 90,
		InjuryTime:     5,
	}
}

// Script generates a full action sequence satisfying the pipeline's
// invariants: minutes non-decreasing, score continuous from 0-0, scorer
// set exactly on goals.
func Script(rng *rand.Rand, cfg Config) []match.Action {
	if cfg.Actions < 1 {
		cfg = DefaultConfig()
	}

	minutes := make([]int, cfg.Actions)
	for i := range minutes {
		minutes[i] = 1 + rng.Intn(cfg.RegulationTime+cfg.InjuryTime)
	}
	sort.Ints(minutes)

	actions := make([]match.Action, cfg.Actions)
	score := match.Score{}
	for i := range actions {
		attacking := match.SideA
		if rng.Intn(2) == 1 {
			attacking = match.SideB
		}

		a := match.Action{
			Minute:      minutes[i],
			Attacking:   attacking,
			ScoreBefore: score,
			ScoreAfter:  score,
		}

		if rng.Float64() < cfg.GoalChance {
			a.Goal = true
			a.ScoreAfter = score.Add(attacking)

			scorerSide := attacking
			if rng.Float64() < cfg.OwnGoalChance {
				scorerSide = attacking.Opponent()
			}
			slot := 1 + rng.Intn(match.OutfieldSlots)
			if rng.Float64() < cfg.KeeperChance {
				slot = 0
			}
			a.Scorer = match.PlayerToken(scorerSide, slot)
			score = a.ScoreAfter
		}

		actions[i] = a
	}
	return actions
}
