package service

import (
	"math"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
)

// Scoring weights for routine assignment. Tunable by hand; the final score
// is the plain sum of the terms below, no normalization.
const (
	durationFitMax        = 10.0
	locationAffinityBonus = 5.0
	intermediateFlatBonus = 3.0
	healthCautionPenalty  = 2.0
	cycleAwarenessBonus   = 2.0
)

// ScoreRoutine rates how well a catalog routine fits a profile. Pure
// function: same inputs always produce the same score. Higher is better;
// ties are broken by catalog order (sorted by routine id) at the call site.
func ScoreRoutine(profile *domain.Profile, routine *domain.Routine) float64 {
	// Duration fit: up to 10 points, decaying by one point per 10 minutes
	// of mismatch, floored at zero.
	gap := math.Abs(float64(routine.DurationMinutes - profile.SessionDurationMinutes))
	score := math.Max(0, durationFitMax-gap/10)

	location := domain.NormalizeLocation(routine.Location)
	switch profile.FitnessLevel {
	case domain.LevelBeginner:
		if location == domain.LocationHome {
			score += locationAffinityBonus
		}
	case domain.LevelIntermediate:
		score += intermediateFlatBonus
	case domain.LevelAdvanced:
		if location == domain.LocationGym {
			score += locationAffinityBonus
		}
	}

	if profile.HasHealthConditions() {
		score -= healthCautionPenalty
	}

	if profile.Gender == domain.GenderFemale && profile.MenstrualTracking {
		score += cycleAwarenessBonus
	}

	return score
}
