package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessLevel type for the user's self-reported experience.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// FitnessGoal type for the user's primary objective.
type FitnessGoal string

const (
	GoalLoseWeight   FitnessGoal = "lose_weight"
	GoalGainMuscle   FitnessGoal = "gain_muscle"
	GoalStayFit      FitnessGoal = "stay_fit"
	GoalGainStrength FitnessGoal = "gain_strength"
)

// Gender type. Only used by the scorer's cycle-awareness bonus.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

// Profile holds the fitness attributes collected during onboarding plus the
// identifier of the routine the assignment engine picked for the user.
type Profile struct {
	ID                     primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID                 primitive.ObjectID  `bson:"userId" json:"userId"`
	FitnessLevel           FitnessLevel        `bson:"fitnessLevel" json:"fitnessLevel"`
	FitnessGoal            FitnessGoal         `bson:"fitnessGoal,omitempty" json:"fitnessGoal,omitempty"`
	Gender                 Gender              `bson:"gender,omitempty" json:"gender,omitempty"`
	HealthConditions       []string            `bson:"healthConditions,omitempty" json:"healthConditions,omitempty"`
	AvailableDaysPerWeek   int                 `bson:"availableDaysPerWeek" json:"availableDaysPerWeek"`
	SessionDurationMinutes int                 `bson:"sessionDurationMinutes" json:"sessionDurationMinutes"`
	// AvailableWeekdays keeps the order the user picked the days in; the
	// schedule engine walks it in that order.
	AvailableWeekdays []string            `bson:"availableWeekdays,omitempty" json:"availableWeekdays,omitempty"`
	MenstrualTracking bool                `bson:"menstrualTracking,omitempty" json:"menstrualTracking,omitempty"`
	AssignedRoutineID *primitive.ObjectID `bson:"assignedRoutineId,omitempty" json:"assignedRoutineId,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// HasHealthConditions reports whether any condition is recorded. Sentinel
// "none" style entries count as conditions unless the caller filtered them;
// the onboarding flow stores an empty slice for "no conditions".
func (p *Profile) HasHealthConditions() bool {
	return len(p.HealthConditions) > 0
}
