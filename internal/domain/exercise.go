package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseLevel type for catalog difficulty. Levels are cumulative: an
// intermediate user can do beginner exercises, an advanced user all of them.
type ExerciseLevel string

const (
	ExerciseLevelBeginner     ExerciseLevel = "B"
	ExerciseLevelIntermediate ExerciseLevel = "I"
	ExerciseLevelAdvanced     ExerciseLevel = "P"
)

// Exercise represents a single exercise definition in the catalog.
type Exercise struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                   string             `bson:"name" json:"name"`
	Description            string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroup            string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Pecho", "Piernas"
	Level                  ExerciseLevel      `bson:"level,omitempty" json:"level,omitempty"`
	TrainingType           string             `bson:"trainingType,omitempty" json:"trainingType,omitempty"` // e.g., "fuerza", "cardio"
	CaloriesPerRep         float64            `bson:"caloriesPerRep,omitempty" json:"caloriesPerRep,omitempty"`
	SuggestedSets          int                `bson:"suggestedSets,omitempty" json:"suggestedSets,omitempty"`
	SuggestedReps          int                `bson:"suggestedReps,omitempty" json:"suggestedReps,omitempty"`
	AverageDurationSeconds int                `bson:"averageDurationSeconds,omitempty" json:"averageDurationSeconds,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}
