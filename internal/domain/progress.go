package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Energy level bounds for a progress record.
const (
	MinEnergyLevel = 1
	MaxEnergyLevel = 5
)

// BodyMeasurements groups the optional tape measurements of a check-in.
// All values are centimeters.
type BodyMeasurements struct {
	Chest float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips  float64 `bson:"hips,omitempty" json:"hips,omitempty"`
	Arms  float64 `bson:"arms,omitempty" json:"arms,omitempty"`
	Legs  float64 `bson:"legs,omitempty" json:"legs,omitempty"`
}

// ProgressRecord is one check-in entry of the user's progress log. The
// scheduling engines never mutate these rows.
type ProgressRecord struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID  `bson:"userId" json:"userId"`
	Date               time.Time           `bson:"date" json:"date"`
	WorkoutID          *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	WeightKg           *float64            `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Measurements       *BodyMeasurements   `bson:"measurements,omitempty" json:"measurements,omitempty"`
	EnergyLevel        int                 `bson:"energyLevel,omitempty" json:"energyLevel,omitempty"`
	Notes              string              `bson:"notes,omitempty" json:"notes,omitempty"`
	ExercisesCompleted int                 `bson:"exercisesCompleted,omitempty" json:"exercisesCompleted,omitempty"`
	PhotoObjectKey     string              `bson:"photoObjectKey,omitempty" json:"photoObjectKey,omitempty"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}
