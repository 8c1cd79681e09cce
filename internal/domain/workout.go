package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType distinguishes schedule-generated workouts from ones the user
// created by hand. Only automatic workouts are ever purged on regeneration.
type WorkoutType string

const (
	WorkoutAutomatic WorkoutType = "automatic"
	WorkoutManual    WorkoutType = "manual"
)

// WorkoutExercise is a snapshot of an Exercise taken when the workout was
// scheduled. It is an owned value on the Workout, not a reference, so later
// catalog edits never rewrite scheduled or completed history.
type WorkoutExercise struct {
	Name            string `bson:"name" json:"name"`
	Sets            int    `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            int    `bson:"reps,omitempty" json:"reps,omitempty"`
	Notes           string `bson:"notes,omitempty" json:"notes,omitempty"`
	DurationMinutes int    `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
}

// Workout represents a concrete dated session on the user's calendar.
type Workout struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Name              string             `bson:"name" json:"name"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	ScheduledDate     time.Time          `bson:"scheduledDate" json:"scheduledDate"`
	Location          Location           `bson:"location,omitempty" json:"location,omitempty"`
	DurationMinutes   int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	EstimatedCalories int                `bson:"estimatedCalories,omitempty" json:"estimatedCalories,omitempty"`
	Completed         bool               `bson:"completed" json:"completed"`
	CompletedAt       *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Type              WorkoutType        `bson:"type" json:"type"`
	Exercises         []WorkoutExercise  `bson:"exercises,omitempty" json:"exercises,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
