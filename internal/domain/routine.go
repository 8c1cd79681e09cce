package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location type for where a workout takes place.
type Location string

const (
	LocationHome    Location = "home"
	LocationGym     Location = "gym"
	LocationOutdoor Location = "outdoor"
)

// NormalizeLocation maps a free-text location (Spanish in the seeded
// catalog) onto a Location by substring match. Unmatched text defaults to
// home.
func NormalizeLocation(raw string) Location {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "casa"):
		return LocationHome
	case strings.Contains(lower, "gimnasio"), strings.Contains(lower, "gym"):
		return LocationGym
	case strings.Contains(lower, "exterior"), strings.Contains(lower, "parque"):
		return LocationOutdoor
	default:
		return LocationHome
	}
}

// Routine represents a predesigned program in the catalog. A routine is both
// the unit the assignment engine scores (duration, location, level) and, via
// its day-numbered RoutineExercise placements, the multi-day plan the
// schedule engine spreads over the user's training weekdays.
type Routine struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Objective         string             `bson:"objective,omitempty" json:"objective,omitempty"` // e.g., "perder_peso"
	Level             FitnessLevel       `bson:"level,omitempty" json:"level,omitempty"`
	Location          string             `bson:"location,omitempty" json:"location,omitempty"` // Free text, see NormalizeLocation
	DurationMinutes   int                `bson:"durationMinutes" json:"durationMinutes"`
	EstimatedCalories int                `bson:"estimatedCalories,omitempty" json:"estimatedCalories,omitempty"`
	DaysPerWeek       int                `bson:"daysPerWeek,omitempty" json:"daysPerWeek,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RoutineExercise places one Exercise on one day of a Routine. DayNumber
// starts at 1 and is not required to be contiguous; OrderInDay sorts
// exercises within the day.
type RoutineExercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoutineID  primitive.ObjectID `bson:"routineId" json:"routineId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	DayNumber  int                `bson:"dayNumber" json:"dayNumber"`
	OrderInDay int                `bson:"orderInDay" json:"orderInDay"`
}
