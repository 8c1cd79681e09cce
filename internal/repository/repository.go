package repository

import (
	"context"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository defines the interface for interacting with fitness
// profiles. There is at most one profile per user.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
	SetAssignedRoutine(ctx context.Context, userID, routineID primitive.ObjectID) error
}

// RoutineFilter narrows the catalog listing. Zero values mean "any".
type RoutineFilter struct {
	Objective   string
	Level       domain.FitnessLevel
	Location    string
	DaysPerWeek int
}

// RoutineRepository defines the interface for the routine catalog and the
// day-numbered exercise placements each routine owns.
type RoutineRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	// ListAll returns the full catalog sorted by id, so a linear scan over
	// it has a stable tie-break order.
	ListAll(ctx context.Context) ([]domain.Routine, error)
	List(ctx context.Context, filter RoutineFilter) ([]domain.Routine, error)
	// ListExercises returns the routine's placements sorted by day number
	// then order-in-day.
	ListExercises(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineExercise, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Exercise, error)
}

// WorkoutFilter narrows workout listings for one user.
type WorkoutFilter struct {
	IncludeCompleted bool
	Type             domain.WorkoutType // empty means both types
}

// WorkoutRepository defines the interface for scheduled workout instances.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	ListByDateRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, filter WorkoutFilter) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	// DeleteFutureAutomatic removes the user's automatic, not yet completed
	// workouts scheduled at or after the given instant. Completed and past
	// workouts are never matched. Returns the number of deleted rows.
	DeleteFutureAutomatic(ctx context.Context, userID primitive.ObjectID, from time.Time) (int64, error)
}

// ProgressFilter narrows progress listings. Zero time bounds mean open ends.
type ProgressFilter struct {
	From  time.Time
	To    time.Time
	Limit int64
}

// ProgressRepository defines the interface for the progress log.
type ProgressRepository interface {
	Create(ctx context.Context, record *domain.ProgressRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressRecord, error)
	List(ctx context.Context, userID primitive.ObjectID, filter ProgressFilter) ([]domain.ProgressRecord, error)
	Update(ctx context.Context, record *domain.ProgressRecord) error
}
