package service

import (
	"context"
	"errors"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrWorkoutNotOwned   = errors.New("workout does not belong to this user")
	ErrWorkoutIncomplete = errors.New("workout requires a name and a scheduled date")
)

// WorkoutStats summarizes a listing of workouts for the dashboard.
type WorkoutStats struct {
	Total         int `json:"total"`
	Completed     int `json:"completed"`
	Pending       int `json:"pending"`
	Automatic     int `json:"automatic"`
	Manual        int `json:"manual"`
	TotalCalories int `json:"totalCalories"`
	TotalMinutes  int `json:"totalMinutes"`
}

// ManualWorkoutInput carries the fields a user supplies when creating a
// workout by hand.
type ManualWorkoutInput struct {
	Name              string
	Description       string
	ScheduledDate     time.Time
	Location          domain.Location
	DurationMinutes   int
	EstimatedCalories int
	Exercises         []domain.WorkoutExercise
}

// WorkoutService owns reads and user-driven writes of scheduled workouts.
// Automatic generation lives in ScheduleService.
type WorkoutService interface {
	GetWorkoutsForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.Workout, error)
	GetWorkoutsInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error)
	GetAllWorkouts(ctx context.Context, userID primitive.ObjectID, filter repository.WorkoutFilter) ([]domain.Workout, *WorkoutStats, error)
	CreateManualWorkout(ctx context.Context, userID primitive.ObjectID, input ManualWorkoutInput) (*domain.Workout, error)
	CompleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, completed bool) (*domain.Workout, error)
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewWorkoutService creates a new instance of workoutService. The clock is
// injected for testable completion timestamps; nil falls back to time.Now.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, logger *zap.Logger, now func() time.Time) WorkoutService {
	if now == nil {
		now = time.Now
	}
	return &workoutService{
		workoutRepo: workoutRepo,
		logger:      logger,
		now:         now,
	}
}

// GetWorkoutsForDate returns the user's workouts scheduled on one calendar
// day.
func (s *workoutService) GetWorkoutsForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.Workout, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return s.workoutRepo.ListByDateRange(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
}

// GetWorkoutsInRange returns the user's workouts with scheduled dates in
// [from, to] inclusive of the end date's whole day.
func (s *workoutService) GetWorkoutsInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	rangeStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	rangeEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	return s.workoutRepo.ListByDateRange(ctx, userID, rangeStart, rangeEnd)
}

// GetAllWorkouts returns the user's workouts under the given filter plus
// aggregate stats over the returned set.
func (s *workoutService) GetAllWorkouts(ctx context.Context, userID primitive.ObjectID, filter repository.WorkoutFilter) ([]domain.Workout, *WorkoutStats, error) {
	workouts, err := s.workoutRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, nil, err
	}

	stats := &WorkoutStats{Total: len(workouts)}
	for _, workout := range workouts {
		if workout.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}
		switch workout.Type {
		case domain.WorkoutAutomatic:
			stats.Automatic++
		case domain.WorkoutManual:
			stats.Manual++
		}
		stats.TotalCalories += workout.EstimatedCalories
		stats.TotalMinutes += workout.DurationMinutes
	}
	return workouts, stats, nil
}

// CreateManualWorkout inserts a user-authored workout. Manual workouts are
// never touched by schedule regeneration.
func (s *workoutService) CreateManualWorkout(ctx context.Context, userID primitive.ObjectID, input ManualWorkoutInput) (*domain.Workout, error) {
	if input.Name == "" || input.ScheduledDate.IsZero() {
		return nil, ErrWorkoutIncomplete
	}

	workout := &domain.Workout{
		UserID:            userID,
		Name:              input.Name,
		Description:       input.Description,
		ScheduledDate:     input.ScheduledDate,
		Location:          input.Location,
		DurationMinutes:   input.DurationMinutes,
		EstimatedCalories: input.EstimatedCalories,
		Type:              domain.WorkoutManual,
		Exercises:         input.Exercises,
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

// CompleteWorkout toggles a workout's completion state after checking the
// caller owns it.
func (s *workoutService) CompleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, completed bool) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutNotOwned
	}

	workout.Completed = completed
	if completed {
		completedAt := s.now().UTC()
		workout.CompletedAt = &completedAt
	} else {
		workout.CompletedAt = nil
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}

	s.logger.Info("workout completion updated",
		zap.String("userId", userID.Hex()),
		zap.String("workoutId", workoutID.Hex()),
		zap.Bool("completed", completed),
	)
	return workout, nil
}
