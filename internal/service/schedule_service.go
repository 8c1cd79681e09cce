package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrNoTrainingDays      = errors.New("profile has no training weekdays selected")
	ErrRoutineHasNoDays    = errors.New("assigned routine has no exercises to schedule")
	ErrScheduleNotAssigned = errors.New("profile has no assigned routine")
)

// Fixed per-exercise time budget used for the workout duration estimate.
const minutesPerExercise = 5

// RedistributionResult reports what a redistribution run produced.
type RedistributionResult struct {
	WorkoutsCreated int      `json:"workoutsCreated"`
	TrainingDays    []string `json:"trainingDays"`
}

// ScheduleService regenerates the current week's automatic workouts from
// the assigned routine and the user's selected training weekdays.
type ScheduleService interface {
	RedistributeWorkouts(ctx context.Context, userID primitive.ObjectID) (*RedistributionResult, error)
}

// --- Service Implementation ---

type scheduleService struct {
	profileRepo  repository.ProfileRepository
	routineRepo  repository.RoutineRepository
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewScheduleService creates a new instance of scheduleService. The clock is
// injected so date arithmetic is testable; nil falls back to time.Now.
func NewScheduleService(
	profileRepo repository.ProfileRepository,
	routineRepo repository.RoutineRepository,
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	logger *zap.Logger,
	now func() time.Time,
) ScheduleService {
	if now == nil {
		now = time.Now
	}
	return &scheduleService{
		profileRepo:  profileRepo,
		routineRepo:  routineRepo,
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		logger:       logger,
		now:          now,
	}
}

// RedistributeWorkouts maps the assigned routine's day numbers onto the
// user's training weekdays within the current Monday-start week, purges
// stale future automatic workouts, and creates one dated workout per
// remaining weekday with denormalized exercise snapshots.
//
// The run is idempotent at the operation level: rerunning with no state
// change deletes the previous run's future workouts and recreates an
// equivalent set. Insert failures for a single day are logged and skipped
// so the remaining days still get scheduled.
func (s *scheduleService) RedistributeWorkouts(ctx context.Context, userID primitive.ObjectID) (*RedistributionResult, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if len(profile.AvailableWeekdays) == 0 {
		return nil, ErrNoTrainingDays
	}
	if profile.AssignedRoutineID == nil {
		return nil, ErrScheduleNotAssigned
	}

	routine, err := s.routineRepo.GetByID(ctx, *profile.AssignedRoutineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}

	placements, err := s.routineRepo.ListExercises(ctx, routine.ID)
	if err != nil {
		return nil, err
	}
	if len(placements) == 0 {
		return nil, ErrRoutineHasNoDays
	}

	exercises, err := s.fetchExercises(ctx, placements)
	if err != nil {
		return nil, err
	}

	// Group placements by day number. Absent day numbers are skipped
	// entirely, they never show up as empty days.
	byDay := make(map[int][]domain.RoutineExercise)
	for _, placement := range placements {
		byDay[placement.DayNumber] = append(byDay[placement.DayNumber], placement)
	}
	dayNumbers := make([]int, 0, len(byDay))
	for day := range byDay {
		dayNumbers = append(dayNumbers, day)
	}
	sort.Ints(dayNumbers)

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monday := domain.MondayOfWeek(now)

	// Purge current and future automatic workouts that were never
	// completed. Completed workouts and past dates are history and stay.
	if _, err := s.workoutRepo.DeleteFutureAutomatic(ctx, userID, today); err != nil {
		return nil, fmt.Errorf("failed to clear stale automatic workouts: %w", err)
	}

	result := &RedistributionResult{TrainingDays: []string{}}
	processed := 0
	for _, code := range profile.AvailableWeekdays {
		weekday, err := domain.ParseWeekday(code)
		if err != nil {
			s.logger.Warn("skipping unknown weekday code",
				zap.String("userId", userID.Hex()),
				zap.String("weekday", code),
			)
			continue
		}

		date := monday.AddDate(0, 0, domain.WeekdayOffset(weekday))
		if date.Before(today) {
			// Never schedule into the past.
			continue
		}

		// Circular mapping: when the user trains more days than the
		// routine defines, routine days repeat in cyclic order.
		dayNumber := dayNumbers[processed%len(dayNumbers)]
		processed++

		workout := s.buildWorkout(userID, routine, dayNumber, byDay[dayNumber], exercises, date)
		if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
			s.logger.Warn("failed to create scheduled workout, skipping day",
				zap.String("userId", userID.Hex()),
				zap.String("weekday", code),
				zap.Time("date", date),
				zap.Error(err),
			)
			continue
		}

		result.WorkoutsCreated++
		result.TrainingDays = append(result.TrainingDays, code)
	}

	s.logger.Info("workouts redistributed",
		zap.String("userId", userID.Hex()),
		zap.String("routineId", routine.ID.Hex()),
		zap.Int("created", result.WorkoutsCreated),
	)

	return result, nil
}

func (s *scheduleService) fetchExercises(ctx context.Context, placements []domain.RoutineExercise) (map[primitive.ObjectID]domain.Exercise, error) {
	seen := make(map[primitive.ObjectID]bool, len(placements))
	ids := make([]primitive.ObjectID, 0, len(placements))
	for _, placement := range placements {
		if !seen[placement.ExerciseID] {
			seen[placement.ExerciseID] = true
			ids = append(ids, placement.ExerciseID)
		}
	}
	return s.exerciseRepo.GetByIDs(ctx, ids)
}

// buildWorkout materializes one routine day into a dated workout with
// denormalized exercise snapshots. Later catalog edits do not propagate to
// the snapshots.
func (s *scheduleService) buildWorkout(
	userID primitive.ObjectID,
	routine *domain.Routine,
	dayNumber int,
	placements []domain.RoutineExercise,
	exercises map[primitive.ObjectID]domain.Exercise,
	date time.Time,
) *domain.Workout {
	snapshots := make([]domain.WorkoutExercise, 0, len(placements))
	totalCalories := 0.0
	muscleGroup := ""
	for _, placement := range placements {
		exercise, ok := exercises[placement.ExerciseID]
		if !ok || exercise.Name == "" {
			// Broken catalog reference; the day still yields a workout,
			// just without this entry.
			continue
		}
		if muscleGroup == "" {
			muscleGroup = exercise.MuscleGroup
		}
		totalCalories += exercise.CaloriesPerRep * float64(exercise.SuggestedReps) * float64(exercise.SuggestedSets)
		snapshots = append(snapshots, domain.WorkoutExercise{
			Name:            exercise.Name,
			Sets:            exercise.SuggestedSets,
			Reps:            exercise.SuggestedReps,
			Notes:           exercise.Description,
			DurationMinutes: exerciseDurationMinutes(&exercise),
		})
	}

	description := routine.Description
	if muscleGroup != "" {
		description = fmt.Sprintf("Entrenamiento de %s", strings.ToLower(muscleGroup))
	}

	return &domain.Workout{
		UserID:            userID,
		Name:              fmt.Sprintf("%s (día %d)", routine.Name, dayNumber),
		Description:       description,
		ScheduledDate:     date,
		Location:          domain.NormalizeLocation(routine.Location),
		DurationMinutes:   len(snapshots) * minutesPerExercise,
		EstimatedCalories: int(math.Round(totalCalories)),
		Completed:         false,
		Type:              domain.WorkoutAutomatic,
		Exercises:         snapshots,
	}
}

// exerciseDurationMinutes derives a per-exercise minute estimate from the
// catalog's average rep duration and the suggested volume.
func exerciseDurationMinutes(exercise *domain.Exercise) int {
	seconds := exercise.AverageDurationSeconds * exercise.SuggestedReps * exercise.SuggestedSets
	return int(math.Round(float64(seconds) / 60))
}
