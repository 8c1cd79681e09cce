package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"
	"github.com/Ale64476/senda-flow-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// WorkoutHandler holds the workout and schedule service dependencies.
type WorkoutHandler struct {
	workoutService  service.WorkoutService
	scheduleService service.ScheduleService
	now             func() time.Time
}

// NewWorkoutHandler creates a new WorkoutHandler. The clock is injected so
// the "today" endpoint is testable; nil falls back to time.Now.
func NewWorkoutHandler(workoutService service.WorkoutService, scheduleService service.ScheduleService, now func() time.Time) *WorkoutHandler {
	if now == nil {
		now = time.Now
	}
	return &WorkoutHandler{
		workoutService:  workoutService,
		scheduleService: scheduleService,
		now:             now,
	}
}

// --- DTOs ---

// WorkoutExerciseResponse mirrors the snapshot stored on the workout.
type WorkoutExerciseResponse struct {
	Name            string `json:"name"`
	Sets            int    `json:"sets,omitempty"`
	Reps            int    `json:"reps,omitempty"`
	Notes           string `json:"notes,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// WorkoutResponse is the DTO for returning scheduled workout details.
type WorkoutResponse struct {
	ID                string                    `json:"id"`
	Name              string                    `json:"name"`
	Description       string                    `json:"description,omitempty"`
	ScheduledDate     string                    `json:"scheduledDate"`
	Location          string                    `json:"location,omitempty"`
	DurationMinutes   int                       `json:"durationMinutes,omitempty"`
	EstimatedCalories int                       `json:"estimatedCalories,omitempty"`
	Completed         bool                      `json:"completed"`
	CompletedAt       *time.Time                `json:"completedAt,omitempty"`
	Type              string                    `json:"type"`
	Exercises         []WorkoutExerciseResponse `json:"exercises,omitempty"`
}

// CreateWorkoutRequest defines the expected JSON for a manual workout.
type CreateWorkoutRequest struct {
	Name              string                   `json:"name" binding:"required"`
	Description       string                   `json:"description"`
	ScheduledDate     string                   `json:"scheduledDate" binding:"required"`
	Location          string                   `json:"location" binding:"omitempty,oneof=home gym outdoor"`
	DurationMinutes   int                      `json:"durationMinutes" binding:"omitempty,min=0"`
	EstimatedCalories int                      `json:"estimatedCalories" binding:"omitempty,min=0"`
	Exercises         []WorkoutExerciseRequest `json:"exercises"`
}

// WorkoutExerciseRequest is one exercise entry of a manual workout.
type WorkoutExerciseRequest struct {
	Name            string `json:"name" binding:"required"`
	Sets            int    `json:"sets" binding:"omitempty,min=0"`
	Reps            int    `json:"reps" binding:"omitempty,min=0"`
	Notes           string `json:"notes"`
	DurationMinutes int    `json:"durationMinutes" binding:"omitempty,min=0"`
}

// CompleteWorkoutRequest toggles completion; omitted means complete.
type CompleteWorkoutRequest struct {
	Completed *bool `json:"completed"`
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(workout *domain.Workout) WorkoutResponse {
	exercises := make([]WorkoutExerciseResponse, len(workout.Exercises))
	for i, exercise := range workout.Exercises {
		exercises[i] = WorkoutExerciseResponse{
			Name:            exercise.Name,
			Sets:            exercise.Sets,
			Reps:            exercise.Reps,
			Notes:           exercise.Notes,
			DurationMinutes: exercise.DurationMinutes,
		}
	}
	return WorkoutResponse{
		ID:                workout.ID.Hex(),
		Name:              workout.Name,
		Description:       workout.Description,
		ScheduledDate:     workout.ScheduledDate.Format(dateLayout),
		Location:          string(workout.Location),
		DurationMinutes:   workout.DurationMinutes,
		EstimatedCalories: workout.EstimatedCalories,
		Completed:         workout.Completed,
		CompletedAt:       workout.CompletedAt,
		Type:              string(workout.Type),
		Exercises:         exercises,
	}
}

// MapWorkoutsToResponse converts a slice of workouts to DTOs.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i, workout := range workouts {
		responses[i] = MapWorkoutToResponse(&workout)
	}
	return responses
}

// --- Handler Methods ---

// Redistribute regenerates the current week's automatic workouts.
func (h *WorkoutHandler) Redistribute(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	result, err := h.scheduleService.RedistributeWorkouts(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workoutsCreated": result.WorkoutsCreated,
		"trainingDays":    result.TrainingDays,
	})
}

// GetToday returns the caller's workouts scheduled for the current day.
func (h *WorkoutHandler) GetToday(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	today := h.now()
	workouts, err := h.workoutService.GetWorkoutsForDate(c.Request.Context(), userID, today)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workouts": MapWorkoutsToResponse(workouts),
		"date":     today.Format(dateLayout),
		"count":    len(workouts),
	})
}

// GetByDate returns workouts for a single date (?date=) or an inclusive
// range (?start_date=&end_date=).
func (h *WorkoutHandler) GetByDate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	ctx := c.Request.Context()
	var workouts []domain.Workout

	if dateStr := c.Query("date"); dateStr != "" {
		date, parseErr := time.Parse(dateLayout, dateStr)
		if parseErr != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", dateStr))
			return
		}
		workouts, err = h.workoutService.GetWorkoutsForDate(ctx, userID, date)
	} else {
		startStr, endStr := c.Query("start_date"), c.Query("end_date")
		if startStr == "" || endStr == "" {
			abortWithError(c, http.StatusBadRequest, "Provide either date or start_date and end_date")
			return
		}
		start, parseErr := time.Parse(dateLayout, startStr)
		if parseErr != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid start_date %q", startStr))
			return
		}
		end, parseErr := time.Parse(dateLayout, endStr)
		if parseErr != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid end_date %q", endStr))
			return
		}
		workouts, err = h.workoutService.GetWorkoutsInRange(ctx, userID, start, end)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workouts": MapWorkoutsToResponse(workouts),
		"count":    len(workouts),
	})
}

// GetAll returns the caller's workouts with an aggregate stats block.
func (h *WorkoutHandler) GetAll(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	filter := repository.WorkoutFilter{
		IncludeCompleted: c.DefaultQuery("include_completed", "true") == "true",
	}
	switch c.Query("type") {
	case "automatic":
		filter.Type = domain.WorkoutAutomatic
	case "manual":
		filter.Type = domain.WorkoutManual
	case "":
	default:
		abortWithError(c, http.StatusBadRequest, "type must be automatic or manual")
		return
	}

	workouts, stats, err := h.workoutService.GetAllWorkouts(c.Request.Context(), userID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workouts": MapWorkoutsToResponse(workouts),
		"stats":    stats,
	})
}

// Create inserts a manual workout for the caller.
func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	scheduledDate, err := time.Parse(dateLayout, req.ScheduledDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid scheduledDate %q, expected YYYY-MM-DD", req.ScheduledDate))
		return
	}

	exercises := make([]domain.WorkoutExercise, len(req.Exercises))
	for i, exercise := range req.Exercises {
		exercises[i] = domain.WorkoutExercise{
			Name:            exercise.Name,
			Sets:            exercise.Sets,
			Reps:            exercise.Reps,
			Notes:           exercise.Notes,
			DurationMinutes: exercise.DurationMinutes,
		}
	}

	workout, err := h.workoutService.CreateManualWorkout(c.Request.Context(), userID, service.ManualWorkoutInput{
		Name:              req.Name,
		Description:       req.Description,
		ScheduledDate:     scheduledDate,
		Location:          domain.Location(req.Location),
		DurationMinutes:   req.DurationMinutes,
		EstimatedCalories: req.EstimatedCalories,
		Exercises:         exercises,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workout": MapWorkoutToResponse(workout)})
}

// Complete marks a workout as done (or not done) after an ownership check.
func (h *WorkoutHandler) Complete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID")
		return
	}

	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	workout, err := h.workoutService.CompleteWorkout(c.Request.Context(), userID, workoutID, completed)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workout": MapWorkoutToResponse(workout)})
}
