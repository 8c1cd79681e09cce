package api

import (
	"net/http"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// RoutineHandler holds the routine assignment service dependency.
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// --- DTOs ---

// RoutineResponse is the DTO for returning catalog routine details.
type RoutineResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Objective         string    `json:"objective,omitempty"`
	Level             string    `json:"level,omitempty"`
	Location          string    `json:"location,omitempty"`
	DurationMinutes   int       `json:"durationMinutes"`
	EstimatedCalories int       `json:"estimatedCalories,omitempty"`
	DaysPerWeek       int       `json:"daysPerWeek,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ProfileSummaryResponse is the trimmed profile returned alongside the
// assigned routine.
type ProfileSummaryResponse struct {
	FitnessLevel           string   `json:"fitnessLevel"`
	FitnessGoal            string   `json:"fitnessGoal,omitempty"`
	SessionDurationMinutes int      `json:"sessionDurationMinutes"`
	AvailableWeekdays      []string `json:"availableWeekdays,omitempty"`
}

// MapRoutineToResponse converts a domain.Routine to RoutineResponse DTO.
func MapRoutineToResponse(routine *domain.Routine) RoutineResponse {
	if routine == nil {
		return RoutineResponse{}
	}
	return RoutineResponse{
		ID:                routine.ID.Hex(),
		Name:              routine.Name,
		Description:       routine.Description,
		Objective:         routine.Objective,
		Level:             string(routine.Level),
		Location:          routine.Location,
		DurationMinutes:   routine.DurationMinutes,
		EstimatedCalories: routine.EstimatedCalories,
		DaysPerWeek:       routine.DaysPerWeek,
		CreatedAt:         routine.CreatedAt,
	}
}

// MapRoutinesToResponse converts a slice of routines to DTOs.
func MapRoutinesToResponse(routines []domain.Routine) []RoutineResponse {
	responses := make([]RoutineResponse, len(routines))
	for i, routine := range routines {
		responses[i] = MapRoutineToResponse(&routine)
	}
	return responses
}

// --- Handler Methods ---

// AssignRoutine scores the catalog against the caller's profile and stores
// the best match.
func (h *RoutineHandler) AssignRoutine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	scored, err := h.routineService.AssignRoutine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routine": MapRoutineToResponse(&scored.Routine),
		"message": "Routine assigned successfully",
	})
}

// GetAssignedRoutine returns the caller's assigned routine and a profile
// summary, or a null routine with a message when nothing is assigned yet.
func (h *RoutineHandler) GetAssignedRoutine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	details, err := h.routineService.GetAssignedRoutine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routine": MapRoutineToResponse(details.Routine),
		"profile": ProfileSummaryResponse{
			FitnessLevel:           string(details.Profile.FitnessLevel),
			FitnessGoal:            string(details.Profile.FitnessGoal),
			SessionDurationMinutes: details.Profile.SessionDurationMinutes,
			AvailableWeekdays:      details.Profile.AvailableWeekdays,
		},
	})
}
