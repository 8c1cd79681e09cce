package api

import (
	"fmt"
	"net/http"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

// SaveProfileRequest defines the expected JSON for the onboarding profile.
type SaveProfileRequest struct {
	FitnessLevel           string   `json:"fitnessLevel" binding:"required,oneof=beginner intermediate advanced"`
	FitnessGoal            string   `json:"fitnessGoal"`
	Gender                 string   `json:"gender" binding:"omitempty,oneof=female male other"`
	HealthConditions       []string `json:"healthConditions"`
	AvailableDaysPerWeek   int      `json:"availableDaysPerWeek" binding:"omitempty,min=1,max=7"`
	SessionDurationMinutes int      `json:"sessionDurationMinutes" binding:"omitempty,min=5"`
	AvailableWeekdays      []string `json:"availableWeekdays"`
	MenstrualTracking      bool     `json:"menstrualTracking"`
}

// ProfileResponse is the DTO for returning the full profile.
type ProfileResponse struct {
	UserID                 string   `json:"userId"`
	FitnessLevel           string   `json:"fitnessLevel"`
	FitnessGoal            string   `json:"fitnessGoal,omitempty"`
	Gender                 string   `json:"gender,omitempty"`
	HealthConditions       []string `json:"healthConditions,omitempty"`
	AvailableDaysPerWeek   int      `json:"availableDaysPerWeek"`
	SessionDurationMinutes int      `json:"sessionDurationMinutes"`
	AvailableWeekdays      []string `json:"availableWeekdays,omitempty"`
	MenstrualTracking      bool     `json:"menstrualTracking"`
	AssignedRoutineID      string   `json:"assignedRoutineId,omitempty"`
}

// MapProfileToResponse converts a domain.Profile to ProfileResponse DTO.
func MapProfileToResponse(profile *domain.Profile) ProfileResponse {
	response := ProfileResponse{
		UserID:                 profile.UserID.Hex(),
		FitnessLevel:           string(profile.FitnessLevel),
		FitnessGoal:            string(profile.FitnessGoal),
		Gender:                 string(profile.Gender),
		HealthConditions:       profile.HealthConditions,
		AvailableDaysPerWeek:   profile.AvailableDaysPerWeek,
		SessionDurationMinutes: profile.SessionDurationMinutes,
		AvailableWeekdays:      profile.AvailableWeekdays,
		MenstrualTracking:      profile.MenstrualTracking,
	}
	if profile.AssignedRoutineID != nil {
		response.AssignedRoutineID = profile.AssignedRoutineID.Hex()
	}
	return response
}

// --- Handler Methods ---

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": MapProfileToResponse(profile)})
}

// Save creates or replaces the caller's onboarding profile.
func (h *ProfileHandler) Save(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), userID, service.ProfileInput{
		FitnessLevel:           domain.FitnessLevel(req.FitnessLevel),
		FitnessGoal:            domain.FitnessGoal(req.FitnessGoal),
		Gender:                 domain.Gender(req.Gender),
		HealthConditions:       req.HealthConditions,
		AvailableDaysPerWeek:   req.AvailableDaysPerWeek,
		SessionDurationMinutes: req.SessionDurationMinutes,
		AvailableWeekdays:      req.AvailableWeekdays,
		MenstrualTracking:      req.MenstrualTracking,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": MapProfileToResponse(profile)})
}
