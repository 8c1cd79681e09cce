package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"
	"github.com/Ale64476/senda-flow-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

// RecordProgressRequest defines the expected JSON for a check-in.
type RecordProgressRequest struct {
	Date               string                   `json:"date"`
	WorkoutID          string                   `json:"workoutId"`
	WeightKg           *float64                 `json:"weightKg"`
	Measurements       *domain.BodyMeasurements `json:"measurements"`
	EnergyLevel        int                      `json:"energyLevel" binding:"omitempty,min=1,max=5"`
	Notes              string                   `json:"notes"`
	ExercisesCompleted int                      `json:"exercisesCompleted" binding:"omitempty,min=0"`
}

// ProgressResponse is the DTO for returning a progress record.
type ProgressResponse struct {
	ID                 string                   `json:"id"`
	Date               string                   `json:"date"`
	WorkoutID          string                   `json:"workoutId,omitempty"`
	WeightKg           *float64                 `json:"weightKg,omitempty"`
	Measurements       *domain.BodyMeasurements `json:"measurements,omitempty"`
	EnergyLevel        int                      `json:"energyLevel,omitempty"`
	Notes              string                   `json:"notes,omitempty"`
	ExercisesCompleted int                      `json:"exercisesCompleted,omitempty"`
	HasPhoto           bool                     `json:"hasPhoto"`
}

// PhotoUploadURLRequest asks for a presigned progress-photo upload URL.
type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// AttachPhotoRequest reports the uploaded object key back to the server.
type AttachPhotoRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// MapProgressToResponse converts a domain.ProgressRecord to a DTO.
func MapProgressToResponse(record *domain.ProgressRecord) ProgressResponse {
	response := ProgressResponse{
		ID:                 record.ID.Hex(),
		Date:               record.Date.Format(dateLayout),
		WeightKg:           record.WeightKg,
		Measurements:       record.Measurements,
		EnergyLevel:        record.EnergyLevel,
		Notes:              record.Notes,
		ExercisesCompleted: record.ExercisesCompleted,
		HasPhoto:           record.PhotoObjectKey != "",
	}
	if record.WorkoutID != nil {
		response.WorkoutID = record.WorkoutID.Hex()
	}
	return response
}

// MapProgressListToResponse converts a slice of records to DTOs.
func MapProgressListToResponse(records []domain.ProgressRecord) []ProgressResponse {
	responses := make([]ProgressResponse, len(records))
	for i, record := range records {
		responses[i] = MapProgressToResponse(&record)
	}
	return responses
}

// --- Handler Methods ---

// Record inserts a new progress check-in.
func (h *ProgressHandler) Record(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.ProgressInput{
		WeightKg:           req.WeightKg,
		Measurements:       req.Measurements,
		EnergyLevel:        req.EnergyLevel,
		Notes:              req.Notes,
		ExercisesCompleted: req.ExercisesCompleted,
	}
	if req.Date != "" {
		date, parseErr := time.Parse(dateLayout, req.Date)
		if parseErr != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", req.Date))
			return
		}
		input.Date = date
	}
	if req.WorkoutID != "" {
		workoutID, parseErr := primitive.ObjectIDFromHex(req.WorkoutID)
		if parseErr != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid workout ID")
			return
		}
		input.WorkoutID = &workoutID
	}

	record, err := h.progressService.RecordProgress(c.Request.Context(), userID, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"progress": MapProgressToResponse(record)})
}

// List returns the caller's progress records, optionally bounded and
// limited.
func (h *ProgressHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	filter := repository.ProgressFilter{}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, parseErr := strconv.ParseInt(limitStr, 10, 64)
		if parseErr != nil || limit < 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, parseErr := time.Parse(dateLayout, startStr)
		if parseErr != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid start_date %q", startStr))
			return
		}
		filter.From = start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, parseErr := time.Parse(dateLayout, endStr)
		if parseErr != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid end_date %q", endStr))
			return
		}
		filter.To = end.AddDate(0, 0, 1) // inclusive end date
	}

	records, err := h.progressService.GetProgress(c.Request.Context(), userID, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progress": MapProgressListToResponse(records),
		"count":    len(records),
	})
}

// Stats returns aggregate progress statistics over a trailing day window.
func (h *ProgressHandler) Stats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	days := 30
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, parseErr := strconv.Atoi(daysStr)
		if parseErr != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	stats, err := h.progressService.GetStats(c.Request.Context(), userID, days)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":      stats,
		"periodDays": days,
	})
}

// RequestPhotoURL returns a presigned URL for uploading a progress photo.
func (h *ProgressHandler) RequestPhotoURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	response, err := h.progressService.RequestPhotoUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AttachPhoto stores an uploaded photo's object key on a progress record.
func (h *ProgressHandler) AttachPhoto(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress record ID")
		return
	}

	var req AttachPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.progressService.AttachPhoto(c.Request.Context(), userID, recordID, req.ObjectKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": MapProgressToResponse(record)})
}

// GetPhotoURL returns a temporary download URL for a record's photo.
func (h *ProgressHandler) GetPhotoURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	recordID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress record ID")
		return
	}

	url, err := h.progressService.GetPhotoDownloadURL(c.Request.Context(), userID, recordID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
