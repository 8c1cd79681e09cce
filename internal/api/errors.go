package api

import (
	"errors"
	"net/http"

	"github.com/Ale64476/senda-flow-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service-layer sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500; gin's recovery middleware is the backstop
// for panics, so nothing crosses the API boundary uncaught.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrProgressNotFound),
		errors.Is(err, service.ErrNoPhotoAttached),
		errors.Is(err, service.ErrEmptyCatalog):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoTrainingDays),
		errors.Is(err, service.ErrScheduleNotAssigned),
		errors.Is(err, service.ErrRoutineHasNoDays):
		// Incomplete setup: the client should send the user back to
		// profile configuration, so the reason is spelled out.
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidEnergyLevel),
		errors.Is(err, service.ErrInvalidWeekday),
		errors.Is(err, service.ErrInvalidFitnessLevel),
		errors.Is(err, service.ErrInvalidPhotoType),
		errors.Is(err, service.ErrWorkoutIncomplete):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWorkoutNotOwned),
		errors.Is(err, service.ErrProgressNotOwned):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNoRoutineAssigned):
		c.JSON(http.StatusOK, gin.H{"routine": nil, "message": "No routine assigned yet"})
	default:
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
