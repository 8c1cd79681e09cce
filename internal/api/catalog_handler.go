package api

import (
	"net/http"
	"strconv"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"
	"github.com/Ale64476/senda-flow-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public, unauthenticated catalog endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListRoutines returns catalog routines, optionally filtered by location
// and limited.
func (h *CatalogHandler) ListRoutines(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	routines, err := h.catalogService.ListRoutines(c.Request.Context(), c.Query("location"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routines": MapRoutinesToResponse(routines),
		"count":    len(routines),
	})
}

// ListPlans returns predesigned plans matching the onboarding wizard's
// filters. Query parameter names match the catalog's stored Spanish values.
func (h *CatalogHandler) ListPlans(c *gin.Context) {
	filter := repository.RoutineFilter{
		Objective: c.Query("objetivo"),
		Level:     domain.FitnessLevel(c.Query("nivel")),
		Location:  c.Query("lugar"),
	}
	if daysStr := c.Query("dias_semana"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			abortWithError(c, http.StatusBadRequest, "dias_semana must be a positive integer")
			return
		}
		filter.DaysPerWeek = days
	}

	plans, err := h.catalogService.ListPlans(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": MapRoutinesToResponse(plans),
		"count": len(plans),
	})
}
