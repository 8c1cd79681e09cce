package service

import (
	"context"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"
)

// CatalogService serves the public, unauthenticated catalog listings.
type CatalogService interface {
	// ListRoutines returns catalog routines, optionally filtered by
	// normalized location and limited.
	ListRoutines(ctx context.Context, location string, limit int) ([]domain.Routine, error)
	// ListPlans returns predesigned routines matching the raw catalog
	// filters the onboarding wizard sends.
	ListPlans(ctx context.Context, filter repository.RoutineFilter) ([]domain.Routine, error)
}

type catalogService struct {
	routineRepo repository.RoutineRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(routineRepo repository.RoutineRepository) CatalogService {
	return &catalogService{routineRepo: routineRepo}
}

// ListRoutines filters by location after normalization, so "gym",
// "Gimnasio" and "gimnasio en casa"-style free text all compare sanely.
func (s *catalogService) ListRoutines(ctx context.Context, location string, limit int) ([]domain.Routine, error) {
	routines, err := s.routineRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if location != "" {
		wanted := domain.NormalizeLocation(location)
		filtered := make([]domain.Routine, 0, len(routines))
		for _, routine := range routines {
			if domain.NormalizeLocation(routine.Location) == wanted {
				filtered = append(filtered, routine)
			}
		}
		routines = filtered
	}

	if limit > 0 && len(routines) > limit {
		routines = routines[:limit]
	}
	return routines, nil
}

// ListPlans passes the filter through to the store; fields match the
// catalog's stored (Spanish) values exactly.
func (s *catalogService) ListPlans(ctx context.Context, filter repository.RoutineFilter) ([]domain.Routine, error) {
	return s.routineRepo.List(ctx, filter)
}
