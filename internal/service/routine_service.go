package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrEmptyCatalog      = errors.New("no routines available in the catalog")
	ErrRoutineNotFound   = errors.New("routine not found")
	ErrNoRoutineAssigned = errors.New("no routine assigned yet")
)

// ScoredRoutine pairs a catalog routine with its suitability score.
type ScoredRoutine struct {
	Routine domain.Routine `json:"routine"`
	Score   float64        `json:"score"`
}

// AssignedRoutineDetails joins the assigned routine with a profile summary
// for the read endpoint.
type AssignedRoutineDetails struct {
	Routine *domain.Routine `json:"routine"`
	Profile *domain.Profile `json:"profile"`
}

// RoutineService owns routine assignment: scoring the catalog against the
// user's profile and persisting the best match.
type RoutineService interface {
	AssignRoutine(ctx context.Context, userID primitive.ObjectID) (*ScoredRoutine, error)
	GetAssignedRoutine(ctx context.Context, userID primitive.ObjectID) (*AssignedRoutineDetails, error)
}

// --- Service Implementation ---

type routineService struct {
	profileRepo repository.ProfileRepository
	routineRepo repository.RoutineRepository
	logger      *zap.Logger
}

// NewRoutineService creates a new instance of routineService.
func NewRoutineService(
	profileRepo repository.ProfileRepository,
	routineRepo repository.RoutineRepository,
	logger *zap.Logger,
) RoutineService {
	return &routineService{
		profileRepo: profileRepo,
		routineRepo: routineRepo,
		logger:      logger,
	}
}

// AssignRoutine scores every catalog routine against the user's profile,
// picks the highest score and writes the winner's id onto the profile.
// Selection is side-effect-free; the profile is the only write, and it
// happens after the winner is known. Ties keep the first maximum in catalog
// order (the catalog is listed sorted by routine id).
func (s *routineService) AssignRoutine(ctx context.Context, userID primitive.ObjectID) (*ScoredRoutine, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	catalog, err := s.routineRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	best := 0
	bestScore := ScoreRoutine(profile, &catalog[0])
	for i := 1; i < len(catalog); i++ {
		if score := ScoreRoutine(profile, &catalog[i]); score > bestScore {
			best = i
			bestScore = score
		}
	}
	selected := catalog[best]

	if err := s.profileRepo.SetAssignedRoutine(ctx, userID, selected.ID); err != nil {
		return nil, fmt.Errorf("failed to persist assigned routine: %w", err)
	}

	s.logger.Info("routine assigned",
		zap.String("userId", userID.Hex()),
		zap.String("routineId", selected.ID.Hex()),
		zap.Float64("score", bestScore),
	)

	return &ScoredRoutine{Routine: selected, Score: bestScore}, nil
}

// GetAssignedRoutine returns the user's currently assigned routine together
// with the profile it was matched against.
func (s *routineService) GetAssignedRoutine(ctx context.Context, userID primitive.ObjectID) (*AssignedRoutineDetails, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if profile.AssignedRoutineID == nil {
		return nil, ErrNoRoutineAssigned
	}

	routine, err := s.routineRepo.GetByID(ctx, *profile.AssignedRoutineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Assigned id points at a routine that no longer exists.
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}

	return &AssignedRoutineDetails{Routine: routine, Profile: profile}, nil
}
