package service

import (
	"context"
	"errors"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidWeekday      = errors.New("unknown weekday code in available weekdays")
	ErrInvalidFitnessLevel = errors.New("fitness level must be beginner, intermediate or advanced")
)

// ProfileInput carries the onboarding fields of a profile write.
type ProfileInput struct {
	FitnessLevel           domain.FitnessLevel
	FitnessGoal            domain.FitnessGoal
	Gender                 domain.Gender
	HealthConditions       []string
	AvailableDaysPerWeek   int
	SessionDurationMinutes int
	AvailableWeekdays      []string
	MenstrualTracking      bool
}

// ProfileService owns reads and writes of the user's fitness profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// GetProfile returns the user's profile.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// SaveProfile validates and upserts the user's onboarding profile. Weekday
// codes are validated up front so the schedule engine never sees garbage.
func (s *profileService) SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.Profile, error) {
	switch input.FitnessLevel {
	case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
	default:
		return nil, ErrInvalidFitnessLevel
	}
	for _, code := range input.AvailableWeekdays {
		if _, err := domain.ParseWeekday(code); err != nil {
			return nil, ErrInvalidWeekday
		}
	}

	profile := &domain.Profile{
		UserID:                 userID,
		FitnessLevel:           input.FitnessLevel,
		FitnessGoal:            input.FitnessGoal,
		Gender:                 input.Gender,
		HealthConditions:       input.HealthConditions,
		AvailableDaysPerWeek:   input.AvailableDaysPerWeek,
		SessionDurationMinutes: input.SessionDurationMinutes,
		AvailableWeekdays:      input.AvailableWeekdays,
		MenstrualTracking:      input.MenstrualTracking,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
