package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"
	"github.com/Ale64476/senda-flow-sub000/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrInvalidEnergyLevel   = errors.New("energy level must be between 1 and 5")
	ErrProgressNotFound     = errors.New("progress record not found")
	ErrProgressNotOwned     = errors.New("progress record does not belong to this user")
	ErrInvalidPhotoType     = errors.New("invalid or missing image content type")
	ErrPhotoUploadURLError  = errors.New("failed to generate photo upload URL")
	ErrPhotoDownloadURLErr  = errors.New("failed to generate photo download URL")
	ErrNoPhotoAttached      = errors.New("progress record has no photo attached")
)

// ProgressInput carries the fields of a new check-in.
type ProgressInput struct {
	Date               time.Time
	WorkoutID          *primitive.ObjectID
	WeightKg           *float64
	Measurements       *domain.BodyMeasurements
	EnergyLevel        int
	Notes              string
	ExercisesCompleted int
}

// ProgressStats aggregates a window of progress records.
type ProgressStats struct {
	WorkoutCount  int      `json:"workoutCount"`
	WeightDelta   *float64 `json:"weightDelta,omitempty"`
	AverageEnergy float64  `json:"averageEnergy"`
	StreakDays    int      `json:"streakDays"`
}

// PhotoUploadResponse returns the presigned URL and the key the client must
// report back when attaching the photo to a record.
type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ProgressService owns the progress log: check-ins, aggregate stats and
// progress photos.
type ProgressService interface {
	RecordProgress(ctx context.Context, userID primitive.ObjectID, input ProgressInput) (*domain.ProgressRecord, error)
	GetProgress(ctx context.Context, userID primitive.ObjectID, filter repository.ProgressFilter) ([]domain.ProgressRecord, error)
	GetStats(ctx context.Context, userID primitive.ObjectID, days int) (*ProgressStats, error)
	RequestPhotoUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error)
	AttachPhoto(ctx context.Context, userID, recordID primitive.ObjectID, objectKey string) (*domain.ProgressRecord, error)
	GetPhotoDownloadURL(ctx context.Context, userID, recordID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type progressService struct {
	progressRepo repository.ProgressRepository
	fileStorage  storage.FileStorage
	logger       *zap.Logger
	now          func() time.Time
}

// NewProgressService creates a new instance of progressService. The clock
// is injected for deterministic streak computation; nil falls back to
// time.Now.
func NewProgressService(
	progressRepo repository.ProgressRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
	now func() time.Time,
) ProgressService {
	if now == nil {
		now = time.Now
	}
	return &progressService{
		progressRepo: progressRepo,
		fileStorage:  fileStorage,
		logger:       logger,
		now:          now,
	}
}

// RecordProgress validates and inserts a new check-in. An out-of-range
// energy level is rejected before anything is written.
func (s *progressService) RecordProgress(ctx context.Context, userID primitive.ObjectID, input ProgressInput) (*domain.ProgressRecord, error) {
	if input.EnergyLevel != 0 && (input.EnergyLevel < domain.MinEnergyLevel || input.EnergyLevel > domain.MaxEnergyLevel) {
		return nil, ErrInvalidEnergyLevel
	}

	record := &domain.ProgressRecord{
		UserID:             userID,
		Date:               input.Date,
		WorkoutID:          input.WorkoutID,
		WeightKg:           input.WeightKg,
		Measurements:       input.Measurements,
		EnergyLevel:        input.EnergyLevel,
		Notes:              input.Notes,
		ExercisesCompleted: input.ExercisesCompleted,
	}
	if record.Date.IsZero() {
		record.Date = s.now().UTC()
	}

	id, err := s.progressRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id
	return record, nil
}

// GetProgress lists the user's check-ins under the given filter.
func (s *progressService) GetProgress(ctx context.Context, userID primitive.ObjectID, filter repository.ProgressFilter) ([]domain.ProgressRecord, error) {
	return s.progressRepo.List(ctx, userID, filter)
}

// GetStats aggregates the user's records over the trailing day window:
// linked workout count, first-to-last weight delta, mean energy level, and
// the consecutive-day streak counted backward from today.
func (s *progressService) GetStats(ctx context.Context, userID primitive.ObjectID, days int) (*ProgressStats, error) {
	if days <= 0 {
		days = 30
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	records, err := s.progressRepo.List(ctx, userID, repository.ProgressFilter{
		From: today.AddDate(0, 0, -days),
	})
	if err != nil {
		return nil, err
	}

	stats := &ProgressStats{}
	energySum := 0
	energyCount := 0
	var firstWeight, lastWeight *float64
	recordedDays := make(map[string]bool, len(records))

	for _, record := range records {
		if record.WorkoutID != nil {
			stats.WorkoutCount++
		}
		if record.EnergyLevel > 0 {
			energySum += record.EnergyLevel
			energyCount++
		}
		if record.WeightKg != nil {
			if firstWeight == nil {
				firstWeight = record.WeightKg
			}
			lastWeight = record.WeightKg
		}
		recordedDays[record.Date.In(now.Location()).Format("2006-01-02")] = true
	}

	if energyCount > 0 {
		stats.AverageEnergy = float64(energySum) / float64(energyCount)
	}
	// Weight delta needs at least two samples; with one the pointers alias.
	if firstWeight != nil && lastWeight != nil && firstWeight != lastWeight {
		delta := *lastWeight - *firstWeight
		stats.WeightDelta = &delta
	}
	stats.StreakDays = streakDays(recordedDays, today)

	return stats, nil
}

// streakDays counts the run of consecutive recorded days ending today. The
// streak may start yesterday when today has no record yet; a larger gap
// ends it.
func streakDays(recordedDays map[string]bool, today time.Time) int {
	day := today
	if !recordedDays[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for recordedDays[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// === Progress photos ===

// RequestPhotoUploadURL generates a presigned URL for uploading a progress
// photo directly to object storage.
func (s *progressService) RequestPhotoUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidPhotoType
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("progress", userID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.logger.Error("presigned upload URL generation failed",
			zap.String("userId", userID.Hex()),
			zap.Error(err),
		)
		return nil, ErrPhotoUploadURLError
	}

	return &PhotoUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// AttachPhoto stores the uploaded photo's object key on an existing record
// after an ownership check.
func (s *progressService) AttachPhoto(ctx context.Context, userID, recordID primitive.ObjectID, objectKey string) (*domain.ProgressRecord, error) {
	if objectKey == "" {
		return nil, errors.New("object key is required")
	}

	record, err := s.progressRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, ErrProgressNotOwned
	}

	record.PhotoObjectKey = objectKey
	if err := s.progressRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetPhotoDownloadURL generates a temporary URL for viewing the photo
// attached to one of the user's own records.
func (s *progressService) GetPhotoDownloadURL(ctx context.Context, userID, recordID primitive.ObjectID) (string, error) {
	record, err := s.progressRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrProgressNotFound
		}
		return "", err
	}
	if record.UserID != userID {
		return "", ErrProgressNotOwned
	}
	if record.PhotoObjectKey == "" {
		return "", ErrNoPhotoAttached
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, record.PhotoObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrPhotoDownloadURLErr
	}
	return downloadURL, nil
}
