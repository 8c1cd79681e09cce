package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new Profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// GetByUserID retrieves the profile belonging to a user.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or replaces the user's profile. The one-profile-per-user
// rule is backed by the unique userId index.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("profile requires userId")
	}
	now := time.Now().UTC()
	profile.UpdatedAt = now
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.ID == primitive.NilObjectID {
		profile.ID = primitive.NewObjectID()
	}

	filter := bson.M{"userId": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"fitnessLevel":           profile.FitnessLevel,
			"fitnessGoal":            profile.FitnessGoal,
			"gender":                 profile.Gender,
			"healthConditions":       profile.HealthConditions,
			"availableDaysPerWeek":   profile.AvailableDaysPerWeek,
			"sessionDurationMinutes": profile.SessionDurationMinutes,
			"availableWeekdays":      profile.AvailableWeekdays,
			"menstrualTracking":      profile.MenstrualTracking,
			"updatedAt":              profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       profile.ID,
			"userId":    profile.UserID,
			"createdAt": profile.CreatedAt,
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// SetAssignedRoutine writes the selected routine id onto the profile. This
// is the assignment engine's single side effect.
func (r *mongoProfileRepository) SetAssignedRoutine(ctx context.Context, userID, routineID primitive.ObjectID) error {
	filter := bson.M{"userId": userID}
	update := bson.M{"$set": bson.M{
		"assignedRoutineId": routineID,
		"updatedAt":         time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProfileIndexes creates necessary indexes. Call during startup.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
