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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new scheduled workout with its exercise snapshots.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Name == "" {
		return primitive.NilObjectID, errors.New("workout requires userId and name")
	}
	if workout.Type == "" {
		workout.Type = domain.WorkoutManual
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByDateRange returns the user's workouts with scheduledDate in
// [from, to), sorted by date.
func (r *mongoWorkoutRepository) ListByDateRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	filter := bson.M{
		"userId":        userID,
		"scheduledDate": bson.M{"$gte": from, "$lt": to},
	}
	return r.find(ctx, filter)
}

// ListByUser returns the user's workouts, optionally filtered by type and
// completion state.
func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, filter repository.WorkoutFilter) ([]domain.Workout, error) {
	query := bson.M{"userId": userID}
	if !filter.IncludeCompleted {
		query["completed"] = false
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	return r.find(ctx, query)
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Update replaces the mutable fields of a workout.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}
	workout.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":        workout.Name,
		"description": workout.Description,
		"completed":   workout.Completed,
		"completedAt": workout.CompletedAt,
		"updatedAt":   workout.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workout.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteFutureAutomatic purges the user's automatic, incomplete workouts
// scheduled at or after the given instant. Completed workouts and anything
// already in the past stay untouched.
func (r *mongoWorkoutRepository) DeleteFutureAutomatic(ctx context.Context, userID primitive.ObjectID, from time.Time) (int64, error) {
	filter := bson.M{
		"userId":        userID,
		"type":          domain.WorkoutAutomatic,
		"completed":     false,
		"scheduledDate": bson.M{"$gte": from},
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "scheduledDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "type", Value: 1}, {Key: "completed", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
