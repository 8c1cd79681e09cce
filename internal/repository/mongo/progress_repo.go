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

const progressCollectionName = "progress_records"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new Progress repository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create inserts a new progress record.
func (r *mongoProgressRepository) Create(ctx context.Context, record *domain.ProgressRecord) (primitive.ObjectID, error) {
	if record.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress record requires userId")
	}
	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Date.IsZero() {
		record.Date = now
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted progress record ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single progress record.
func (r *mongoProgressRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressRecord, error) {
	var record domain.ProgressRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// List returns the user's progress records sorted oldest first, optionally
// bounded by date and limited.
func (r *mongoProgressRepository) List(ctx context.Context, userID primitive.ObjectID, filter repository.ProgressFilter) ([]domain.ProgressRecord, error) {
	query := bson.M{"userId": userID}
	dateBounds := bson.M{}
	if !filter.From.IsZero() {
		dateBounds["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateBounds["$lt"] = filter.To
	}
	if len(dateBounds) > 0 {
		query["date"] = dateBounds
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.ProgressRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Update replaces the mutable fields of a progress record.
func (r *mongoProgressRepository) Update(ctx context.Context, record *domain.ProgressRecord) error {
	if record.ID == primitive.NilObjectID {
		return errors.New("progress record ID is required for update")
	}
	record.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"weightKg":           record.WeightKg,
		"measurements":       record.Measurements,
		"energyLevel":        record.EnergyLevel,
		"notes":              record.Notes,
		"exercisesCompleted": record.ExercisesCompleted,
		"photoObjectKey":     record.PhotoObjectKey,
		"updatedAt":          record.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": record.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgressIndexes creates necessary indexes. Call during startup.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
