package mongo

import (
	"context"
	"errors"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	routineCollectionName         = "routines"
	routineExerciseCollectionName = "routine_exercises"
)

// mongoRoutineRepository implements repository.RoutineRepository
type mongoRoutineRepository struct {
	routines  *mongo.Collection
	exercises *mongo.Collection
}

// NewMongoRoutineRepository creates a new Routine repository.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		routines:  db.Collection(routineCollectionName),
		exercises: db.Collection(routineExerciseCollectionName),
	}
}

// GetByID retrieves a single catalog routine.
func (r *mongoRoutineRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	var routine domain.Routine
	err := r.routines.FindOne(ctx, bson.M{"_id": id}).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// ListAll returns the full catalog sorted by _id. The sort keeps argmax
// selection over the catalog deterministic across calls.
func (r *mongoRoutineRepository) ListAll(ctx context.Context) ([]domain.Routine, error) {
	return r.find(ctx, bson.M{})
}

// List returns catalog routines matching the filter. Zero-value filter
// fields are ignored.
func (r *mongoRoutineRepository) List(ctx context.Context, filter repository.RoutineFilter) ([]domain.Routine, error) {
	query := bson.M{}
	if filter.Objective != "" {
		query["objective"] = filter.Objective
	}
	if filter.Level != "" {
		query["level"] = filter.Level
	}
	if filter.Location != "" {
		query["location"] = filter.Location
	}
	if filter.DaysPerWeek > 0 {
		query["daysPerWeek"] = filter.DaysPerWeek
	}
	return r.find(ctx, query)
}

func (r *mongoRoutineRepository) find(ctx context.Context, query bson.M) ([]domain.Routine, error) {
	cursor, err := r.routines.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	routines := []domain.Routine{}
	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

// ListExercises returns the routine's exercise placements sorted by day
// number and order-in-day, the order the schedule engine materializes them
// in.
func (r *mongoRoutineRepository) ListExercises(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineExercise, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "dayNumber", Value: 1},
		{Key: "orderInDay", Value: 1},
	})
	cursor, err := r.exercises.Find(ctx, bson.M{"routineId": routineID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	placements := []domain.RoutineExercise{}
	if err = cursor.All(ctx, &placements); err != nil {
		return nil, err
	}
	return placements, nil
}

// EnsureRoutineIndexes creates necessary indexes. Call during startup.
func EnsureRoutineIndexes(ctx context.Context, routines, routineExercises *mongo.Collection) {
	routineIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "objective", Value: 1}, {Key: "level", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = routines.Indexes().CreateMany(ctx, routineIndexes)

	placementIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "routineId", Value: 1}, {Key: "dayNumber", Value: 1}, {Key: "orderInDay", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = routineExercises.Indexes().CreateMany(ctx, placementIndexes)
}
