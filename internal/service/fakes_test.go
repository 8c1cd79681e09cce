package service

import (
	"context"
	"errors"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests.

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.Profile
	setErr   error
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[primitive.ObjectID]*domain.Profile)}
	for _, profile := range profiles {
		repo.profiles[profile.UserID] = profile
	}
	return repo
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	copied := *profile
	r.profiles[profile.UserID] = &copied
	return nil
}

func (r *fakeProfileRepo) SetAssignedRoutine(_ context.Context, userID, routineID primitive.ObjectID) error {
	if r.setErr != nil {
		return r.setErr
	}
	profile, ok := r.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	id := routineID
	profile.AssignedRoutineID = &id
	return nil
}

type fakeRoutineRepo struct {
	routines   []domain.Routine
	placements map[primitive.ObjectID][]domain.RoutineExercise
}

func newFakeRoutineRepo(routines ...domain.Routine) *fakeRoutineRepo {
	return &fakeRoutineRepo{
		routines:   routines,
		placements: make(map[primitive.ObjectID][]domain.RoutineExercise),
	}
}

func (r *fakeRoutineRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	for i := range r.routines {
		if r.routines[i].ID == id {
			copied := r.routines[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRoutineRepo) ListAll(_ context.Context) ([]domain.Routine, error) {
	return append([]domain.Routine(nil), r.routines...), nil
}

func (r *fakeRoutineRepo) List(_ context.Context, filter repository.RoutineFilter) ([]domain.Routine, error) {
	var out []domain.Routine
	for _, routine := range r.routines {
		if filter.Objective != "" && routine.Objective != filter.Objective {
			continue
		}
		if filter.Level != "" && routine.Level != filter.Level {
			continue
		}
		if filter.DaysPerWeek != 0 && routine.DaysPerWeek != filter.DaysPerWeek {
			continue
		}
		out = append(out, routine)
	}
	return out, nil
}

func (r *fakeRoutineRepo) ListExercises(_ context.Context, routineID primitive.ObjectID) ([]domain.RoutineExercise, error) {
	return append([]domain.RoutineExercise(nil), r.placements[routineID]...), nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo(exercises ...domain.Exercise) *fakeExerciseRepo {
	repo := &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
	for _, exercise := range exercises {
		repo.exercises[exercise.ID] = exercise
	}
	return repo
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &exercise, nil
}

func (r *fakeExerciseRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Exercise, error) {
	out := make(map[primitive.ObjectID]domain.Exercise, len(ids))
	for _, id := range ids {
		if exercise, ok := r.exercises[id]; ok {
			out[id] = exercise
		}
	}
	return out, nil
}

type fakeWorkoutRepo struct {
	workouts  []domain.Workout
	createErr error
	// failCreateAt makes the Nth Create call (zero-based) fail once;
	// negative disables it.
	failCreateAt int
	createCalls  int
}

func newFakeWorkoutRepo(workouts ...domain.Workout) *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: workouts, failCreateAt: -1}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	call := r.createCalls
	r.createCalls++
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	if call == r.failCreateAt {
		return primitive.NilObjectID, errors.New("insert failed")
	}
	workout.ID = primitive.NewObjectID()
	if workout.Type == "" {
		workout.Type = domain.WorkoutManual
	}
	r.workouts = append(r.workouts, *workout)
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			copied := r.workouts[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) ListByDateRange(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, workout := range r.workouts {
		if workout.UserID != userID {
			continue
		}
		if workout.ScheduledDate.Before(from) || !workout.ScheduledDate.Before(to) {
			continue
		}
		out = append(out, workout)
	}
	return out, nil
}

func (r *fakeWorkoutRepo) ListByUser(_ context.Context, userID primitive.ObjectID, filter repository.WorkoutFilter) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, workout := range r.workouts {
		if workout.UserID != userID {
			continue
		}
		if !filter.IncludeCompleted && workout.Completed {
			continue
		}
		if filter.Type != "" && workout.Type != filter.Type {
			continue
		}
		out = append(out, workout)
	}
	return out, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	for i := range r.workouts {
		if r.workouts[i].ID == workout.ID {
			r.workouts[i] = *workout
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWorkoutRepo) DeleteFutureAutomatic(_ context.Context, userID primitive.ObjectID, from time.Time) (int64, error) {
	kept := r.workouts[:0]
	var deleted int64
	for _, workout := range r.workouts {
		purge := workout.UserID == userID &&
			workout.Type == domain.WorkoutAutomatic &&
			!workout.Completed &&
			!workout.ScheduledDate.Before(from)
		if purge {
			deleted++
			continue
		}
		kept = append(kept, workout)
	}
	r.workouts = kept
	return deleted, nil
}

type fakeProgressRepo struct {
	records   []domain.ProgressRecord
	createErr error
}

func newFakeProgressRepo(records ...domain.ProgressRecord) *fakeProgressRepo {
	return &fakeProgressRepo{records: records}
}

func (r *fakeProgressRepo) Create(_ context.Context, record *domain.ProgressRecord) (primitive.ObjectID, error) {
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	record.ID = primitive.NewObjectID()
	r.records = append(r.records, *record)
	return record.ID, nil
}

func (r *fakeProgressRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgressRecord, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			copied := r.records[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeProgressRepo) List(_ context.Context, userID primitive.ObjectID, filter repository.ProgressFilter) ([]domain.ProgressRecord, error) {
	var out []domain.ProgressRecord
	for _, record := range r.records {
		if record.UserID != userID {
			continue
		}
		if !filter.From.IsZero() && record.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !record.Date.Before(filter.To) {
			continue
		}
		out = append(out, record)
		if filter.Limit > 0 && int64(len(out)) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) Update(_ context.Context, record *domain.ProgressRecord) error {
	for i := range r.records {
		if r.records[i].ID == record.ID {
			r.records[i] = *record
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeFileStorage struct {
	uploadErr   error
	downloadErr error
	lastKey     string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.lastKey = objectKey
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if s.downloadErr != nil {
		return "", s.downloadErr
	}
	return "https://storage.test/download/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, _ string) error {
	return nil
}

// objectIDWithByte builds a deterministic id, so catalog order in tests is
// explicit.
func objectIDWithByte(b byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = b
	return id
}
