package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestAssignRoutinePicksHighestScore(t *testing.T) {
	userID := primitive.NewObjectID()
	// Beginner training at home for 30 minutes: the home routine with a
	// matching duration must win over the gym one.
	profile := &domain.Profile{
		UserID:                 userID,
		FitnessLevel:           domain.LevelBeginner,
		SessionDurationMinutes: 30,
	}
	gymRoutine := domain.Routine{ID: objectIDWithByte(1), Name: "Fuerza total", Location: "Gimnasio", DurationMinutes: 30}
	homeRoutine := domain.Routine{ID: objectIDWithByte(2), Name: "Cuerpo en casa", Location: "En casa", DurationMinutes: 30}

	profileRepo := newFakeProfileRepo(profile)
	routineRepo := newFakeRoutineRepo(gymRoutine, homeRoutine)
	svc := NewRoutineService(profileRepo, routineRepo, zap.NewNop())

	got, err := svc.AssignRoutine(context.Background(), userID)
	if err != nil {
		t.Fatalf("AssignRoutine() error = %v", err)
	}
	if got.Routine.ID != homeRoutine.ID {
		t.Errorf("assigned routine = %s, want %s", got.Routine.Name, homeRoutine.Name)
	}
	if got.Score != 15 {
		t.Errorf("score = %v, want 15", got.Score)
	}

	stored, err := profileRepo.GetByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetByUserID() error = %v", err)
	}
	if stored.AssignedRoutineID == nil || *stored.AssignedRoutineID != homeRoutine.ID {
		t.Errorf("profile AssignedRoutineID = %v, want %s", stored.AssignedRoutineID, homeRoutine.ID.Hex())
	}
}

func TestAssignRoutineTieKeepsFirstInCatalogOrder(t *testing.T) {
	userID := primitive.NewObjectID()
	profile := &domain.Profile{
		UserID:                 userID,
		FitnessLevel:           domain.LevelIntermediate,
		SessionDurationMinutes: 45,
	}
	// Identical scoring attributes, only ids differ. The catalog is listed
	// sorted by id, so the lower id must win every run.
	first := domain.Routine{ID: objectIDWithByte(1), Name: "Rutina A", Location: "En casa", DurationMinutes: 45}
	second := domain.Routine{ID: objectIDWithByte(2), Name: "Rutina B", Location: "En casa", DurationMinutes: 45}

	svc := NewRoutineService(newFakeProfileRepo(profile), newFakeRoutineRepo(first, second), zap.NewNop())

	for i := 0; i < 5; i++ {
		got, err := svc.AssignRoutine(context.Background(), userID)
		if err != nil {
			t.Fatalf("AssignRoutine() error = %v", err)
		}
		if got.Routine.ID != first.ID {
			t.Fatalf("run %d assigned %s, want first catalog entry %s", i, got.Routine.Name, first.Name)
		}
	}
}

func TestAssignRoutineErrors(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("missing profile", func(t *testing.T) {
		svc := NewRoutineService(newFakeProfileRepo(), newFakeRoutineRepo(), zap.NewNop())
		_, err := svc.AssignRoutine(context.Background(), userID)
		if !errors.Is(err, ErrProfileNotFound) {
			t.Errorf("error = %v, want ErrProfileNotFound", err)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		profile := &domain.Profile{UserID: userID, FitnessLevel: domain.LevelBeginner}
		svc := NewRoutineService(newFakeProfileRepo(profile), newFakeRoutineRepo(), zap.NewNop())
		_, err := svc.AssignRoutine(context.Background(), userID)
		if !errors.Is(err, ErrEmptyCatalog) {
			t.Errorf("error = %v, want ErrEmptyCatalog", err)
		}
	})

	t.Run("persist failure surfaces", func(t *testing.T) {
		profile := &domain.Profile{UserID: userID, FitnessLevel: domain.LevelBeginner}
		profileRepo := newFakeProfileRepo(profile)
		profileRepo.setErr = errors.New("write refused")
		routine := domain.Routine{ID: objectIDWithByte(1), DurationMinutes: 30}
		svc := NewRoutineService(profileRepo, newFakeRoutineRepo(routine), zap.NewNop())
		if _, err := svc.AssignRoutine(context.Background(), userID); err == nil {
			t.Error("expected error when persisting the assignment fails")
		}
	})
}

func TestGetAssignedRoutine(t *testing.T) {
	userID := primitive.NewObjectID()
	routine := domain.Routine{ID: objectIDWithByte(3), Name: "Plan asignado", DurationMinutes: 40}

	t.Run("returns routine and profile", func(t *testing.T) {
		routineID := routine.ID
		profile := &domain.Profile{UserID: userID, AssignedRoutineID: &routineID}
		svc := NewRoutineService(newFakeProfileRepo(profile), newFakeRoutineRepo(routine), zap.NewNop())

		got, err := svc.GetAssignedRoutine(context.Background(), userID)
		if err != nil {
			t.Fatalf("GetAssignedRoutine() error = %v", err)
		}
		if got.Routine.ID != routine.ID {
			t.Errorf("routine id = %s, want %s", got.Routine.ID.Hex(), routine.ID.Hex())
		}
		if got.Profile.UserID != userID {
			t.Errorf("profile user id = %s, want %s", got.Profile.UserID.Hex(), userID.Hex())
		}
	})

	t.Run("no assignment yet", func(t *testing.T) {
		profile := &domain.Profile{UserID: userID}
		svc := NewRoutineService(newFakeProfileRepo(profile), newFakeRoutineRepo(routine), zap.NewNop())
		_, err := svc.GetAssignedRoutine(context.Background(), userID)
		if !errors.Is(err, ErrNoRoutineAssigned) {
			t.Errorf("error = %v, want ErrNoRoutineAssigned", err)
		}
	})

	t.Run("dangling assignment", func(t *testing.T) {
		orphanID := objectIDWithByte(9)
		profile := &domain.Profile{UserID: userID, AssignedRoutineID: &orphanID}
		svc := NewRoutineService(newFakeProfileRepo(profile), newFakeRoutineRepo(routine), zap.NewNop())
		_, err := svc.GetAssignedRoutine(context.Background(), userID)
		if !errors.Is(err, ErrRoutineNotFound) {
			t.Errorf("error = %v, want ErrRoutineNotFound", err)
		}
	})
}
