package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/domain"
	"github.com/Ale64476/senda-flow-sub000/internal/repository"
	"github.com/Ale64476/senda-flow-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stub services recording calls; responses come from the fields below.

type stubWorkoutService struct {
	workouts    []domain.Workout
	stats       *service.WorkoutStats
	err         error
	gotFrom     time.Time
	gotTo       time.Time
	gotComplete bool
}

func (s *stubWorkoutService) GetWorkoutsForDate(_ context.Context, _ primitive.ObjectID, date time.Time) ([]domain.Workout, error) {
	s.gotFrom = date
	return s.workouts, s.err
}

func (s *stubWorkoutService) GetWorkoutsInRange(_ context.Context, _ primitive.ObjectID, from, to time.Time) ([]domain.Workout, error) {
	s.gotFrom, s.gotTo = from, to
	return s.workouts, s.err
}

func (s *stubWorkoutService) GetAllWorkouts(_ context.Context, _ primitive.ObjectID, _ repository.WorkoutFilter) ([]domain.Workout, *service.WorkoutStats, error) {
	return s.workouts, s.stats, s.err
}

func (s *stubWorkoutService) CreateManualWorkout(_ context.Context, userID primitive.ObjectID, input service.ManualWorkoutInput) (*domain.Workout, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Workout{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Name:          input.Name,
		ScheduledDate: input.ScheduledDate,
		Type:          domain.WorkoutManual,
	}, nil
}

func (s *stubWorkoutService) CompleteWorkout(_ context.Context, userID, workoutID primitive.ObjectID, completed bool) (*domain.Workout, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.gotComplete = completed
	return &domain.Workout{ID: workoutID, UserID: userID, Completed: completed, Type: domain.WorkoutAutomatic}, nil
}

type stubScheduleService struct {
	result *service.RedistributionResult
	err    error
}

func (s *stubScheduleService) RedistributeWorkouts(_ context.Context, _ primitive.ObjectID) (*service.RedistributionResult, error) {
	return s.result, s.err
}

// newWorkoutTestRouter mounts the handler behind a middleware that injects
// the authenticated user directly, bypassing JWT parsing.
func newWorkoutTestRouter(handler *WorkoutHandler, userID primitive.ObjectID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID.Hex())
		c.Next()
	})
	router.POST("/workouts/redistribute", handler.Redistribute)
	router.GET("/workouts/today", handler.GetToday)
	router.GET("/workouts", handler.GetByDate)
	router.POST("/workouts", handler.Create)
	router.PATCH("/workouts/:id/complete", handler.Complete)
	return router
}

func TestWorkoutHandlerGetToday(t *testing.T) {
	userID := primitive.NewObjectID()
	clock := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	workoutSvc := &stubWorkoutService{workouts: []domain.Workout{
		{ID: primitive.NewObjectID(), UserID: userID, Name: "Pecho", ScheduledDate: clock},
	}}
	handler := NewWorkoutHandler(workoutSvc, &stubScheduleService{}, func() time.Time { return clock })
	router := newWorkoutTestRouter(handler, userID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workouts/today", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Date != "2025-03-05" || body.Count != 1 {
		t.Errorf("body = %+v, want today's date and one workout", body)
	}
}

func TestWorkoutHandlerGetByDate(t *testing.T) {
	userID := primitive.NewObjectID()
	workoutSvc := &stubWorkoutService{}
	handler := NewWorkoutHandler(workoutSvc, &stubScheduleService{}, nil)
	router := newWorkoutTestRouter(handler, userID)

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{name: "single date", query: "?date=2025-03-05", wantStatus: http.StatusOK},
		{name: "range", query: "?start_date=2025-03-03&end_date=2025-03-07", wantStatus: http.StatusOK},
		{name: "malformed date", query: "?date=05/03/2025", wantStatus: http.StatusBadRequest},
		{name: "range missing end", query: "?start_date=2025-03-03", wantStatus: http.StatusBadRequest},
		{name: "no params", query: "", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workouts"+tt.query, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestWorkoutHandlerCompleteDefaultsToTrue(t *testing.T) {
	userID := primitive.NewObjectID()
	workoutSvc := &stubWorkoutService{}
	handler := NewWorkoutHandler(workoutSvc, &stubScheduleService{}, nil)
	router := newWorkoutTestRouter(handler, userID)

	workoutID := primitive.NewObjectID()

	t.Run("empty body completes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/workouts/"+workoutID.Hex()+"/complete", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !workoutSvc.gotComplete {
			t.Error("expected completed=true with empty body")
		}
	})

	t.Run("explicit false uncompletes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/workouts/"+workoutID.Hex()+"/complete", strings.NewReader(`{"completed":false}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if workoutSvc.gotComplete {
			t.Error("expected completed=false")
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/workouts/not-an-id/complete", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestWorkoutHandlerCreateValidation(t *testing.T) {
	userID := primitive.NewObjectID()
	handler := NewWorkoutHandler(&stubWorkoutService{}, &stubScheduleService{}, nil)
	router := newWorkoutTestRouter(handler, userID)

	tests := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{
			name:       "valid",
			payload:    `{"name":"Cardio","scheduledDate":"2025-03-10","location":"outdoor"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			payload:    `{"scheduledDate":"2025-03-10"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad date format",
			payload:    `{"name":"Cardio","scheduledDate":"10-03-2025"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown location",
			payload:    `{"name":"Cardio","scheduledDate":"2025-03-10","location":"moon"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestWorkoutHandlerRedistributeErrorMapping(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "no training days", err: service.ErrNoTrainingDays, wantStatus: http.StatusUnprocessableEntity},
		{name: "no assigned routine", err: service.ErrScheduleNotAssigned, wantStatus: http.StatusUnprocessableEntity},
		{name: "missing profile", err: service.ErrProfileNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewWorkoutHandler(&stubWorkoutService{}, &stubScheduleService{err: tt.err}, nil)
			router := newWorkoutTestRouter(handler, userID)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/workouts/redistribute", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestWorkoutHandlerRedistributeSuccess(t *testing.T) {
	userID := primitive.NewObjectID()
	scheduleSvc := &stubScheduleService{result: &service.RedistributionResult{
		WorkoutsCreated: 3,
		TrainingDays:    []string{"monday", "wednesday", "friday"},
	}}
	handler := NewWorkoutHandler(&stubWorkoutService{}, scheduleSvc, nil)
	router := newWorkoutTestRouter(handler, userID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/workouts/redistribute", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body service.RedistributionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.WorkoutsCreated != 3 || len(body.TrainingDays) != 3 {
		t.Errorf("body = %+v, want the service result echoed", body)
	}
}
