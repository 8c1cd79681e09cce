package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/api"
	"github.com/Ale64476/senda-flow-sub000/internal/config"
	"github.com/Ale64476/senda-flow-sub000/internal/repository/mongo"
	"github.com/Ale64476/senda-flow-sub000/internal/service"
	"github.com/Ale64476/senda-flow-sub000/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log.Println("Starting Senda server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("profiles"))
		mongo.EnsureRoutineIndexes(ctx, appDB.Collection("routines"), appDB.Collection("routine_exercises"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureProgressIndexes(ctx, appDB.Collection("progress_records"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo)
	routineService := service.NewRoutineService(profileRepo, routineRepo, logger)
	scheduleService := service.NewScheduleService(profileRepo, routineRepo, exerciseRepo, workoutRepo, logger, nil)
	workoutService := service.NewWorkoutService(workoutRepo, logger, nil)
	progressService := service.NewProgressService(progressRepo, fileStorage, logger, nil)
	catalogService := service.NewCatalogService(routineRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, profileService, routineService, scheduleService,
		workoutService, progressService, catalogService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
