package api

import (
	"net/http"
	"time"

	"github.com/Ale64476/senda-flow-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes on the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	routineService service.RoutineService,
	scheduleService service.ScheduleService,
	workoutService service.WorkoutService,
	progressService service.ProgressService,
	catalogService service.CatalogService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	routineHandler := NewRoutineHandler(routineService)
	workoutHandler := NewWorkoutHandler(workoutService, scheduleService, time.Now)
	progressHandler := NewProgressHandler(progressService)
	catalogHandler := NewCatalogHandler(catalogService)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Public catalog, no token required.
	catalogGroup := apiV1.Group("/catalog")
	{
		catalogGroup.GET("/routines", catalogHandler.ListRoutines)
		catalogGroup.GET("/plans", catalogHandler.ListPlans)
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.Get)
			profileGroup.PUT("", profileHandler.Save)
		}

		routineGroup := protected.Group("/routines")
		{
			routineGroup.POST("/assign", routineHandler.AssignRoutine)
			routineGroup.GET("/assigned", routineHandler.GetAssignedRoutine)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/redistribute", workoutHandler.Redistribute)
			workoutGroup.GET("/today", workoutHandler.GetToday)
			workoutGroup.GET("", workoutHandler.GetByDate)
			workoutGroup.GET("/all", workoutHandler.GetAll)
			workoutGroup.POST("", workoutHandler.Create)
			workoutGroup.PATCH("/:id/complete", workoutHandler.Complete)
		}

		progressGroup := protected.Group("/progress")
		{
			progressGroup.POST("", progressHandler.Record)
			progressGroup.GET("", progressHandler.List)
			progressGroup.GET("/stats", progressHandler.Stats)
			progressGroup.POST("/photo-url", progressHandler.RequestPhotoURL)
			progressGroup.POST("/:id/photo", progressHandler.AttachPhoto)
			progressGroup.GET("/:id/photo-url", progressHandler.GetPhotoURL)
		}
	}
}
