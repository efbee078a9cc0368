package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/plannery/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Profile  *apiHandler.ProfileHandler
	Task     *apiHandler.TaskHandler
	Planner  *apiHandler.PlannerHandler
	Calendar *apiHandler.CalendarHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.POST("/api/v1/tasks/estimate", authMiddleware(handlers.Task.EstimateDuration))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.POST("/api/v1/tasks/{id}/schedule", authMiddleware(handlers.Task.ScheduleTask))
	r.DELETE("/api/v1/tasks/{id}/schedule", authMiddleware(handlers.Task.UnscheduleTask))
	r.GET("/api/v1/tasks/{id}/history", authMiddleware(handlers.Task.GetTaskHistory))

	r.GET("/api/v1/planner/day", authMiddleware(handlers.Planner.Day))
	r.GET("/api/v1/planner/overview", authMiddleware(handlers.Planner.Overview))

	r.GET("/api/v1/calendar/events", authMiddleware(handlers.Calendar.GetEvents))
	r.GET("/api/v1/calendar/connections", authMiddleware(handlers.Calendar.GetConnections))
	r.POST("/api/v1/calendar/sync", authMiddleware(handlers.Calendar.Sync))

	return r
}
