package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/vitaboard/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Activity *apiHandler.ActivityHandler
	Wellness *apiHandler.WellnessHandler
	Status   *apiHandler.StatusHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Status.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Activity collection
	r.GET("/api/v1/activities", authMiddleware(handlers.Activity.List))
	r.POST("/api/v1/activities", authMiddleware(handlers.Activity.Create))
	r.DELETE("/api/v1/activities", authMiddleware(handlers.Activity.ClearAll))
	r.PUT("/api/v1/activities/{id}", authMiddleware(handlers.Activity.Update))
	r.POST("/api/v1/activities/{id}/toggle", authMiddleware(handlers.Activity.Toggle))
	r.DELETE("/api/v1/activities/{id}", authMiddleware(handlers.Activity.Delete))
	r.DELETE("/api/v1/routines/{routineId}", authMiddleware(handlers.Activity.DeleteRoutine))

	// Derived activity views
	r.GET("/api/v1/activities/daily", authMiddleware(handlers.Activity.Daily))
	r.GET("/api/v1/activities/goals", authMiddleware(handlers.Activity.Goals))
	r.GET("/api/v1/activities/priority", authMiddleware(handlers.Activity.Priority))
	r.GET("/api/v1/activities/by-date", authMiddleware(handlers.Activity.ByDate))
	r.GET("/api/v1/activities/completion", authMiddleware(handlers.Activity.Completion))
	r.GET("/api/v1/activities/productivity", authMiddleware(handlers.Activity.Productivity))

	// Portability
	r.GET("/api/v1/activities/export", authMiddleware(handlers.Activity.Export))
	r.POST("/api/v1/activities/import", authMiddleware(handlers.Activity.Import))

	// Wellness routes
	r.GET("/api/v1/wellness/profile", authMiddleware(handlers.Wellness.GetProfile))
	r.PUT("/api/v1/wellness/profile", authMiddleware(handlers.Wellness.UpdateProfile))
	r.GET("/api/v1/wellness/metrics", authMiddleware(handlers.Wellness.Metrics))
	r.PUT("/api/v1/wellness/metrics/{id}", authMiddleware(handlers.Wellness.SetMetric))
	r.POST("/api/v1/wellness/metrics/{id}/increment", authMiddleware(handlers.Wellness.IncrementMetric))
	r.POST("/api/v1/wellness/metrics/{id}/decrement", authMiddleware(handlers.Wellness.DecrementMetric))
	r.GET("/api/v1/wellness/goals", authMiddleware(handlers.Wellness.Goals))
	r.GET("/api/v1/wellness/score", authMiddleware(handlers.Wellness.Score))
	r.GET("/api/v1/wellness/recommendations", authMiddleware(handlers.Wellness.Recommendations))

	return r
}
