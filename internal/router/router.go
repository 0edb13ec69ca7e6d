package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskdeck/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
	SPA    *apiHandler.SPAHandler
}

func New(handlers Handlers, session func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// User routes
	r.POST("/api/user/signup", handlers.Auth.SignUp)
	r.POST("/api/user/login", handlers.Auth.Login)
	r.POST("/api/user/logout", handlers.Auth.Logout)
	r.GET("/api/user/current", handlers.Auth.Current)

	// Task routes require a live session
	r.GET("/api/task/list", session(handlers.Task.List))
	r.POST("/api/task/add", session(handlers.Task.Add))
	r.PUT("/api/task/update/{id}", session(handlers.Task.Update))
	r.DELETE("/api/task/delete/{id}", session(handlers.Task.Delete))

	if handlers.SPA != nil {
		r.NotFound = handlers.SPA.Serve
	}

	return r
}
