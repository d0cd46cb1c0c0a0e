// Package router wires HTTP handlers, middleware and CORS into a single
// http.Handler.
package router

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/dtroode/defo-server/internal/api/http/handler"
	"github.com/dtroode/defo-server/internal/api/http/middleware"
	"github.com/dtroode/defo-server/internal/logger"
	"github.com/dtroode/defo-server/internal/model"
)

// AuthService serves the /auth routes and validates bearer tokens.
type AuthService interface {
	handler.AuthService
	middleware.Authenticator
}

// Services groups the application services the routes dispatch to.
type Services struct {
	Auth       AuthService
	Project    handler.ProjectService
	Permission handler.PermissionService
	Dataset    handler.DatasetService
	Analysis   handler.AnalysisService
	DB         handler.Pinger
}

// Options configures transport-level behavior of the router.
type Options struct {
	CORSOrigins []string
	MaxFileSize int64
}

// Router represents the REST API router.
type Router struct {
	services       Services
	options        Options
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(services Services, options Options, contextManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		options:        options,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the route table and returns the root handler.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()
	authenticate := middleware.NewAuthenticate(r.services.Auth, r.contextManager, r.logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(h)
	}

	r.registerHealthRoutes(mux)
	r.registerAuthRoutes(mux, protected)
	r.registerProjectRoutes(mux, protected)
	r.registerDatasetRoutes(mux, protected)

	c := cors.New(cors.Options{
		AllowedOrigins:   r.options.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.Chain(mux,
		middleware.NewRecovery(r.logger).Handle,
		middleware.NewLogging(r.logger).Handle,
		c.Handler,
	)
}

func (r *Router) registerHealthRoutes(mux *http.ServeMux) {
	h := handler.NewHealth(r.services.DB, r.logger)
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Check)
}

func (r *Router) registerAuthRoutes(mux *http.ServeMux, protected func(http.HandlerFunc) http.Handler) {
	h := handler.NewAuth(r.services.Auth, r.contextManager, r.logger)
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/refresh", h.Refresh)
	mux.Handle("POST /auth/logout", protected(h.Logout))
	mux.Handle("GET /auth/me", protected(h.Me))
}

func (r *Router) registerProjectRoutes(mux *http.ServeMux, protected func(http.HandlerFunc) http.Handler) {
	projects := handler.NewProject(r.services.Project, r.contextManager, r.logger)
	permissions := handler.NewPermission(r.services.Permission, r.contextManager, r.logger)

	for _, prefix := range []string{"/projects", "/projects/{$}"} {
		mux.Handle("POST "+prefix, protected(projects.Create))
		mux.Handle("GET "+prefix, protected(projects.List))
	}
	mux.Handle("GET /projects/{id}", protected(projects.Get))
	mux.Handle("PUT /projects/{id}", protected(projects.Update))
	mux.Handle("DELETE /projects/{id}", protected(projects.Delete))

	mux.Handle("GET /projects/{id}/permissions", protected(permissions.List))
	mux.Handle("PUT /projects/{id}/permissions", protected(permissions.Share))
	mux.Handle("DELETE /projects/{id}/permissions/{uid}", protected(permissions.Revoke))
}

func (r *Router) registerDatasetRoutes(mux *http.ServeMux, protected func(http.HandlerFunc) http.Handler) {
	h := handler.NewDataset(r.services.Dataset, r.services.Analysis, r.contextManager, r.options.MaxFileSize, r.logger)

	mux.Handle("POST /projects/{id}/datasets/upload", protected(h.Upload))
	for _, prefix := range []string{"/projects/{id}/datasets", "/projects/{id}/datasets/{$}"} {
		mux.Handle("GET "+prefix, protected(h.List))
	}
	mux.Handle("GET /datasets/{id}/preview", protected(h.Preview))
	mux.Handle("GET /datasets/{id}/analysis", protected(h.Analysis))
	mux.Handle("DELETE /datasets/{id}", protected(h.Delete))
}
