package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VernoB/TodoTask/internal/api"
	apimiddleware "github.com/VernoB/TodoTask/internal/api/middleware"
	"github.com/VernoB/TodoTask/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.CORS)
	r.Use(apimiddleware.NewTraceMiddleware(app.logger))
	r.Use(apimiddleware.RequestLogger(app.logger))
	r.Use(apimiddleware.Metrics)
	r.Use(app.rateLimiter.Limit)

	// Unknown routes and wrong methods answer with the JSON error envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found!")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(
		app.taskStore,
		app.imageStore,
		app.config.Upload.MaxSizeMiB<<20,
		app.logger,
	)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	// Identity endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/users", authHandler.ListUsers)
		r.Get("/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/{id}", authHandler.GetUser)
		})
	})

	// Task endpoints, all owner-scoped
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/task/add", taskHandler.Create)
		r.Get("/task/{id}", taskHandler.Get)
		r.Put("/task/{taskId}", taskHandler.Update)
		r.Delete("/task/{taskId}", taskHandler.Delete)

		r.Get("/tasks/completed", taskHandler.ListCompleted)
		r.Put("/tasks/completed", taskHandler.MarkAllCompleted)
	})

	// Uploaded images are served straight from the upload directory.
	r.Handle("/images/*", http.StripPrefix("/images/",
		http.FileServer(http.Dir(app.imageStore.Dir()))))

	// Operational endpoints
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
