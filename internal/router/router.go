// Package router sets up all HTTP routes and middleware chains for the
// Inkwell API. Read routes are public; every write route requires a
// verified bearer identity and passes through the rate limiter.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/auth"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// writeLimit allows 60 write requests per minute per client IP.
const (
	writeLimit  = 60
	writeWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned rate limiter must be stopped
// on shutdown.
func New(issuer *auth.Issuer, users *handlers.Users, articles *handlers.Articles, categories, tags *handlers.Registry) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()
	limiter := middleware.NewRateLimiter(writeLimit, writeWindow)

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Authenticate(issuer))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Account creation and login are the only open write routes.
			r.With(limiter.Middleware).Post("/signup", users.Signup)
			r.With(limiter.Middleware).Post("/login", users.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/", users.List)
				r.Get("/bookmarks", users.Bookmarks)
				r.Get("/{id}", users.Get)
			})
		})

		r.Route("/articles", func(r chi.Router) {
			// Public reads.
			r.Get("/", articles.List)
			r.Get("/search", articles.Search)
			r.Get("/{id}", articles.Get)

			// Authenticated, rate-limited writes.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(limiter.Middleware)

				r.Get("/admin/all", articles.Admin)
				r.Post("/", articles.Create)
				r.Put("/{id}", articles.Update)
				r.Delete("/{id}", articles.Delete)

				r.Post("/{id}/comments", articles.Comment)
				r.Post("/{id}/comments/{commentID}/replies", articles.Reply)

				r.Post("/{id}/like", articles.Like)
				r.Post("/{id}/dislike", articles.Dislike)

				r.Post("/{id}/bookmark", articles.Bookmark)
				r.Delete("/{id}/bookmark", articles.Unbookmark)
			})
		})

		mountRegistry(r, "/categories", categories, limiter)
		mountRegistry(r, "/tags", tags, limiter)
	})

	return r, limiter
}

// mountRegistry wires one owned-entity collection: public listing,
// authenticated create and delete.
func mountRegistry(r chi.Router, path string, h *handlers.Registry, limiter *middleware.RateLimiter) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(limiter.Middleware)
			r.Post("/", h.Create)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
