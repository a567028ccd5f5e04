package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/kindboard/backend/internal/setup"
	mw "github.com/itchan-dev/kindboard/shared/middleware"
	"github.com/itchan-dev/kindboard/shared/middleware/metrics"
)

const requestTimeout = 30 * time.Second

// New creates and configures a new chi router with all the routes.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies))
	r.Use(chimw.Timeout(requestTimeout))

	// setup CORS for browser clients
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", mw.RequestIdHeader},
		ExposedHeaders:   []string{mw.RequestIdHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		// Auth routes
		v1.With(authMw.OptionalAuth()).Post("/users", h.CreateUser)
		v1.Post("/auth/login", h.Login)
		v1.Post("/auth/logout", h.Logout)

		// Public read routes
		v1.Get("/boards", h.GetBoards)
		v1.Get("/boards/{boardId}", h.GetBoard)
		v1.Get("/kinds", h.GetKindBoards)
		v1.Get("/kinds/{kindId}", h.GetKindBoard)
		v1.Get("/kinds/name/{kindName}", h.GetKindBoardByName)
		v1.Get("/kinds/name/{kindName}/boards", h.GetKindBoardBoards)

		// Logged-in user routes
		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth())

			loggedIn.Get("/users/me", h.Me)
			loggedIn.Get("/users/{username}", h.GetUser)

			loggedIn.Post("/boards", h.CreateBoard)
			loggedIn.Put("/boards/{boardId}", h.UpdateBoard)
			loggedIn.Patch("/boards/{boardId}", h.UpdateBoard)
			loggedIn.Delete("/boards/{boardId}", h.DeleteBoard)
		})

		// Admin routes
		v1.Group(func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())

			admin.Post("/kinds", h.CreateKindBoard)
		})
	})

	return r
}
