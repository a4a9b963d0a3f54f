package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmorell/newsroom-be/internal/api/handlers"
	"github.com/jmorell/newsroom-be/internal/auth"
	"github.com/jmorell/newsroom-be/internal/config"
	"github.com/jmorell/newsroom-be/internal/services"
	"github.com/jmorell/newsroom-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, tokens *auth.TokenManager, hub *websocket.Hub, userService services.UserServiceProvider, articleService services.ArticleServiceProvider, auditService services.AuditServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Allowed origins come from configuration; defaults to a wildcard.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", auth.TokenHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService, tokens)
	articleHandler := handlers.NewArticleHandler(articleService, auditService, hub)
	auditHandler := handlers.NewAuditHandler(auditService)
	wsHandler := handlers.NewWebSocketHandler(hub, tokens)

	requireAuth := auth.RequireAuth(tokens)
	requireAdmin := auth.RequireRole("admin")

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public authentication endpoints
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Live article feed (token is checked from the query string)
		r.Get("/ws", wsHandler.Serve)

		// REST API endpoints for news articles
		r.Route("/news", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", articleHandler.GetAll)
			r.With(requireAdmin).Post("/", articleHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", articleHandler.Get)
				r.With(requireAdmin).Put("/", articleHandler.Update)
				r.With(requireAdmin).Delete("/", articleHandler.Delete)
			})
		})

		// Audit trail, admin only
		r.With(requireAuth, requireAdmin).Get("/events", auditHandler.GetRecent)
	})

	return r
}
