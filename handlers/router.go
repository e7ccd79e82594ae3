package handlers

import (
	"net/http"

	"github.com/MikeBarney88/golf-club-api/middleware"
	"github.com/MikeBarney88/golf-club-api/monitoring"
	"github.com/MikeBarney88/golf-club-api/utils"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

// RouterConfig holds the settings the router needs beyond the handler itself
type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	CORSMaxAge     int
}

// NewRouter assembles the middleware chain, operational endpoints and API routes
func NewRouter(h *Handler, db *gorm.DB, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(monitoring.TraceIDMiddleware)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(monitoring.HTTPMetricsMiddleware)
	r.Use(middleware.NewCORSMiddleware(cfg.AllowedOrigins, cfg.CORSMaxAge))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithError(w, http.StatusNotFound, "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/health", NewHealthHandler(db, cfg.ServiceName))
	r.Method(http.MethodGet, "/metrics", monitoring.Handler())

	h.SetupRoutes(r)
	return r
}
