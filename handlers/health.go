package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeBarney88/golf-club-api/utils"
	"gorm.io/gorm"
)

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Timestamp string   `json:"timestamp"`
	Database  DBHealth `json:"database"`
}

// DBHealth reports database reachability
type DBHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewHealthHandler returns a handler that pings the database and reports 503 when it is unreachable
func NewHealthHandler(db *gorm.DB, serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := HealthStatus{
			Status:    "healthy",
			Service:   serviceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  DBHealth{Status: "healthy"},
		}

		if err := pingDatabase(r.Context(), db); err != nil {
			slog.Error("Health check failed", "error", err)
			status.Status = "unhealthy"
			status.Database = DBHealth{Status: "unhealthy", Error: err.Error()}
			utils.RespondWithJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, status)
	}
}

func pingDatabase(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
