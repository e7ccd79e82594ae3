package database

import (
	"fmt"
	"log/slog"

	"github.com/MikeBarney88/golf-club-api/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the members, tournaments and tournament_members tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Member{}, &models.Tournament{}, &models.TournamentMember{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("Database migration completed")
	return nil
}
