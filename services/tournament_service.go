package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeBarney88/golf-club-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TournamentService handles tournament operations, including the tournament-owned participant relation
type TournamentService struct {
	db *gorm.DB
}

// NewTournamentService creates a new tournament service
func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{db: db}
}

// CreateTournament validates and persists a new tournament
func (s *TournamentService) CreateTournament(ctx context.Context, req *models.TournamentRequest) (*models.TournamentResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		recordOutcome("tournament_created", ErrValidation)
		return nil, newValidationError(fields...)
	}

	var tournament models.Tournament
	tournament.ApplyRequest(req)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tournament).Error; err != nil {
			return fmt.Errorf("failed to create tournament: %w", err)
		}
		return nil
	})
	recordOutcome("tournament_created", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Tournament created", "tournamentId", tournament.ID)
	resp := tournament.ToResponse()
	return &resp, nil
}

// GetAllTournaments returns every tournament ordered by id
func (s *TournamentService) GetAllTournaments(ctx context.Context) ([]models.TournamentResponse, error) {
	return s.findTournaments(ctx, "failed to list tournaments", func(db *gorm.DB) *gorm.DB { return db })
}

// GetTournamentByID retrieves a tournament, or a NotFoundError when the id is unknown
func (s *TournamentService) GetTournamentByID(ctx context.Context, id int64) (*models.TournamentResponse, error) {
	tournament, err := findTournament(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := tournament.ToResponse()
	return &resp, nil
}

// UpdateTournament replaces every mutable field of an existing tournament. Participants are untouched.
func (s *TournamentService) UpdateTournament(ctx context.Context, id int64, req *models.TournamentRequest) (*models.TournamentResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		recordOutcome("tournament_updated", ErrValidation)
		return nil, newValidationError(fields...)
	}

	var tournament *models.Tournament
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		tournament, err = findTournament(tx, id)
		if err != nil {
			return err
		}
		tournament.ApplyRequest(req)
		if err := tx.Save(tournament).Error; err != nil {
			return fmt.Errorf("failed to update tournament: %w", err)
		}
		return nil
	})
	recordOutcome("tournament_updated", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Tournament updated", "tournamentId", id)
	resp := tournament.ToResponse()
	return &resp, nil
}

// DeleteTournament removes the tournament and its participation rows. Members are kept.
func (s *TournamentService) DeleteTournament(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tournament, err := findTournament(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("tournament_id = ?", id).Delete(&models.TournamentMember{}).Error; err != nil {
			return fmt.Errorf("failed to remove tournament participants: %w", err)
		}
		if err := tx.Delete(tournament).Error; err != nil {
			return fmt.Errorf("failed to delete tournament: %w", err)
		}
		return nil
	})
	recordOutcome("tournament_deleted", err)
	if err != nil {
		return err
	}

	slog.Info("Tournament deleted", "tournamentId", id)
	return nil
}

// AddMemberToTournament registers the member as a participant. Adding an existing participant changes nothing.
func (s *TournamentService) AddMemberToTournament(ctx context.Context, tournamentID, memberID int64) (*models.TournamentWithMembersResponse, error) {
	var resp *models.TournamentWithMembersResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tournament, roster, err := loadRoster(tx, tournamentID)
		if err != nil {
			return err
		}
		if err := requireMember(tx, memberID); err != nil {
			return err
		}

		if roster.Add(memberID) {
			row := models.TournamentMember{TournamentID: tournamentID, MemberID: memberID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to add member to tournament: %w", err)
			}
		}

		resp, err = withMembers(tx, tournament, roster)
		return err
	})
	recordOutcome("tournament_member_added", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Member added to tournament", "tournamentId", tournamentID, "memberId", memberID)
	return resp, nil
}

// RemoveMemberFromTournament drops the member from the participants. Removing a non-participant is a no-op.
func (s *TournamentService) RemoveMemberFromTournament(ctx context.Context, tournamentID, memberID int64) (*models.TournamentWithMembersResponse, error) {
	var resp *models.TournamentWithMembersResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tournament, roster, err := loadRoster(tx, tournamentID)
		if err != nil {
			return err
		}
		if err := requireMember(tx, memberID); err != nil {
			return err
		}

		if roster.Remove(memberID) {
			err := tx.Where("tournament_id = ? AND member_id = ?", tournamentID, memberID).
				Delete(&models.TournamentMember{}).Error
			if err != nil {
				return fmt.Errorf("failed to remove member from tournament: %w", err)
			}
		}

		resp, err = withMembers(tx, tournament, roster)
		return err
	})
	recordOutcome("tournament_member_removed", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Member removed from tournament", "tournamentId", tournamentID, "memberId", memberID)
	return resp, nil
}

// GetTournamentWithMembers loads the tournament together with its full participant list
func (s *TournamentService) GetTournamentWithMembers(ctx context.Context, tournamentID int64) (*models.TournamentWithMembersResponse, error) {
	db := s.db.WithContext(ctx)
	tournament, roster, err := loadRoster(db, tournamentID)
	if err != nil {
		return nil, err
	}
	return withMembers(db, tournament, roster)
}

// SearchByStartDate returns tournaments starting on the given date
func (s *TournamentService) SearchByStartDate(ctx context.Context, startDate models.Date) ([]models.TournamentResponse, error) {
	return s.findTournaments(ctx, "failed to search tournaments by start date", func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date = ?", startDate)
	})
}

// SearchByLocation returns tournaments whose location contains the term, ignoring case
func (s *TournamentService) SearchByLocation(ctx context.Context, location string) ([]models.TournamentResponse, error) {
	return s.findTournaments(ctx, "failed to search tournaments by location", containsIgnoreCase("location", location))
}

// SearchByDateRange returns tournaments whose start date lies within [start, end], both ends inclusive
func (s *TournamentService) SearchByDateRange(ctx context.Context, start, end models.Date) ([]models.TournamentResponse, error) {
	return s.findTournaments(ctx, "failed to search tournaments by date range", func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date >= ? AND start_date <= ?", start, end)
	})
}

// SearchStartedAfter returns tournaments starting strictly after the given date
func (s *TournamentService) SearchStartedAfter(ctx context.Context, date models.Date) ([]models.TournamentResponse, error) {
	return s.findTournaments(ctx, "failed to search tournaments after date", func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date > ?", date)
	})
}

// SearchStartedBefore returns tournaments starting strictly before the given date
func (s *TournamentService) SearchStartedBefore(ctx context.Context, date models.Date) ([]models.TournamentResponse, error) {
	return s.findTournaments(ctx, "failed to search tournaments before date", func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date < ?", date)
	})
}

func (s *TournamentService) findTournaments(ctx context.Context, failure string, scope func(*gorm.DB) *gorm.DB) ([]models.TournamentResponse, error) {
	var tournaments []models.Tournament
	if err := s.db.WithContext(ctx).Scopes(scope).Order("tournaments.id").Find(&tournaments).Error; err != nil {
		slog.Error(failure, "error", err)
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	return toTournamentResponses(tournaments), nil
}

func findTournament(tx *gorm.DB, id int64) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := tx.First(&tournament, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tournamentNotFound(id)
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return &tournament, nil
}

func requireMember(tx *gorm.DB, id int64) error {
	exists, err := rowExists(tx, &models.Member{}, id)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if !exists {
		return memberNotFound(id)
	}
	return nil
}

// loadRoster reads the tournament and its participation rows
func loadRoster(tx *gorm.DB, tournamentID int64) (*models.Tournament, *models.Roster, error) {
	tournament, err := findTournament(tx, tournamentID)
	if err != nil {
		return nil, nil, err
	}

	var rows []models.TournamentMember
	if err := tx.Where("tournament_id = ?", tournamentID).Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load tournament participants: %w", err)
	}
	return tournament, models.RosterFromParticipations(tournamentID, rows), nil
}

// withMembers resolves the roster's member ids into full member rows
func withMembers(tx *gorm.DB, tournament *models.Tournament, roster *models.Roster) (*models.TournamentWithMembersResponse, error) {
	var members []models.Member
	if roster.Len() > 0 {
		if err := tx.Where("id IN ?", roster.MemberIDs()).Order("id").Find(&members).Error; err != nil {
			return nil, fmt.Errorf("failed to load tournament participants: %w", err)
		}
	}
	return models.NewTournamentWithMembersResponse(tournament, members), nil
}

func toTournamentResponses(tournaments []models.Tournament) []models.TournamentResponse {
	out := make([]models.TournamentResponse, 0, len(tournaments))
	for i := range tournaments {
		out = append(out, tournaments[i].ToResponse())
	}
	return out
}
