package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeBarney88/golf-club-api/models"
	"gorm.io/gorm"
)

// MemberService handles member-related operations
type MemberService struct {
	db *gorm.DB
}

// NewMemberService creates a new member service
func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

// CreateMember validates and persists a new member
func (s *MemberService) CreateMember(ctx context.Context, req *models.MemberRequest) (*models.MemberResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		recordOutcome("member_created", ErrValidation)
		return nil, newValidationError(fields...)
	}

	var member models.Member
	member.ApplyRequest(req)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailAvailable(tx, member.MemberEmail, 0); err != nil {
			return err
		}
		if err := tx.Create(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateEmailError(member.MemberEmail)
			}
			return fmt.Errorf("failed to create member: %w", err)
		}
		return nil
	})
	recordOutcome("member_created", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Member created", "memberId", member.ID)
	resp := member.ToResponse()
	return &resp, nil
}

// GetAllMembers returns every member ordered by id
func (s *MemberService) GetAllMembers(ctx context.Context) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to list members", func(db *gorm.DB) *gorm.DB { return db })
}

// GetMemberByID retrieves a member, or a NotFoundError when the id is unknown
func (s *MemberService) GetMemberByID(ctx context.Context, id int64) (*models.MemberResponse, error) {
	member, err := findMember(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	resp := member.ToResponse()
	return &resp, nil
}

// UpdateMember replaces every mutable field of an existing member. Tournament participation is untouched.
func (s *MemberService) UpdateMember(ctx context.Context, id int64, req *models.MemberRequest) (*models.MemberResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		recordOutcome("member_updated", ErrValidation)
		return nil, newValidationError(fields...)
	}

	var member *models.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		member, err = findMember(tx, id)
		if err != nil {
			return err
		}
		if err := ensureEmailAvailable(tx, req.MemberEmail, id); err != nil {
			return err
		}

		member.ApplyRequest(req)
		if err := tx.Save(member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return duplicateEmailError(member.MemberEmail)
			}
			return fmt.Errorf("failed to update member: %w", err)
		}
		return nil
	})
	recordOutcome("member_updated", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Member updated", "memberId", id)
	resp := member.ToResponse()
	return &resp, nil
}

// DeleteMember removes the member and its tournament participation rows
func (s *MemberService) DeleteMember(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := findMember(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.TournamentMember{}).Error; err != nil {
			return fmt.Errorf("failed to remove member from tournaments: %w", err)
		}
		if err := tx.Delete(member).Error; err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		return nil
	})
	recordOutcome("member_deleted", err)
	if err != nil {
		return err
	}

	slog.Info("Member deleted", "memberId", id)
	return nil
}

// SearchByName returns members whose name contains the term, ignoring case
func (s *MemberService) SearchByName(ctx context.Context, name string) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to search members by name", containsIgnoreCase("member_name", name))
}

// SearchByPhoneNumber returns members with exactly this phone number
func (s *MemberService) SearchByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to search members by phone number", func(db *gorm.DB) *gorm.DB {
		return db.Where("member_phone_number = ?", phoneNumber)
	})
}

// SearchByEmail returns the member registered with exactly this email, if any
func (s *MemberService) SearchByEmail(ctx context.Context, email string) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to search members by email", func(db *gorm.DB) *gorm.DB {
		return db.Where("member_email = ?", email)
	})
}

// SearchByStartDate returns members whose membership started on the given date
func (s *MemberService) SearchByStartDate(ctx context.Context, startDate models.Date) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to search members by start date", func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date = ?", startDate)
	})
}

// SearchByDateRange returns members whose start date lies within [start, end], both ends inclusive
func (s *MemberService) SearchByDateRange(ctx context.Context, start, end models.Date) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to search members by date range", func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date >= ? AND start_date <= ?", start, end)
	})
}

// SearchStartedAfter returns members whose start date is strictly after the given date
func (s *MemberService) SearchStartedAfter(ctx context.Context, date models.Date) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to search members started after date", func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date > ?", date)
	})
}

// SearchStartedBefore returns members whose start date is strictly before the given date
func (s *MemberService) SearchStartedBefore(ctx context.Context, date models.Date) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to search members started before date", func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date < ?", date)
	})
}

// SearchByTournamentID returns the participants of a tournament. An unknown tournament yields an empty list.
func (s *MemberService) SearchByTournamentID(ctx context.Context, tournamentID int64) ([]models.MemberResponse, error) {
	return s.findMembers(ctx, "failed to search members by tournament", participantsOf(tournamentID))
}

// GetMemberTournaments returns the tournaments the member participates in
func (s *MemberService) GetMemberTournaments(ctx context.Context, memberID int64) ([]models.TournamentResponse, error) {
	db := s.db.WithContext(ctx)
	exists, err := rowExists(db, &models.Member{}, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if !exists {
		return nil, memberNotFound(memberID)
	}

	var tournaments []models.Tournament
	if err := db.Scopes(tournamentsOf(memberID)).Order("tournaments.id").Find(&tournaments).Error; err != nil {
		return nil, fmt.Errorf("failed to list member tournaments: %w", err)
	}
	return toTournamentResponses(tournaments), nil
}

func (s *MemberService) findMembers(ctx context.Context, failure string, scope func(*gorm.DB) *gorm.DB) ([]models.MemberResponse, error) {
	var members []models.Member
	if err := s.db.WithContext(ctx).Scopes(scope).Order("members.id").Find(&members).Error; err != nil {
		slog.Error(failure, "error", err)
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	return toMemberResponses(members), nil
}

func findMember(tx *gorm.DB, id int64) (*models.Member, error) {
	var member models.Member
	if err := tx.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberNotFound(id)
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &member, nil
}

// ensureEmailAvailable fails with a ValidationError when another member already uses the email
func ensureEmailAvailable(tx *gorm.DB, email string, exceptID int64) error {
	query := tx.Model(&models.Member{}).Where("member_email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check member email: %w", err)
	}
	if count > 0 {
		return duplicateEmailError(email)
	}
	return nil
}

// participantsOf scopes a member query to the participants of a tournament
func participantsOf(tournamentID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select("members.*").
			Joins("JOIN tournament_members ON tournament_members.member_id = members.id").
			Where("tournament_members.tournament_id = ?", tournamentID)
	}
}

// tournamentsOf scopes a tournament query to the tournaments a member participates in
func tournamentsOf(memberID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select("tournaments.*").
			Joins("JOIN tournament_members ON tournament_members.tournament_id = tournaments.id").
			Where("tournament_members.member_id = ?", memberID)
	}
}

func toMemberResponses(members []models.Member) []models.MemberResponse {
	out := make([]models.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, members[i].ToResponse())
	}
	return out
}
