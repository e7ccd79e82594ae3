package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MikeBarney88/golf-club-api/audit"
	"github.com/MikeBarney88/golf-club-api/middleware"
	"github.com/MikeBarney88/golf-club-api/models"
	"github.com/MikeBarney88/golf-club-api/services"
	"github.com/MikeBarney88/golf-club-api/utils"
	"github.com/go-chi/chi/v5"
)

// Audit resource names
const (
	resourceMembers     = "MEMBERS"
	resourceTournaments = "TOURNAMENTS"
)

// Handler serves the /api/members and /api/tournaments endpoints
type Handler struct {
	memberService     *services.MemberService
	tournamentService *services.TournamentService
	auditLogger       *middleware.AuditLogger
}

// NewHandler creates a new handler; auditLogger may be nil
func NewHandler(memberService *services.MemberService, tournamentService *services.TournamentService, auditLogger *middleware.AuditLogger) *Handler {
	if auditLogger == nil {
		auditLogger = middleware.NewAuditLogger(nil)
	}
	return &Handler{
		memberService:     memberService,
		tournamentService: tournamentService,
		auditLogger:       auditLogger,
	}
}

// SetupRoutes registers all member and tournament routes
func (h *Handler) SetupRoutes(r chi.Router) {
	r.Route("/api/members", func(r chi.Router) {
		r.Post("/", h.CreateMember)
		r.Get("/", h.GetAllMembers)

		r.Get("/search/name", h.SearchMembersByName)
		r.Get("/search/phone", h.SearchMembersByPhoneNumber)
		r.Get("/search/email", h.SearchMembersByEmail)
		r.Get("/search/start-date", h.SearchMembersByStartDate)
		r.Get("/search/date-range", h.SearchMembersByDateRange)
		r.Get("/search/after", h.SearchMembersStartedAfter)
		r.Get("/search/before", h.SearchMembersStartedBefore)
		r.Get("/search/tournament/{tournamentId}", h.SearchMembersByTournament)

		r.Get("/{id}", h.GetMember)
		r.Put("/{id}", h.UpdateMember)
		r.Delete("/{id}", h.DeleteMember)
		r.Get("/{id}/tournaments", h.GetMemberTournaments)
	})

	r.Route("/api/tournaments", func(r chi.Router) {
		r.Post("/", h.CreateTournament)
		r.Get("/", h.GetAllTournaments)

		r.Get("/search/start-date", h.SearchTournamentsByStartDate)
		r.Get("/search/location", h.SearchTournamentsByLocation)
		r.Get("/search/date-range", h.SearchTournamentsByDateRange)
		r.Get("/search/after", h.SearchTournamentsStartedAfter)
		r.Get("/search/before", h.SearchTournamentsStartedBefore)

		r.Get("/{id}", h.GetTournament)
		r.Put("/{id}", h.UpdateTournament)
		r.Delete("/{id}", h.DeleteTournament)

		r.Get("/{id}/members", h.GetTournamentWithMembers)
		r.Post("/{id}/members/{memberId}", h.AddMemberToTournament)
		r.Delete("/{id}/members/{memberId}", h.RemoveMemberFromTournament)
	})
}

// errBadRequest marks input that could not be parsed at all
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{errBadRequest}, args...)...)
}

// pathID parses a positive numeric id from the named URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid %s %q", name, raw)
	}
	return id, nil
}

// queryParam returns a required query parameter; an empty value is allowed, absence is not
func queryParam(r *http.Request, name string) (string, error) {
	query := r.URL.Query()
	if !query.Has(name) {
		return "", badRequest("query parameter %s is required", name)
	}
	return query.Get(name), nil
}

// queryDate parses a required ISO date query parameter
func queryDate(r *http.Request, name string) (models.Date, error) {
	raw, err := queryParam(r, name)
	if err != nil {
		return models.Date{}, err
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, badRequest("query parameter %s: %v", name, err)
	}
	return date, nil
}

// decodeJSON reads the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

// respondError maps an error onto its HTTP status
func respondError(w http.ResponseWriter, err error, failure string) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, errBadRequest):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &validationErr):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Validation failed", validationErr.Fields)
	case services.IsNotFoundError(err):
		utils.RespondWithError(w, http.StatusNotFound, err.Error(), nil)
	default:
		slog.Error(failure, "error", err)
		utils.RespondWithError(w, http.StatusInternalServerError, failure, nil)
	}
}

func (h *Handler) audit(r *http.Request, resource string, resourceID int64, action string, err error) {
	status := audit.StatusSuccess
	if err != nil {
		status = audit.StatusFailure
	}
	id := ""
	if resourceID > 0 {
		id = strconv.FormatInt(resourceID, 10)
	}
	h.auditLogger.LogAuditEvent(r, resource, id, action, status)
}
