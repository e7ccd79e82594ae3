package handlers

import (
	"context"
	"net/http"

	"github.com/MikeBarney88/golf-club-api/audit"
	"github.com/MikeBarney88/golf-club-api/middleware"
	"github.com/MikeBarney88/golf-club-api/models"
	"github.com/MikeBarney88/golf-club-api/utils"
)

// CreateTournament handles POST /api/tournaments
func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req models.TournamentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, "Failed to create tournament")
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), &req)
	var id int64
	if tournament != nil {
		id = tournament.ID
	}
	h.audit(r, resourceTournaments, id, middleware.ActionForMethod(r.Method), err)
	if err != nil {
		respondError(w, err, "Failed to create tournament")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, tournament)
}

// GetAllTournaments handles GET /api/tournaments
func (h *Handler) GetAllTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.GetAllTournaments(r.Context())
	if err != nil {
		respondError(w, err, "Failed to retrieve tournaments")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournaments)
}

// GetTournament handles GET /api/tournaments/{id}
func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, "Failed to retrieve tournament")
		return
	}
	tournament, err := h.tournamentService.GetTournamentByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "Failed to retrieve tournament")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournament)
}

// UpdateTournament handles PUT /api/tournaments/{id}
func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, "Failed to update tournament")
		return
	}
	var req models.TournamentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, "Failed to update tournament")
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(r.Context(), id, &req)
	h.audit(r, resourceTournaments, id, middleware.ActionForMethod(r.Method), err)
	if err != nil {
		respondError(w, err, "Failed to update tournament")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournament)
}

// DeleteTournament handles DELETE /api/tournaments/{id}
func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, "Failed to delete tournament")
		return
	}

	err = h.tournamentService.DeleteTournament(r.Context(), id)
	h.audit(r, resourceTournaments, id, middleware.ActionForMethod(r.Method), err)
	if err != nil {
		respondError(w, err, "Failed to delete tournament")
		return
	}
	utils.RespondNoContent(w)
}

// GetTournamentWithMembers handles GET /api/tournaments/{id}/members
func (h *Handler) GetTournamentWithMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, "Failed to retrieve tournament members")
		return
	}
	tournament, err := h.tournamentService.GetTournamentWithMembers(r.Context(), id)
	if err != nil {
		respondError(w, err, "Failed to retrieve tournament members")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournament)
}

// AddMemberToTournament handles POST /api/tournaments/{id}/members/{memberId}
func (h *Handler) AddMemberToTournament(w http.ResponseWriter, r *http.Request) {
	h.changeParticipation(w, r, audit.ActionAddMember, "Failed to add member to tournament",
		h.tournamentService.AddMemberToTournament)
}

// RemoveMemberFromTournament handles DELETE /api/tournaments/{id}/members/{memberId}
func (h *Handler) RemoveMemberFromTournament(w http.ResponseWriter, r *http.Request) {
	h.changeParticipation(w, r, audit.ActionRemoveMember, "Failed to remove member from tournament",
		h.tournamentService.RemoveMemberFromTournament)
}

func (h *Handler) changeParticipation(w http.ResponseWriter, r *http.Request, action, failure string,
	change func(context.Context, int64, int64) (*models.TournamentWithMembersResponse, error)) {
	tournamentID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, failure)
		return
	}
	memberID, err := pathID(r, "memberId")
	if err != nil {
		respondError(w, err, failure)
		return
	}

	tournament, err := change(r.Context(), tournamentID, memberID)
	h.audit(r, resourceTournaments, tournamentID, action, err)
	if err != nil {
		respondError(w, err, failure)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournament)
}

// SearchTournamentsByStartDate handles GET /api/tournaments/search/start-date?startDate=
func (h *Handler) SearchTournamentsByStartDate(w http.ResponseWriter, r *http.Request) {
	h.searchTournamentsByDate(w, r, "startDate", h.tournamentService.SearchByStartDate)
}

// SearchTournamentsStartedAfter handles GET /api/tournaments/search/after?date=
func (h *Handler) SearchTournamentsStartedAfter(w http.ResponseWriter, r *http.Request) {
	h.searchTournamentsByDate(w, r, "date", h.tournamentService.SearchStartedAfter)
}

// SearchTournamentsStartedBefore handles GET /api/tournaments/search/before?date=
func (h *Handler) SearchTournamentsStartedBefore(w http.ResponseWriter, r *http.Request) {
	h.searchTournamentsByDate(w, r, "date", h.tournamentService.SearchStartedBefore)
}

// SearchTournamentsByLocation handles GET /api/tournaments/search/location?location=
func (h *Handler) SearchTournamentsByLocation(w http.ResponseWriter, r *http.Request) {
	location, err := queryParam(r, "location")
	if err != nil {
		respondError(w, err, "Failed to search tournaments")
		return
	}
	tournaments, err := h.tournamentService.SearchByLocation(r.Context(), location)
	if err != nil {
		respondError(w, err, "Failed to search tournaments")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournaments)
}

// SearchTournamentsByDateRange handles GET /api/tournaments/search/date-range?startDate=&endDate=
func (h *Handler) SearchTournamentsByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "startDate")
	if err != nil {
		respondError(w, err, "Failed to search tournaments")
		return
	}
	end, err := queryDate(r, "endDate")
	if err != nil {
		respondError(w, err, "Failed to search tournaments")
		return
	}
	tournaments, err := h.tournamentService.SearchByDateRange(r.Context(), start, end)
	if err != nil {
		respondError(w, err, "Failed to search tournaments")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournaments)
}

func (h *Handler) searchTournamentsByDate(w http.ResponseWriter, r *http.Request, param string,
	search func(context.Context, models.Date) ([]models.TournamentResponse, error)) {
	date, err := queryDate(r, param)
	if err != nil {
		respondError(w, err, "Failed to search tournaments")
		return
	}
	tournaments, err := search(r.Context(), date)
	if err != nil {
		respondError(w, err, "Failed to search tournaments")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournaments)
}
