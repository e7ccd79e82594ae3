package handlers

import (
	"context"
	"net/http"

	"github.com/MikeBarney88/golf-club-api/middleware"
	"github.com/MikeBarney88/golf-club-api/models"
	"github.com/MikeBarney88/golf-club-api/utils"
)

// CreateMember handles POST /api/members
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req models.MemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, "Failed to create member")
		return
	}

	member, err := h.memberService.CreateMember(r.Context(), &req)
	var id int64
	if member != nil {
		id = member.ID
	}
	h.audit(r, resourceMembers, id, middleware.ActionForMethod(r.Method), err)
	if err != nil {
		respondError(w, err, "Failed to create member")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, member)
}

// GetAllMembers handles GET /api/members
func (h *Handler) GetAllMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.GetAllMembers(r.Context())
	if err != nil {
		respondError(w, err, "Failed to retrieve members")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

// GetMember handles GET /api/members/{id}
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, "Failed to retrieve member")
		return
	}
	member, err := h.memberService.GetMemberByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "Failed to retrieve member")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, member)
}

// UpdateMember handles PUT /api/members/{id}
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, "Failed to update member")
		return
	}
	var req models.MemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, "Failed to update member")
		return
	}

	member, err := h.memberService.UpdateMember(r.Context(), id, &req)
	h.audit(r, resourceMembers, id, middleware.ActionForMethod(r.Method), err)
	if err != nil {
		respondError(w, err, "Failed to update member")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, member)
}

// DeleteMember handles DELETE /api/members/{id}
func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, "Failed to delete member")
		return
	}

	err = h.memberService.DeleteMember(r.Context(), id)
	h.audit(r, resourceMembers, id, middleware.ActionForMethod(r.Method), err)
	if err != nil {
		respondError(w, err, "Failed to delete member")
		return
	}
	utils.RespondNoContent(w)
}

// GetMemberTournaments handles GET /api/members/{id}/tournaments
func (h *Handler) GetMemberTournaments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, "Failed to retrieve member tournaments")
		return
	}
	tournaments, err := h.memberService.GetMemberTournaments(r.Context(), id)
	if err != nil {
		respondError(w, err, "Failed to retrieve member tournaments")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournaments)
}

// SearchMembersByName handles GET /api/members/search/name?name=
func (h *Handler) SearchMembersByName(w http.ResponseWriter, r *http.Request) {
	h.searchMembersByText(w, r, "name", h.memberService.SearchByName)
}

// SearchMembersByPhoneNumber handles GET /api/members/search/phone?phoneNumber=
func (h *Handler) SearchMembersByPhoneNumber(w http.ResponseWriter, r *http.Request) {
	h.searchMembersByText(w, r, "phoneNumber", h.memberService.SearchByPhoneNumber)
}

// SearchMembersByEmail handles GET /api/members/search/email?email=
func (h *Handler) SearchMembersByEmail(w http.ResponseWriter, r *http.Request) {
	h.searchMembersByText(w, r, "email", h.memberService.SearchByEmail)
}

// SearchMembersByStartDate handles GET /api/members/search/start-date?startDate=
func (h *Handler) SearchMembersByStartDate(w http.ResponseWriter, r *http.Request) {
	h.searchMembersByDate(w, r, "startDate", h.memberService.SearchByStartDate)
}

// SearchMembersStartedAfter handles GET /api/members/search/after?date=
func (h *Handler) SearchMembersStartedAfter(w http.ResponseWriter, r *http.Request) {
	h.searchMembersByDate(w, r, "date", h.memberService.SearchStartedAfter)
}

// SearchMembersStartedBefore handles GET /api/members/search/before?date=
func (h *Handler) SearchMembersStartedBefore(w http.ResponseWriter, r *http.Request) {
	h.searchMembersByDate(w, r, "date", h.memberService.SearchStartedBefore)
}

// SearchMembersByDateRange handles GET /api/members/search/date-range?startDate=&endDate=
func (h *Handler) SearchMembersByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "startDate")
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	end, err := queryDate(r, "endDate")
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	members, err := h.memberService.SearchByDateRange(r.Context(), start, end)
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

// SearchMembersByTournament handles GET /api/members/search/tournament/{tournamentId}
func (h *Handler) SearchMembersByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := pathID(r, "tournamentId")
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	members, err := h.memberService.SearchByTournamentID(r.Context(), tournamentID)
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

func (h *Handler) searchMembersByText(w http.ResponseWriter, r *http.Request, param string,
	search func(context.Context, string) ([]models.MemberResponse, error)) {
	value, err := queryParam(r, param)
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	members, err := search(r.Context(), value)
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

func (h *Handler) searchMembersByDate(w http.ResponseWriter, r *http.Request, param string,
	search func(context.Context, models.Date) ([]models.MemberResponse, error)) {
	date, err := queryDate(r, param)
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	members, err := search(r.Context(), date)
	if err != nil {
		respondError(w, err, "Failed to search members")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}
