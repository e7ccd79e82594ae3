package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MikeBarney88/golf-club-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentHandlers_CreateAndGet(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createTournament(t, router, "2024-06-01", "2024-06-03", "Pebble")
	w := doRequest(t, router, http.MethodGet, "/api/tournaments/"+idOf(created), nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeBody[models.TournamentResponse](t, w)
	assert.Equal(t, "2024-06-01", got.StartDate.String())
	assert.Equal(t, "2024-06-03", got.EndDate.String())
	assert.Equal(t, "Pebble", got.Location)
	assert.True(t, got.EntryFee.Equal(models.MustMoney("100.00")))
	assert.True(t, got.CashPrizeAmount.Equal(models.MustMoney("5000")))
	assert.Contains(t, w.Body.String(), `"entryFee":100.00`)
}

func TestTournamentHandlers_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	body := tournamentBody("2024-06-01", "2024-06-03", "")
	body["entryFee"] = -5
	delete(body, "cashPrizeAmount")
	w := doRequest(t, router, http.MethodPost, "/api/tournaments", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "location")
	assert.Contains(t, w.Body.String(), "entryFee")
	assert.Contains(t, w.Body.String(), "cashPrizeAmount")

	w = doRequest(t, router, http.MethodGet, "/api/tournaments", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestTournamentHandlers_RejectsUnstorableAmounts(t *testing.T) {
	router, _ := newTestRouter(t)

	body := tournamentBody("2024-06-01", "2024-06-03", "Pebble")
	body["entryFee"] = json.Number("100.005")
	body["cashPrizeAmount"] = json.Number("0.001")
	w := doRequest(t, router, http.MethodPost, "/api/tournaments", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "entryFee")
	assert.Contains(t, w.Body.String(), "cashPrizeAmount")

	body = tournamentBody("2024-06-01", "2024-06-03", "Pebble")
	body["cashPrizeAmount"] = json.Number("10000000000")
	w = doRequest(t, router, http.MethodPost, "/api/tournaments", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "cashPrizeAmount")

	created := createTournament(t, router, "2024-06-01", "2024-06-03", "Pebble")
	body = tournamentBody("2024-06-01", "2024-06-03", "Pebble")
	body["entryFee"] = json.Number("99.999")
	w = doRequest(t, router, http.MethodPut, "/api/tournaments/"+idOf(created), body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/tournaments/"+idOf(created), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[models.TournamentResponse](t, w)
	assert.Equal(t, "100.00", got.EntryFee.String())

	w = doRequest(t, router, http.MethodGet, "/api/tournaments", nil)
	assert.Len(t, decodeBody[[]models.TournamentResponse](t, w), 1)
}

func TestTournamentHandlers_UpdateAndDelete(t *testing.T) {
	router, _ := newTestRouter(t)
	created := createTournament(t, router, "2024-06-01", "2024-06-03", "Pebble")
	path := "/api/tournaments/" + idOf(created)

	update := tournamentBody("2024-07-01", "2024-07-04", "St Andrews")
	update["cashPrizeAmount"] = "7500.50"
	w := doRequest(t, router, http.MethodPut, path, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody[models.TournamentResponse](t, w)
	assert.Equal(t, "St Andrews", updated.Location)
	assert.Equal(t, "7500.50", updated.CashPrizeAmount.String())

	w = doRequest(t, router, http.MethodPut, "/api/tournaments/404", update)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTournamentHandlers_Participation(t *testing.T) {
	router, _ := newTestRouter(t)
	ann := createMember(t, router, "Ann", "a@x.com", "2024-01-01")
	tournament := createTournament(t, router, "2024-06-01", "2024-06-03", "Pebble")
	membersPath := "/api/tournaments/" + idOf(tournament) + "/members/" + idOf(ann)

	for i := 0; i < 2; i++ {
		w := doRequest(t, router, http.MethodPost, membersPath, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeBody[models.TournamentWithMembersResponse](t, w)
		require.Len(t, resp.ParticipatingMembers, 1)
		assert.Equal(t, "Ann", resp.ParticipatingMembers[0].MemberName)
	}

	w := doRequest(t, router, http.MethodGet, "/api/tournaments/"+idOf(tournament)+"/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	withMembers := decodeBody[models.TournamentWithMembersResponse](t, w)
	assert.Equal(t, "Pebble", withMembers.Location)
	require.Len(t, withMembers.ParticipatingMembers, 1)
	assert.Equal(t, "Ann", withMembers.ParticipatingMembers[0].MemberName)

	w = doRequest(t, router, http.MethodGet, "/api/members/"+idOf(ann)+"/tournaments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tournaments := decodeBody[[]models.TournamentResponse](t, w)
	require.Len(t, tournaments, 1)
	assert.Equal(t, "Pebble", tournaments[0].Location)

	w = doRequest(t, router, http.MethodGet, "/api/members/search/tournament/"+idOf(tournament), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]models.MemberResponse](t, w), 1)

	w = doRequest(t, router, http.MethodDelete, membersPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[models.TournamentWithMembersResponse](t, w).ParticipatingMembers)
	assert.Contains(t, w.Body.String(), `"participatingMembers":[]`)

	w = doRequest(t, router, http.MethodGet, "/api/members/"+idOf(ann)+"/tournaments", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestTournamentHandlers_ParticipationNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	ann := createMember(t, router, "Ann", "a@x.com", "2024-01-01")
	tournament := createTournament(t, router, "2024-06-01", "2024-06-03", "Pebble")

	w := doRequest(t, router, http.MethodPost, "/api/tournaments/999/members/"+idOf(ann), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "tournament not found")

	w = doRequest(t, router, http.MethodPost, "/api/tournaments/"+idOf(tournament)+"/members/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "member not found")

	w = doRequest(t, router, http.MethodGet, "/api/tournaments/999/members", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/tournaments/"+idOf(tournament)+"/members/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTournamentHandlers_Search(t *testing.T) {
	router, _ := newTestRouter(t)
	createTournament(t, router, "2024-06-01", "2024-06-03", "Pebble Beach")
	createTournament(t, router, "2024-07-01", "2024-07-03", "St Andrews")
	createTournament(t, router, "2024-08-01", "2024-08-03", "Augusta")

	locations := func(path string) []string {
		t.Helper()
		w := doRequest(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		out := []string{}
		for _, tr := range decodeBody[[]models.TournamentResponse](t, w) {
			out = append(out, tr.Location)
		}
		return out
	}

	assert.Equal(t, []string{"Pebble Beach"}, locations("/api/tournaments/search/location?location=pebble"))
	assert.Equal(t, []string{"St Andrews"}, locations("/api/tournaments/search/start-date?startDate=2024-07-01"))
	assert.Equal(t, []string{"Pebble Beach", "St Andrews"}, locations("/api/tournaments/search/date-range?startDate=2024-06-01&endDate=2024-07-01"))
	assert.Equal(t, []string{"Augusta"}, locations("/api/tournaments/search/after?date=2024-07-01"))
	assert.Equal(t, []string{"Pebble Beach"}, locations("/api/tournaments/search/before?date=2024-07-01"))
	assert.Empty(t, locations("/api/tournaments/search/date-range?startDate=2024-09-01&endDate=2024-01-01"))

	w := doRequest(t, router, http.MethodGet, "/api/tournaments/search/date-range?startDate=2024-06-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
