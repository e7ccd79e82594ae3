package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikeBarney88/golf-club-api/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	db := services.SetupSQLiteTestDB(t)
	h := NewHandler(services.NewMemberService(db), services.NewTournamentService(db), nil)
	return NewRouter(h, db, RouterConfig{ServiceName: "golf-club-api-test", AllowedOrigins: []string{"*"}}), db
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func memberBody(name, email, startDate string) map[string]interface{} {
	return map[string]interface{}{
		"memberName":        name,
		"memberAddress":     "1 Rd",
		"memberEmail":       email,
		"memberPhoneNumber": "555",
		"startDate":         startDate,
		"durationMonths":    12,
	}
}

func tournamentBody(start, end, location string) map[string]interface{} {
	return map[string]interface{}{
		"startDate":       start,
		"endDate":         end,
		"location":        location,
		"entryFee":        100.00,
		"cashPrizeAmount": 5000.00,
	}
}

func createMember(t *testing.T, h http.Handler, name, email, startDate string) map[string]interface{} {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/api/members", memberBody(name, email, startDate))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[map[string]interface{}](t, w)
}

func createTournament(t *testing.T, h http.Handler, start, end, location string) map[string]interface{} {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/api/tournaments", tournamentBody(start, end, location))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[map[string]interface{}](t, w)
}

// idOf renders a decoded JSON id for use in a path
func idOf(resource map[string]interface{}) string {
	return jsonNumber(resource["id"])
}

func jsonNumber(v interface{}) string {
	data, _ := json.Marshal(v)
	return string(data)
}
