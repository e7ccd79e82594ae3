package database

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikeBarney88/golf-club-api/models"
	"github.com/MikeBarney88/golf-club-api/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestQueryMetricsPlugin_RecordsDatabaseCalls(t *testing.T) {
	db, err := Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, Migrate(db))

	member := models.Member{
		MemberName:        "Ann",
		MemberAddress:     "1 Rd",
		MemberEmail:       "a@x.com",
		MemberPhoneNumber: "555",
		StartDate:         models.NewDate(2024, 1, 1),
		DurationMonths:    12,
	}
	require.NoError(t, db.Create(&member).Error)

	var found models.Member
	require.NoError(t, db.First(&found, member.ID).Error)
	// a miss must not count as a failed call
	assert.Error(t, db.First(&found, member.ID+100).Error)

	w := httptest.NewRecorder()
	monitoring.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, "external_calls")
	assert.Contains(t, body, `golfclub_external_target="database"`)
}

func TestQueryMetricsPlugin_Name(t *testing.T) {
	assert.Equal(t, "golf-club:query-metrics", NewQueryMetricsPlugin().Name())
}
