package services

import (
	"strings"

	"github.com/MikeBarney88/golf-club-api/monitoring"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching term anywhere, with wildcards in term escaped
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// containsIgnoreCase scopes a query to rows whose column contains term, ignoring case
func containsIgnoreCase(column, term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", containsPattern(term))
	}
}

func rowExists(tx *gorm.DB, model interface{}, id int64) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func recordOutcome(action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	monitoring.RecordBusinessEvent(action, outcome)
}
