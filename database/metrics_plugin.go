package database

import (
	"errors"
	"time"

	"github.com/MikeBarney88/golf-club-api/monitoring"
	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// QueryMetricsPlugin reports every GORM operation as an external call to the database
type QueryMetricsPlugin struct{}

// NewQueryMetricsPlugin creates the plugin; register it with db.Use
func NewQueryMetricsPlugin() *QueryMetricsPlugin {
	return &QueryMetricsPlugin{}
}

func (p *QueryMetricsPlugin) Name() string {
	return "golf-club:query-metrics"
}

func (p *QueryMetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", startTimer); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", recordCall("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", startTimer); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", recordCall("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", startTimer); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", recordCall("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", startTimer); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:after_delete", recordCall("delete")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("metrics:before_row", startTimer); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("metrics:after_row", recordCall("row")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("metrics:before_raw", startTimer); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("metrics:after_raw", recordCall("raw"))
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func recordCall(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		value, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		start, ok := value.(time.Time)
		if !ok {
			return
		}

		err := db.Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}
		monitoring.RecordExternalCall("database", operation, time.Since(start), err)
	}
}
