package models

import "time"

// Timestamps records when a row was inserted and last saved.
// GORM fills both columns from the connection's NowFunc.
type Timestamps struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime;not null" json:"updatedAt"`
}
