package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used on the wire and in query parameters
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day, normalised to midnight UTC
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date such as "2024-06-01"
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return Date{Time: t}, nil
}

func dateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string in YYYY-MM-DD format: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner. Drivers hand back dates as time.Time or as text depending on the dialect.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = dateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("cannot scan %q into Date", s)
	}
	parsed, err := ParseDate(s[:len(DateLayout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
