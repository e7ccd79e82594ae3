package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// moneyScale is the number of fraction digits kept for monetary amounts
	moneyScale = 2
	// moneyPrecision matches the decimal(12,2) columns amounts are stored in
	moneyPrecision = 12
)

var moneyLimit = decimal.New(1, moneyPrecision-moneyScale)

// Money is an exact decimal monetary amount
type Money struct {
	decimal.Decimal
}

// NewMoney parses a decimal string such as "100.00"
func NewMoney(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid monetary amount %q: %w", value, err)
	}
	return Money{Decimal: d}, nil
}

// MustMoney is NewMoney for literals known to be valid
func MustMoney(value string) Money {
	m, err := NewMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

// IsNegative reports whether the amount is below zero
func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// HasValidScale reports whether the amount needs at most two fraction digits.
// Trailing zeros do not count, so 1.500 is accepted.
func (m Money) HasValidScale() bool {
	return m.Decimal.Equal(m.Decimal.Truncate(moneyScale))
}

// InRange reports whether the amount fits a decimal(12,2) column
func (m Money) InRange() bool {
	return m.Decimal.Abs().LessThan(moneyLimit)
}

// Equal compares two amounts by value, so 100 and 100.00 are equal
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// String renders the amount with two fraction digits
func (m Money) String() string {
	return m.Decimal.StringFixed(moneyScale)
}

// MarshalJSON renders the amount as a JSON number with two fraction digits
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid monetary amount: %w", err)
	}
	m.Decimal = d
	return nil
}
