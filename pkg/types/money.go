package types

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount that encodes as a JSON number with two decimals
// and decodes from either a number or a quoted string.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d, rounded to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MoneyPtr converts a nullable column value.
func MoneyPtr(d *decimal.Decimal) *Money {
	if d == nil {
		return nil
	}
	m := NewMoney(*d)
	return &m
}

// DecimalPtr converts back to the nullable column value.
func (m *Money) DecimalPtr() *decimal.Decimal {
	if m == nil {
		return nil
	}
	d := m.Decimal.Round(2)
	return &d
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return m.Decimal.UnmarshalJSON(data)
}
