package model

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount that serializes as a plain JSON
// number with two decimal places. Aggregation keeps full precision
// internally; rounding happens only here, at the wire boundary.
type Money struct {
	decimal.Decimal
}

// NewMoney builds a Money from an exact decimal string such as "600.00".
// It panics on malformed input and is intended for constants and tests.
func NewMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("model: bad money literal %q: %v", s, err))
	}
	return Money{d}
}

// MoneyFromDecimal wraps an exact decimal as Money.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	m.Decimal = d
	return nil
}

// Percent is an exact decimal percentage that serializes with one
// decimal place, as the clients display it.
type Percent struct {
	decimal.Decimal
}

// PercentFromDecimal wraps an exact decimal as Percent.
func PercentFromDecimal(d decimal.Decimal) Percent {
	return Percent{d}
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.StringFixed(1)), nil
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("percent: %w", err)
	}
	p.Decimal = d
	return nil
}
