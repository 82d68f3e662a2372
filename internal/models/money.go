package models

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount with two fractional digits. It is stored as
// numeric(10,2) and encoded in JSON as a string such as "10.00".
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return NewMoney(d), nil
}

func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// MaxAmount is the largest value a numeric(10,2) column holds.
var MaxAmount = MustMoney("99999999.99")

// UnmarshalJSON accepts both "10.5" and 10.5 and rejects sub-cent digits.
func (m *Money) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("money %s has more than two fractional digits", d)
	}
	m.Decimal = d.Round(2)
	return nil
}

// InRange reports whether m is between zero and MaxAmount.
func (m Money) InRange() bool {
	return !m.IsNegative() && m.LessThanOrEqual(MaxAmount.Decimal)
}

func (m Money) Mul(d decimal.Decimal) Money {
	return NewMoney(m.Decimal.Mul(d))
}

func (m Money) Add(o Money) Money {
	return NewMoney(m.Decimal.Add(o.Decimal))
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
