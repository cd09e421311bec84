package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// amountScale is the number of fractional digits carried by an Amount.
const amountScale = 2

// Amount is a monetary value counted in minor units (cents).
type Amount int64

// ParseAmount converts a decimal string with up to two fractional digits into an Amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: amount required", ErrValidation)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}

	if !d.Equal(d.Truncate(amountScale)) {
		return 0, fmt.Errorf("%w: amount supports up to %d decimals", ErrValidation, amountScale)
	}

	minor := d.Shift(amountScale)
	if minor.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || minor.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, fmt.Errorf("%w: amount out of range", ErrValidation)
	}

	return Amount(minor.IntPart()), nil
}

// MustParseAmount is ParseAmount for constants and tests; it panics on bad input.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}

	return a
}

// String renders the amount with exactly two decimals, e.g. "150.00".
func (a Amount) String() string {
	return decimal.New(int64(a), -amountScale).StringFixed(amountScale)
}

func (a Amount) IsPositive() bool { return a > 0 }

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	v, err := ParseAmount(string(text))
	if err != nil {
		return err
	}

	*a = v

	return nil
}
