// Package amount converts between whole-token decimal notation and base units.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDecimals is the decimals of an 18-decimal ERC-20 token
const DefaultDecimals int32 = 18

var (
	// ErrNegative is returned for amounts below zero
	ErrNegative = errors.New("amount must not be negative")
	// ErrTooPrecise is returned when an amount has more fractional digits than the token
	ErrTooPrecise = errors.New("amount has more decimal places than the token")
)

// ParseUnits parses a decimal amount such as "12.5" into base units of a token
// with the given decimals. A plain integer string with a "wei" suffix is taken
// as base units already.
func ParseUnits(s string, decimals int32) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if raw, ok := strings.CutSuffix(s, "wei"); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		return toBaseUnits(d, 0)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return toBaseUnits(d, decimals)
}

func toBaseUnits(d decimal.Decimal, decimals int32) (*big.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegative
	}
	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, ErrTooPrecise
	}
	return scaled.BigInt(), nil
}

// FormatUnits renders base units as a whole-token decimal string without trailing zeros
func FormatUnits(v *big.Int, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -decimals).String()
}

// DailyRateFor returns the daily rate that vests balance over days
func DailyRateFor(balance *big.Int, days int64) (*big.Int, error) {
	if days <= 0 {
		return nil, errors.New("days must be positive")
	}
	rate := decimal.NewFromBigInt(balance, 0).Div(decimal.NewFromInt(days)).Ceil()
	return rate.BigInt(), nil
}
