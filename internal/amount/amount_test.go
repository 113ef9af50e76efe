package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals int32
		want     string
		wantErr  error
	}{
		{name: "whole tokens", input: "10", decimals: 18, want: "10000000000000000000"},
		{name: "fraction", input: "1.5", decimals: 18, want: "1500000000000000000"},
		{name: "smallest unit", input: "0.000000000000000001", decimals: 18, want: "1"},
		{name: "six decimals", input: "2.25", decimals: 6, want: "2250000"},
		{name: "zero", input: "0", decimals: 18, want: "0"},
		{name: "surrounding spaces", input: " 3 ", decimals: 0, want: "3"},
		{name: "base units", input: "12345wei", decimals: 18, want: "12345"},
		{name: "max uint256 in base units", input: "115792089237316195423570985008687907853269984665640564039457584007913129639935wei", decimals: 18, want: "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
		{name: "too precise", input: "0.0000001", decimals: 6, wantErr: ErrTooPrecise},
		{name: "fractional base units", input: "1.5wei", decimals: 18, wantErr: ErrTooPrecise},
		{name: "negative", input: "-1", decimals: 18, wantErr: ErrNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.input, tt.decimals)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseUnits_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "1,5", "0x10"} {
		_, err := ParseUnits(input, DefaultDecimals)
		assert.Error(t, err, input)
	}
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "1.5", FormatUnits(mustBig(t, "1500000000000000000"), 18))
	assert.Equal(t, "10", FormatUnits(mustBig(t, "10000000000000000000"), 18))
	assert.Equal(t, "0.000000000000000001", FormatUnits(big.NewInt(1), 18))
	assert.Equal(t, "42", FormatUnits(big.NewInt(42), 0))
	assert.Equal(t, "0", FormatUnits(nil, 18))
}

func TestParseFormatAgree(t *testing.T) {
	for _, s := range []string{"0.1", "1", "123.456", "1000000"} {
		v, err := ParseUnits(s, DefaultDecimals)
		require.NoError(t, err)
		assert.Equal(t, s, FormatUnits(v, DefaultDecimals))
	}
}

func TestDailyRateFor(t *testing.T) {
	rate, err := DailyRateFor(big.NewInt(1000), 10)
	require.NoError(t, err)
	assert.Equal(t, "100", rate.String())

	// rounded up so the balance is fully vested within the period
	rate, err = DailyRateFor(big.NewInt(1000), 3)
	require.NoError(t, err)
	assert.Equal(t, "334", rate.String())

	_, err = DailyRateFor(big.NewInt(1000), 0)
	assert.Error(t, err)
}
