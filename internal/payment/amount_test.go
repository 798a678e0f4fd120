package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinorUnits(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"10.00", 1000},
		{"25.50", 2550},
		{"9.999", 1000},
		{"0.005", 1},
		{"0.015", 2},
		{"0.01", 1},
		{"1", 100},
		{"  42.1 ", 4210},
		{"1e2", 10000},
		{"1234567.89", 123456789},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseMinorUnits(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMinorUnitsRejects(t *testing.T) {
	for _, raw := range []string{
		"", "   ", "abc", "-5", "0", "0.00", "0.004", "-0.005", "NaN", "Infinity",
		"10abc", "1,000.00", "99999999999999999999999",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseMinorUnits(raw)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestParseMinorUnitsRejectsHugeExponentsQuickly(t *testing.T) {
	for _, raw := range []string{
		"1e20000000", "1e-20000000", "1e999999999", "1e-999999999", "1e19", "0.0000000000000000001",
	} {
		t.Run(raw, func(t *testing.T) {
			start := time.Now()
			_, err := ParseMinorUnits(raw)
			assert.ErrorIs(t, err, ErrInvalidAmount)
			assert.Less(t, time.Since(start), 50*time.Millisecond)
		})
	}
}

func TestFormatMajor(t *testing.T) {
	assert.Equal(t, "25.50", FormatMajor(2550))
	assert.Equal(t, "0.01", FormatMajor(1))
	assert.Equal(t, "1000.00", FormatMajor(100000))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		minor    int64
		currency string
		want     string
	}{
		{2550, "USD", "$25.50"},
		{2550, "EUR", "€25.50"},
		{2550, "GBP", "£25.50"},
		{2550, "CHF", "CHF 25.50"},
		{123456789, "usd", "$1,234,567.89"},
		{100000, "CHF", "CHF 1,000.00"},
		{-2550, "USD", "-$25.50"},
		{5, "", "0.05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.minor, tt.currency))
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Oct 19, 2026, 2:05 PM", FormatTimestamp("2026-10-19T14:05:09.123456"))
	assert.Equal(t, "Oct 19, 2026, 9:30 AM", FormatTimestamp("2026-10-19T09:30:00"))
	assert.Equal(t, "Oct 19, 2026, 9:30 AM", FormatTimestamp("2026-10-19T09:30:00Z"))
	assert.Equal(t, "yesterday", FormatTimestamp("yesterday"))
}
