package payment

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// maxExponent bounds the decimal exponent of user input. It is checked
// before any arithmetic on the value.
const maxExponent = 18

// ParseMinorUnits converts a user-entered decimal amount into minor units
// (amount * 100). The input is parsed exactly and rounded half away from
// zero, so "0.005" becomes 1 and "9.999" becomes 1000. Anything that is not a
// finite number, rounds to zero or below, or overflows int64 is rejected.
func ParseMinorUnits(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if e := d.Exponent(); e > maxExponent || e < -maxExponent {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, raw)
	}

	minor := d.Shift(2).Round(0)
	if !minor.IsPositive() {
		return 0, fmt.Errorf("%w: %q is not positive", ErrInvalidAmount, raw)
	}
	if minor.GreaterThan(maxMinorUnits) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, raw)
	}
	return minor.IntPart(), nil
}

// FormatMajor renders minor units as a fixed two-decimal number ("25.50").
func FormatMajor(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatMoney renders minor units in en-US currency style: a symbol for the
// currencies that have one ("$1,234.50"), otherwise the code ("CHF 25.50").
func FormatMoney(minor int64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))

	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	whole, frac, _ := strings.Cut(FormatMajor(minor), ".")
	number := groupThousands(whole) + "." + frac

	if sym, ok := currencySymbols[code]; ok {
		return sign + sym + number
	}
	if code == "" {
		return sign + number
	}
	return sign + code + " " + number
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// FormatTimestamp renders a backend timestamp as "Jan 2, 2006, 3:04 PM".
// Unparseable values are returned unchanged.
func FormatTimestamp(raw string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006, 3:04 PM")
		}
	}
	return raw
}
