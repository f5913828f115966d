// Package core holds the ledger domain types and money handling.
//
// Amounts are kept as integer cents everywhere; floats only appear at the
// persistence and presentation boundaries.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a user-supplied decimal string to cents.
//
// Both dot (12.34) and comma (12,34) separators are accepted, with half-up
// rounding on the third decimal digit. Signs are rejected: a valid entry
// amount is strictly positive, so zero and negative inputs are errors.
func ParseDecimalToCents(s string) (int64, error) {
	cents, err := parseNonNegativeCents(s)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// parseNonNegativeCents is the lenient form used when restoring persisted
// totals, which are allowed to be exactly zero.
func parseNonNegativeCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			// Half-up rounding on the third decimal digit.
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// ParseStoredCents decodes a previously persisted total. Unlike entry
// amounts, stored totals may legitimately be zero.
func ParseStoredCents(s string) (int64, error) {
	return parseNonNegativeCents(s)
}

// FormatCents renders cents as a plain decimal string ("12.34", "-0.50")
// suitable for the persisted state layout.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// Units returns the value in currency units as a float64 for boundary
// encoding. Use cents for arithmetic; this is lossy territory.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}
