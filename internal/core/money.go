// Package core holds the in-memory donor ledger and its derivation logic.
//
// This file contains money parsing and rendering. Amounts are stored as
// integer cents; floats only appear at the formatting and projection edges.
package core

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// ParseDecimalToCents converts a decimal dollar string to cents with
// half-up rounding on the third decimal place. Both dot (12.34) and comma
// (12,34) separators are accepted. Returns ErrInvalidAmount for malformed,
// negative or zero input.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1234, nil (rounds down)
//	ParseDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Donations are unsigned by contract
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
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
	// First two fractional digits are cents; the third rounds half-up.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// Dollars returns the dollar value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// USD renders the amount with a dollar sign, thousands separators and two
// decimals, e.g. Money{Cents: 123400} -> "$1,234.00".
func (m Money) USD() string {
	return usd.Sprintf("$%.2f", m.Dollars())
}
