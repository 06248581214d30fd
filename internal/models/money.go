package models

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Amount limits. A value fits when it has at most MaxAmountIntegerDigits digits
// before the point and at most MaxAmountScale significant digits after it.
const (
	MaxAmountIntegerDigits = 15
	MaxAmountScale         = 4
)

// ParseAmount parses a decimal string exactly. Anything that is not a finite decimal
// (including "NaN" and "Inf") or that exceeds the amount limits is rejected with
// ErrInvalidAmount. Trailing zeros after the point do not count against the scale.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !withinAmountLimits(d) {
		return decimal.Zero, fmt.Errorf("%w: %q exceeds %d integer digits or %d decimal places",
			ErrInvalidAmount, s, MaxAmountIntegerDigits, MaxAmountScale)
	}
	return d, nil
}

// withinAmountLimits inspects the coefficient and exponent only, so "1e200000000"
// is rejected without ever being expanded.
func withinAmountLimits(d decimal.Decimal) bool {
	digits := strings.TrimPrefix(d.Coefficient().String(), "-")
	if digits == "0" {
		return true
	}
	significant := strings.TrimRight(digits, "0")
	exp := int(d.Exponent()) + len(digits) - len(significant)
	if exp < -MaxAmountScale {
		return false
	}
	return len(significant)+exp <= MaxAmountIntegerDigits
}

// ValidateNonNegative rejects amounts below zero (budget, actual cost)
func ValidateNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s cannot be negative", ErrInvalidAmount, field)
	}
	return nil
}

// ValidatePositive rejects amounts that are zero or below (expenditure amount)
func ValidatePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidAmount, field)
	}
	return nil
}

// ValidateDuration rejects time entry durations under one minute
func ValidateDuration(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("%w: duration must be at least 1 minute", ErrInvalidAmount)
	}
	return nil
}

// NormalizeCurrency upper-cases a currency code and checks it is three letters
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != CurrencyCodeLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}
	}
	return code, nil
}
