package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/thenoetrevino/tally/internal/models"
)

// ParseID parses a positional ID argument
func ParseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %q (must be a positive integer)", what, arg)
	}
	return id, nil
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// OptionalDate returns the parsed date flag, or nil when the flag was not given
func OptionalDate(flags *pflag.FlagSet, name string) (*time.Time, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	raw, _ := flags.GetString(name)
	d, err := ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

// DateOrToday returns the parsed date flag, or now's UTC calendar date when the flag
// was not given
func DateOrToday(flags *pflag.FlagSet, name string, now time.Time) (time.Time, error) {
	d, err := OptionalDate(flags, name)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		y, m, day := now.UTC().Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
	}
	return *d, nil
}

// OptionalAmount returns the parsed decimal flag, or nil when the flag was not given.
// Parse failures wrap models.ErrInvalidAmount.
func OptionalAmount(flags *pflag.FlagSet, name string) (*decimal.Decimal, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	raw, _ := flags.GetString(name)
	d, err := models.ParseAmount(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

// OptionalString returns the flag value, or nil when the flag was not given
func OptionalString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

// FormatMoney renders an amount with two decimals, thousands separators and the
// currency code, e.g. "1,234.50 USD"
func FormatMoney(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := sign + b.String() + "." + frac
	if currency != "" {
		out += " " + currency
	}
	return out
}

// FormatOptionalMoney renders "n/a" for a missing amount
func FormatOptionalMoney(d *decimal.Decimal, currency string) string {
	if d == nil {
		return "n/a"
	}
	return FormatMoney(*d, currency)
}

// FormatMinutes renders a duration in minutes as "2h 15m"
func FormatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatDate renders a date as YYYY-MM-DD, or "-" when unset
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(models.DateLayout)
}
