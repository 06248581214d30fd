package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tally/internal/models"
)

// ============================================================================
// Argument Parsing Tests
// ============================================================================

func TestParseID(t *testing.T) {
	id, err := ParseID("42", "task")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		_, err := ParseID(bad, "task")
		assert.Error(t, err, "ParseID(%q)", bad)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("14/03/2025")
	assert.Error(t, err)
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("amount", "", "")
	flags.String("date", "", "")
	flags.String("title", "", "")
	return flags
}

func TestOptionalFlags_Unset(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Parse(nil))

	amount, err := OptionalAmount(flags, "amount")
	require.NoError(t, err)
	assert.Nil(t, amount)

	date, err := OptionalDate(flags, "date")
	require.NoError(t, err)
	assert.Nil(t, date)

	assert.Nil(t, OptionalString(flags, "title"))
}

func TestOptionalFlags_Set(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--amount=12.50", "--date=2025-01-02", "--title="}))

	amount, err := OptionalAmount(flags, "amount")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("12.5")))

	date, err := OptionalDate(flags, "date")
	require.NoError(t, err)
	assert.Equal(t, 2, date.Day())

	title := OptionalString(flags, "title")
	require.NotNil(t, title)
	assert.Equal(t, "", *title)
}

func TestDateOrToday(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	now := time.Date(2025, 3, 14, 23, 30, 0, 0, manila)

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))
	d, err := DateOrToday(flags, "date", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), d)

	// 23:30 at UTC-5 is already the next day in UTC
	flags = newFlags()
	require.NoError(t, flags.Parse(nil))
	d, err = DateOrToday(flags, "date", time.Date(2025, 3, 14, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60)))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), d)

	flags = newFlags()
	require.NoError(t, flags.Parse([]string{"--date=2025-03-01"}))
	d, err = DateOrToday(flags, "date", now)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Day())
}

func TestOptionalAmount_Invalid(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--amount=NaN"}))

	_, err := OptionalAmount(flags, "amount")
	assert.True(t, errors.Is(err, models.ErrInvalidAmount))

	flags = newFlags()
	require.NoError(t, flags.Parse([]string{"--amount=1e200000000"}))
	_, err = OptionalAmount(flags, "amount")
	assert.True(t, errors.Is(err, models.ErrInvalidAmount))
}

// ============================================================================
// Formatting Tests
// ============================================================================

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"0", "USD", "0.00 USD"},
		{"749.5", "PHP", "749.50 PHP"},
		{"1234567.891", "EUR", "1,234,567.89 EUR"},
		{"-30", "USD", "-30.00 USD"},
		{"-1000", "", "-1,000.00"},
	}

	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.amount), tt.currency)
		assert.Equal(t, tt.want, got, "FormatMoney(%s, %s)", tt.amount, tt.currency)
	}
}

func TestFormatOptionalMoney(t *testing.T) {
	assert.Equal(t, "n/a", FormatOptionalMoney(nil, "USD"))
	d := decimal.NewFromInt(5)
	assert.Equal(t, "5.00 USD", FormatOptionalMoney(&d, "USD"))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 15m", FormatMinutes(75))
	assert.Equal(t, "0m", FormatMinutes(0))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(nil))
	d := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-01", FormatDate(&d))
}
