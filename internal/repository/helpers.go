package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// parseTime parses an RFC3339 column value. A malformed value yields the zero
// time rather than failing the whole read.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// formatTime converts t to the UTC RFC3339 text stored in SQLite.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// nowUTC returns the current UTC time.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// decimalText renders d for a TEXT column.
func decimalText(d decimal.Decimal) string {
	return d.String()
}

// parseDecimal reads a TEXT column written by decimalText.
func parseDecimal(column, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", column, s, err)
	}
	return d, nil
}
