package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// SettingsField names a scalar field of TargetSettings editable from raw input.
type SettingsField string

const (
	FieldMerchantOnboard SettingsField = "merchantOnboard"
	FieldTotalParcels    SettingsField = "totalParcels"
	FieldTotalRevenue    SettingsField = "totalRevenue"
	FieldCommissionValue SettingsField = "commissionValue"
)

// SettingsFields lists the scalar fields in display order.
var SettingsFields = []SettingsField{
	FieldMerchantOnboard,
	FieldTotalParcels,
	FieldTotalRevenue,
	FieldCommissionValue,
}

var settingsFieldAliases = map[string]SettingsField{
	"merchantonboard":  FieldMerchantOnboard,
	"merchant_onboard": FieldMerchantOnboard,
	"onboard":          FieldMerchantOnboard,
	"merchants":        FieldMerchantOnboard,
	"totalparcels":     FieldTotalParcels,
	"total_parcels":    FieldTotalParcels,
	"parcels":          FieldTotalParcels,
	"totalrevenue":     FieldTotalRevenue,
	"total_revenue":    FieldTotalRevenue,
	"revenue":          FieldTotalRevenue,
	"commissionvalue":  FieldCommissionValue,
	"commission_value": FieldCommissionValue,
	"commission":       FieldCommissionValue,
	"value":            FieldCommissionValue,
}

// ParseSettingsField resolves a field name in camelCase, snake_case or one of
// the short aliases (onboard, parcels, revenue, value).
func ParseSettingsField(s string) (SettingsField, error) {
	if f, ok := settingsFieldAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// IsCount reports whether the field holds a whole-number count.
func (f SettingsField) IsCount() bool {
	return f == FieldMerchantOnboard || f == FieldTotalParcels
}

// Amount bounds. Exponent notation can describe numbers far larger than
// any target, and expanding them stalls formatting and integer conversion.
const (
	MaxAmountDigits = 30 // digits left of the point
	MaxAmountScale  = 10 // digits right of the point
)

var (
	minCount = decimal.NewFromInt(math.MinInt64)
	maxCount = decimal.NewFromInt(math.MaxInt64)
)

// CheckAmount rejects d when it has more than MaxAmountDigits integer digits
// or more than MaxAmountScale fractional digits.
func CheckAmount(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	exp := int64(d.Exponent())
	if exp < -MaxAmountScale {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidNumber, MaxAmountScale)
	}
	if int64(d.NumDigits())+exp > MaxAmountDigits {
		return fmt.Errorf("%w: more than %d digits", ErrInvalidNumber, MaxAmountDigits)
	}
	return nil
}

// ParseAmount coerces raw text to a decimal.
// Whitespace is trimmed, "," and "_" separators are ignored and empty input
// is zero. Anything else that is not a number, or is out of the CheckAmount
// bounds, yields ErrInvalidNumber.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	if err := CheckAmount(d); err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, err)
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	return d, nil
}

// ParseCount coerces raw text to a whole number using the ParseAmount rules.
// Fractional values and values outside int64 are rejected.
func ParseCount(raw string) (int64, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || d.LessThan(minCount) || d.GreaterThan(maxCount) {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidNumber, raw)
	}
	return d.IntPart(), nil
}

// SetField returns a copy of s with one scalar field replaced by the coerced
// raw value. On error s is returned unchanged.
func SetField(s TargetSettings, field SettingsField, raw string) (TargetSettings, error) {
	out := s.Clone()
	switch field {
	case FieldMerchantOnboard, FieldTotalParcels:
		n, err := ParseCount(raw)
		if err != nil {
			return s, err
		}
		if field == FieldMerchantOnboard {
			out.MerchantOnboard = n
		} else {
			out.TotalParcels = n
		}
	case FieldTotalRevenue, FieldCommissionValue:
		d, err := ParseAmount(raw)
		if err != nil {
			return s, err
		}
		if field == FieldTotalRevenue {
			out.TotalRevenue = d
		} else {
			out.CommissionValue = d
		}
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// FieldValue returns the current value of a scalar field as editable text.
func FieldValue(s TargetSettings, field SettingsField) string {
	switch field {
	case FieldMerchantOnboard:
		return fmt.Sprintf("%d", s.MerchantOnboard)
	case FieldTotalParcels:
		return fmt.Sprintf("%d", s.TotalParcels)
	case FieldTotalRevenue:
		return s.TotalRevenue.String()
	case FieldCommissionValue:
		return s.CommissionValue.String()
	}
	return ""
}
