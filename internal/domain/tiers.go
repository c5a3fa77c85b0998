package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTierSpan is the width of a newly appended tier.
const DefaultTierSpan = 1000

// TierField names an editable field of a CommissionTier.
type TierField string

const (
	TierFieldFrom TierField = "from"
	TierFieldTo   TierField = "to"
	TierFieldRate TierField = "rate"
	TierFieldType TierField = "type"
)

// ParseTierField resolves a tier field name (case-insensitive).
func ParseTierField(s string) (TierField, error) {
	switch f := TierField(strings.ToLower(strings.TrimSpace(s))); f {
	case TierFieldFrom, TierFieldTo, TierFieldRate, TierFieldType:
		return f, nil
	case "value":
		return TierFieldRate, nil
	}
	return "", fmt.Errorf("%w: tier field %q", ErrUnknownField, s)
}

// maxTierIDAttempts bounds how often AddTier asks a custom generator for an
// unused id before switching to NewTierID.
const maxTierIDAttempts = 8

// IDGenerator produces tier ids. NewTierID is the default.
type IDGenerator func() string

// NewTierID returns a random UUID string.
func NewTierID() string {
	return uuid.NewString()
}

// AddTier appends a tier starting one past the last tier's upper bound (or at
// zero for an empty list) spanning DefaultTierSpan, with a zero flat rate.
// The new id never collides with an id already in s.Tiers.
func AddTier(s TargetSettings, gen IDGenerator) TargetSettings {
	if gen == nil {
		gen = NewTierID
	}
	from := decimal.Zero
	if n := len(s.Tiers); n > 0 {
		from = s.Tiers[n-1].To.Add(decimal.NewFromInt(1))
	}

	taken := make(map[string]bool, len(s.Tiers))
	for _, t := range s.Tiers {
		taken[t.ID] = true
	}
	id := gen()
	for attempt := 1; id == "" || taken[id]; attempt++ {
		if attempt >= maxTierIDAttempts {
			gen = NewTierID
		}
		id = gen()
	}

	out := s.Clone()
	out.Tiers = append(out.Tiers, CommissionTier{
		ID:   id,
		From: from,
		To:   from.Add(decimal.NewFromInt(DefaultTierSpan)),
		Rate: decimal.Zero,
		Type: TierFlat,
	})
	return out
}

// UpdateTier replaces one field of the tier with the given id using raw input.
// An unknown id leaves s unchanged and is not an error. Invalid input returns
// an error and s unchanged.
func UpdateTier(s TargetSettings, id string, field TierField, raw string) (TargetSettings, error) {
	idx := TierIndex(s.Tiers, id)
	if idx < 0 {
		if _, err := ParseTierField(string(field)); err != nil {
			return s, err
		}
		return s, nil
	}

	tier := s.Tiers[idx]
	switch field {
	case TierFieldFrom, TierFieldTo, TierFieldRate:
		d, err := ParseAmount(raw)
		if err != nil {
			return s, err
		}
		switch field {
		case TierFieldFrom:
			tier.From = d
		case TierFieldTo:
			tier.To = d
		default:
			tier.Rate = d
		}
	case TierFieldType:
		tt, err := ParseTierType(raw)
		if err != nil {
			return s, err
		}
		tier.Type = tt
	default:
		return s, fmt.Errorf("%w: tier field %q", ErrUnknownField, field)
	}

	out := s.Clone()
	out.Tiers[idx] = tier
	return out, nil
}

// RemoveTier drops the tier with the given id, keeping the order of the rest.
// An unknown id leaves s unchanged.
func RemoveTier(s TargetSettings, id string) TargetSettings {
	idx := TierIndex(s.Tiers, id)
	if idx < 0 {
		return s
	}
	out := s.Clone()
	out.Tiers = append(out.Tiers[:idx], out.Tiers[idx+1:]...)
	return out
}

// TierIndex returns the position of the tier with the given id, or -1.
func TierIndex(tiers []CommissionTier, id string) int {
	for i, t := range tiers {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// TierFieldValue returns the current value of a tier field as editable text.
func TierFieldValue(t CommissionTier, field TierField) string {
	switch field {
	case TierFieldFrom:
		return t.From.String()
	case TierFieldTo:
		return t.To.String()
	case TierFieldRate:
		return t.Rate.String()
	case TierFieldType:
		return string(t.Type)
	}
	return ""
}
