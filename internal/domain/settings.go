package domain

import "github.com/shopspring/decimal"

// CommissionTier is one volume band of a tiered commission policy.
// From/To are not required to be ordered or contiguous with neighbours.
type CommissionTier struct {
	ID   string
	From decimal.Decimal
	To   decimal.Decimal
	Rate decimal.Decimal
	Type TierType
}

// TargetSettings is the complete set of targets and commission policy that
// applies to either the whole team or a single employee.
//
// CommissionValue is only meaningful for FLAT and PERCENTAGE, Tiers only for
// TIERED. The inactive payload is retained so that switching the type back
// restores it; read the commission through Policy.
type TargetSettings struct {
	MerchantOnboard int64
	TotalParcels    int64
	TotalRevenue    decimal.Decimal
	CommissionType  CommissionType
	CommissionValue decimal.Decimal
	Tiers           []CommissionTier
}

// Clone returns a deep copy whose tier slice does not alias s.Tiers.
func (s TargetSettings) Clone() TargetSettings {
	out := s
	if s.Tiers != nil {
		out.Tiers = make([]CommissionTier, len(s.Tiers))
		copy(out.Tiers, s.Tiers)
	}
	return out
}

// Equal compares two settings values field by field, using decimal equality
// for amounts so that "500000" and "500000.00" compare equal.
func (s TargetSettings) Equal(o TargetSettings) bool {
	if s.MerchantOnboard != o.MerchantOnboard ||
		s.TotalParcels != o.TotalParcels ||
		!s.TotalRevenue.Equal(o.TotalRevenue) ||
		s.CommissionType != o.CommissionType ||
		!s.CommissionValue.Equal(o.CommissionValue) ||
		len(s.Tiers) != len(o.Tiers) {
		return false
	}
	for i := range s.Tiers {
		if !s.Tiers[i].Equal(o.Tiers[i]) {
			return false
		}
	}
	return true
}

// Equal compares two tiers including their ids.
func (t CommissionTier) Equal(o CommissionTier) bool {
	return t.ID == o.ID &&
		t.From.Equal(o.From) &&
		t.To.Equal(o.To) &&
		t.Rate.Equal(o.Rate) &&
		t.Type == o.Type
}

// WithCommissionType switches the active policy without touching the stored
// value or tiers.
func (s TargetSettings) WithCommissionType(t CommissionType) TargetSettings {
	out := s.Clone()
	out.CommissionType = t
	return out
}
