package domain

import "github.com/shopspring/decimal"

// Policy is the resolved commission policy of a TargetSettings value.
// Exactly one of FlatPolicy, PercentagePolicy or TieredPolicy.
type Policy interface {
	Type() CommissionType
	isPolicy()
}

type FlatPolicy struct {
	Amount decimal.Decimal
}

type PercentagePolicy struct {
	Percent decimal.Decimal
}

type TieredPolicy struct {
	Tiers []CommissionTier
}

func (FlatPolicy) Type() CommissionType       { return CommissionFlat }
func (PercentagePolicy) Type() CommissionType { return CommissionPercentage }
func (TieredPolicy) Type() CommissionType     { return CommissionTiered }

func (FlatPolicy) isPolicy()       {}
func (PercentagePolicy) isPolicy() {}
func (TieredPolicy) isPolicy()     {}

// Policy returns the variant selected by CommissionType carrying only the
// fields relevant to it. An unrecognised type resolves to a flat policy,
// which is also what a zero TargetSettings would display.
func (s TargetSettings) Policy() Policy {
	switch s.CommissionType {
	case CommissionPercentage:
		return PercentagePolicy{Percent: s.CommissionValue}
	case CommissionTiered:
		tiers := make([]CommissionTier, len(s.Tiers))
		copy(tiers, s.Tiers)
		return TieredPolicy{Tiers: tiers}
	default:
		return FlatPolicy{Amount: s.CommissionValue}
	}
}
