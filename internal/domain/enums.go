package domain

import (
	"fmt"
	"strings"
)

type CommissionType string

const (
	CommissionFlat       CommissionType = "FLAT"
	CommissionPercentage CommissionType = "PERCENTAGE"
	CommissionTiered     CommissionType = "TIERED"
)

// CommissionTypes lists every commission policy in selector order.
var CommissionTypes = []CommissionType{CommissionFlat, CommissionPercentage, CommissionTiered}

// Valid reports whether t is one of the three known policies.
func (t CommissionType) Valid() bool {
	switch t {
	case CommissionFlat, CommissionPercentage, CommissionTiered:
		return true
	}
	return false
}

// ParseCommissionType accepts the canonical upper-case values as well as
// lower-case and a few shorthands used on the command line.
func ParseCommissionType(s string) (CommissionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FLAT":
		return CommissionFlat, nil
	case "PERCENTAGE", "PERCENT", "PCT", "%":
		return CommissionPercentage, nil
	case "TIERED", "TIER", "TIERS":
		return CommissionTiered, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCommissionType, s)
}

// TierType is the per-tier rate kind. It is a separate type from
// CommissionType so that a tiered tier cannot be expressed.
type TierType string

const (
	TierFlat       TierType = "FLAT"
	TierPercentage TierType = "PERCENTAGE"
)

// TierTypes lists the tier rate kinds in selector order.
var TierTypes = []TierType{TierFlat, TierPercentage}

func (t TierType) Valid() bool {
	return t == TierFlat || t == TierPercentage
}

// ParseTierType parses a tier rate kind. TIERED is rejected.
func ParseTierType(s string) (TierType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FLAT":
		return TierFlat, nil
	case "PERCENTAGE", "PERCENT", "PCT", "%":
		return TierPercentage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTierType, s)
}
