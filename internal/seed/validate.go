package seed

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/resolver"
	"github.com/shopspring/decimal"
)

// ValidateSeedSchema checks the seed dataset before conversion.
// Returns a slice of all validation errors found.
func ValidateSeedSchema(schema *SeedSchema) []error {
	var errs []error

	errs = append(errs, validateSettings("global", &schema.Global)...)

	ids := make(map[string]bool)
	for i, e := range schema.Employees {
		path := fmt.Sprintf("employees[%d]", i)
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", path))
		} else {
			if ids[e.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", path, e.ID))
			}
			ids[e.ID] = true
			if strings.EqualFold(e.ID, resolver.GlobalKeyword) {
				errs = append(errs, fmt.Errorf("%s.id: %q is reserved", path, e.ID))
			}
		}
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", path))
		}
		if e.Settings != nil {
			errs = append(errs, validateSettings(path+".settings", e.Settings)...)
		}
	}

	return errs
}

func validateSettings(path string, s *SettingsSeed) []error {
	var errs []error

	if s.CommissionType == "" {
		errs = append(errs, fmt.Errorf("%s.commission_type is required", path))
	} else if _, err := domain.ParseCommissionType(s.CommissionType); err != nil {
		errs = append(errs, fmt.Errorf("%s.commission_type: invalid value %q", path, s.CommissionType))
	}

	checkAmount := func(field string, d decimal.Decimal) {
		if err := domain.CheckAmount(d); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", path, field, err))
		}
	}
	checkAmount("total_revenue", s.TotalRevenue)
	checkAmount("commission_value", s.CommissionValue)

	tierIDs := make(map[string]bool)
	for i, t := range s.Tiers {
		tpath := fmt.Sprintf("%s.tiers[%d]", path, i)
		if t.ID != "" {
			if tierIDs[t.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", tpath, t.ID))
			}
			tierIDs[t.ID] = true
		}
		checkAmount(fmt.Sprintf("tiers[%d].from", i), t.From)
		checkAmount(fmt.Sprintf("tiers[%d].to", i), t.To)
		checkAmount(fmt.Sprintf("tiers[%d].rate", i), t.Rate)
		if _, err := domain.ParseTierType(t.Type); err != nil {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q (expected FLAT or PERCENTAGE)", tpath, t.Type))
		}
	}

	return errs
}
