package seed

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/resolver"
)

// Convert transforms a validated SeedSchema into the initial state.
// Call ValidateSeedSchema first; Convert only fails on values validation
// would have rejected. Missing tier ids are drawn from gen.
func Convert(schema *SeedSchema, gen domain.IDGenerator) (resolver.State, error) {
	if gen == nil {
		gen = domain.NewTierID
	}

	global, err := convertSettings(&schema.Global, gen)
	if err != nil {
		return resolver.State{}, fmt.Errorf("global: %w", err)
	}

	employees := make([]domain.Employee, 0, len(schema.Employees))
	for _, e := range schema.Employees {
		emp := domain.Employee{ID: e.ID, Name: e.Name, Role: e.Role, Avatar: e.Avatar}
		if e.Settings != nil {
			s, err := convertSettings(e.Settings, gen)
			if err != nil {
				return resolver.State{}, fmt.Errorf("employee %s: %w", e.ID, err)
			}
			emp = emp.WithSettings(s)
		}
		employees = append(employees, emp)
	}

	return resolver.State{Global: global, Employees: employees}, nil
}

func convertSettings(s *SettingsSeed, gen domain.IDGenerator) (domain.TargetSettings, error) {
	ct, err := domain.ParseCommissionType(s.CommissionType)
	if err != nil {
		return domain.TargetSettings{}, err
	}
	out := domain.TargetSettings{
		MerchantOnboard: s.MerchantOnboard,
		TotalParcels:    s.TotalParcels,
		TotalRevenue:    s.TotalRevenue,
		CommissionType:  ct,
		CommissionValue: s.CommissionValue,
		Tiers:           make([]domain.CommissionTier, 0, len(s.Tiers)),
	}

	taken := make(map[string]bool, len(s.Tiers))
	for _, t := range s.Tiers {
		taken[t.ID] = true
	}
	for _, t := range s.Tiers {
		tt, err := domain.ParseTierType(t.Type)
		if err != nil {
			return domain.TargetSettings{}, err
		}
		id := t.ID
		for id == "" || (id != t.ID && taken[id]) {
			id = gen()
		}
		taken[id] = true
		out.Tiers = append(out.Tiers, domain.CommissionTier{ID: id, From: t.From, To: t.To, Rate: t.Rate, Type: tt})
	}
	return out, nil
}

// LoadState reads, validates and converts the seed file at path, or the
// built-in dataset when path is empty.
func LoadState(path string) (resolver.State, error) {
	schema := DefaultSchema()
	if path != "" {
		var err error
		schema, err = LoadSeedSchema(path)
		if err != nil {
			return resolver.State{}, fmt.Errorf("loading seed %s: %w", path, err)
		}
	}
	if errs := ValidateSeedSchema(schema); len(errs) > 0 {
		return resolver.State{}, fmt.Errorf("invalid seed: %w", errors.Join(errs...))
	}
	return Convert(schema, nil)
}
