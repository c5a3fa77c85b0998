package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

//go:embed default.json
var defaultSeed []byte

// SeedSchema is the top-level JSON structure of a seed dataset.
type SeedSchema struct {
	Global    SettingsSeed   `json:"global"`
	Employees []EmployeeSeed `json:"employees"`
}

// SettingsSeed is one TargetSettings value. Amounts may be JSON numbers or
// numeric strings.
type SettingsSeed struct {
	MerchantOnboard int64           `json:"merchant_onboard"`
	TotalParcels    int64           `json:"total_parcels"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	CommissionType  string          `json:"commission_type"`
	CommissionValue decimal.Decimal `json:"commission_value"`
	Tiers           []TierSeed      `json:"tiers,omitempty"`
}

// TierSeed is one commission tier. A missing id is generated on conversion.
type TierSeed struct {
	ID   string          `json:"id,omitempty"`
	From decimal.Decimal `json:"from"`
	To   decimal.Decimal `json:"to"`
	Rate decimal.Decimal `json:"rate"`
	Type string          `json:"type"`
}

// EmployeeSeed is one employee. A nil Settings means the employee inherits
// the global settings.
type EmployeeSeed struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Role     string        `json:"role"`
	Avatar   string        `json:"avatar,omitempty"`
	Settings *SettingsSeed `json:"settings,omitempty"`
}

// LoadSeedSchema reads and parses a seed JSON file.
func LoadSeedSchema(path string) (*SeedSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeedSchema(data)
}

// ParseSeedSchema parses seed JSON. Unknown keys are rejected so that typos
// in field names do not silently fall back to zero.
func ParseSeedSchema(data []byte) (*SeedSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var schema SeedSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &schema, nil
}

// DefaultSchema returns the built-in demo dataset.
func DefaultSchema() *SeedSchema {
	schema, err := ParseSeedSchema(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed: %v", err))
	}
	return schema
}
