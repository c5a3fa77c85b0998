package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testEmployeeCounter atomic.Int64

// Settings options
type SettingsOption func(*domain.TargetSettings)

func WithMerchantOnboard(n int64) SettingsOption {
	return func(s *domain.TargetSettings) {
		s.MerchantOnboard = n
	}
}

func WithCommission(t domain.CommissionType, value string) SettingsOption {
	return func(s *domain.TargetSettings) {
		s.CommissionType = t
		s.CommissionValue = decimal.RequireFromString(value)
	}
}

func WithCommissionType(t domain.CommissionType) SettingsOption {
	return func(s *domain.TargetSettings) {
		s.CommissionType = t
	}
}

// WithTiers appends tiers; see NewTestTier.
func WithTiers(tiers ...domain.CommissionTier) SettingsOption {
	return func(s *domain.TargetSettings) {
		s.Tiers = append(s.Tiers, tiers...)
	}
}

// NewTestSettings returns the reference global settings: 10 merchants,
// 5000 parcels, 500000 revenue, flat 200, no tiers.
func NewTestSettings(opts ...SettingsOption) domain.TargetSettings {
	s := domain.TargetSettings{
		MerchantOnboard: 10,
		TotalParcels:    5000,
		TotalRevenue:    decimal.NewFromInt(500000),
		CommissionType:  domain.CommissionFlat,
		CommissionValue: decimal.NewFromInt(200),
		Tiers:           []domain.CommissionTier{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestTier builds a tier with a random id.
func NewTestTier(from, to int64, rate string, t domain.TierType) domain.CommissionTier {
	return domain.CommissionTier{
		ID:   uuid.New().String(),
		From: decimal.NewFromInt(from),
		To:   decimal.NewFromInt(to),
		Rate: decimal.RequireFromString(rate),
		Type: t,
	}
}

// Employee options
type EmployeeOption func(*domain.Employee)

func WithRole(role string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Role = role
	}
}

func WithEmployeeID(id string) EmployeeOption {
	return func(e *domain.Employee) {
		e.ID = id
	}
}

func WithOverride(s domain.TargetSettings) EmployeeOption {
	return func(e *domain.Employee) {
		*e = e.WithSettings(s)
	}
}

func NewTestEmployee(name string, opts ...EmployeeOption) domain.Employee {
	n := testEmployeeCounter.Add(1)
	e := domain.Employee{
		ID:   fmt.Sprintf("EMP%03d", n),
		Name: name,
		Role: "Sales",
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
