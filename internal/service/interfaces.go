package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/resolver"
)

// ErrEmployeeNotFound is returned when selecting an employee id that is not
// in the dataset.
var ErrEmployeeNotFound = errors.New("employee not found")

// ErrNothingSaved is returned by a SettingsSink for a scope with no saved value.
var ErrNothingSaved = errors.New("nothing saved")

// SettingsService is the process-wide owner of the global settings and the
// employee list. Every mutation replaces the state wholesale.
type SettingsService interface {
	Selection() resolver.Selection
	Select(ctx context.Context, sel resolver.Selection) error
	State() resolver.State
	Active() domain.TargetSettings
	SelectedEmployee() (domain.Employee, bool)
	IsInheriting() bool
	Search(query string) []domain.Employee

	Update(ctx context.Context, s domain.TargetSettings) error
	SetField(ctx context.Context, field domain.SettingsField, raw string) error
	SetCommissionType(ctx context.Context, t domain.CommissionType) error
	AddTier(ctx context.Context) (domain.CommissionTier, error)
	UpdateTier(ctx context.Context, id string, field domain.TierField, raw string) error
	RemoveTier(ctx context.Context, id string) error
	ResetToDefault(ctx context.Context) error

	Save(ctx context.Context) (*SaveResult, error)
	SaveAll(ctx context.Context) (*SaveResult, error)
	LastSaved(ctx context.Context, sel resolver.Selection) (*domain.SavedSettings, error)
	ListSaved(ctx context.Context) ([]*domain.SavedSettings, error)
}

// SaveEntry is one scope handed to a SettingsSink. A nil Settings means the
// scope inherits global and any saved override must be dropped.
type SaveEntry struct {
	Scope    string
	Settings *domain.TargetSettings
}

// SettingsSink is the save collaborator. Save must apply all entries or none.
type SettingsSink interface {
	Save(ctx context.Context, entries []SaveEntry, at time.Time) error
	LastSaved(ctx context.Context, scope string) (*domain.SavedSettings, error)
	List(ctx context.Context) ([]*domain.SavedSettings, error)
}

// SaveResult reports what a save handed to the sink.
type SaveResult struct {
	Saved     int
	Cleared   int
	SavedAt   time.Time
	Persisted bool // false when no sink is configured
}
