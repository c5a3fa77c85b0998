package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/resolver"
)

type settingsService struct {
	mu    sync.RWMutex
	state resolver.State
	sel   resolver.Selection

	sink     SettingsSink
	observer UseCaseObserver
	newID    domain.IDGenerator
	now      func() time.Time
}

// NewSettingsService takes ownership of a copy of initial. A nil sink makes
// Save and SaveAll succeed without persisting anything.
func NewSettingsService(
	initial resolver.State,
	sink SettingsSink,
	observers ...UseCaseObserver,
) SettingsService {
	return &settingsService{
		state:    initial.Clone(),
		sel:      resolver.Global,
		sink:     sink,
		observer: useCaseObserverOrNoop(observers),
		newID:    domain.NewTierID,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *settingsService) Selection() resolver.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel
}

func (s *settingsService) Select(ctx context.Context, sel resolver.Selection) (err error) {
	defer s.observe(ctx, "select", time.Now(), &err, map[string]any{"target": sel.String()})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !sel.IsGlobal() {
		if _, ok := resolver.FindEmployee(s.state.Employees, sel.EmployeeID()); !ok {
			return fmt.Errorf("%w: %s", ErrEmployeeNotFound, sel.EmployeeID())
		}
	}
	s.sel = sel
	return nil
}

func (s *settingsService) State() resolver.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *settingsService) Active() domain.TargetSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Active(s.sel)
}

func (s *settingsService) SelectedEmployee() (domain.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sel.IsGlobal() {
		return domain.Employee{}, false
	}
	e, ok := resolver.FindEmployee(s.state.Employees, s.sel.EmployeeID())
	if !ok {
		return domain.Employee{}, false
	}
	if e.IndividualSettings != nil {
		e = e.WithSettings(*e.IndividualSettings)
	}
	return e, true
}

func (s *settingsService) IsInheriting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return resolver.IsInheriting(s.state, s.sel)
}

func (s *settingsService) Search(query string) []domain.Employee {
	return resolver.FilterEmployees(s.State().Employees, query)
}

func (s *settingsService) Update(ctx context.Context, next domain.TargetSettings) error {
	return s.edit(ctx, "update", nil, func(domain.TargetSettings) (domain.TargetSettings, error) {
		return next, nil
	})
}

func (s *settingsService) SetField(ctx context.Context, field domain.SettingsField, raw string) error {
	fields := map[string]any{"field": string(field), "raw": raw}
	return s.edit(ctx, "set-field", fields, func(cur domain.TargetSettings) (domain.TargetSettings, error) {
		return domain.SetField(cur, field, raw)
	})
}

func (s *settingsService) SetCommissionType(ctx context.Context, t domain.CommissionType) error {
	return s.edit(ctx, "set-commission-type", map[string]any{"type": string(t)}, func(cur domain.TargetSettings) (domain.TargetSettings, error) {
		if !t.Valid() {
			return cur, fmt.Errorf("%w: %q", domain.ErrInvalidCommissionType, t)
		}
		return cur.WithCommissionType(t), nil
	})
}

// AddTier appends a tier to the active settings and returns it.
func (s *settingsService) AddTier(ctx context.Context) (domain.CommissionTier, error) {
	var added domain.CommissionTier
	err := s.edit(ctx, "add-tier", nil, func(cur domain.TargetSettings) (domain.TargetSettings, error) {
		next := domain.AddTier(cur, s.newID)
		added = next.Tiers[len(next.Tiers)-1]
		return next, nil
	})
	return added, err
}

func (s *settingsService) UpdateTier(ctx context.Context, id string, field domain.TierField, raw string) error {
	fields := map[string]any{"tier": id, "field": string(field), "raw": raw}
	return s.edit(ctx, "update-tier", fields, func(cur domain.TargetSettings) (domain.TargetSettings, error) {
		return domain.UpdateTier(cur, id, field, raw)
	})
}

func (s *settingsService) RemoveTier(ctx context.Context, id string) error {
	return s.edit(ctx, "remove-tier", map[string]any{"tier": id}, func(cur domain.TargetSettings) (domain.TargetSettings, error) {
		return domain.RemoveTier(cur, id), nil
	})
}

// ResetToDefault drops the selected employee's override. With the global
// selection it does nothing.
func (s *settingsService) ResetToDefault(ctx context.Context) (err error) {
	defer s.observe(ctx, "reset", time.Now(), &err, nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = resolver.ResetToDefault(s.state, s.sel)
	return nil
}

// edit applies fn to the active settings and writes the result back to the
// current selection. When fn fails the state is left as it was.
func (s *settingsService) edit(ctx context.Context, name string, fields map[string]any, fn func(domain.TargetSettings) (domain.TargetSettings, error)) (err error) {
	defer s.observe(ctx, name, time.Now(), &err, fields)

	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state.Active(s.sel))
	if err != nil {
		return err
	}
	s.state = resolver.ApplyUpdate(s.state, s.sel, next)
	return nil
}

// Save hands the current selection's settings to the sink. An inheriting
// employee is saved as "no override".
func (s *settingsService) Save(ctx context.Context) (res *SaveResult, err error) {
	s.mu.RLock()
	sel, st := s.sel, s.state
	s.mu.RUnlock()

	fields := map[string]any{}
	defer s.observe(ctx, "save", time.Now(), &err, fields)

	entry := entryFor(st, sel)
	res, err = s.persist(ctx, []SaveEntry{entry})
	if res != nil {
		fields["persisted"] = res.Persisted
	}
	return res, err
}

// SaveAll saves the global settings and every employee in one batch.
func (s *settingsService) SaveAll(ctx context.Context) (res *SaveResult, err error) {
	st := s.State()

	fields := map[string]any{"employees": len(st.Employees)}
	defer s.observe(ctx, "save-all", time.Now(), &err, fields)

	entries := make([]SaveEntry, 0, len(st.Employees)+1)
	entries = append(entries, entryFor(st, resolver.Global))
	for _, e := range st.Employees {
		entries = append(entries, entryFor(st, resolver.Employee(e.ID)))
	}
	res, err = s.persist(ctx, entries)
	if res != nil {
		fields["saved"] = res.Saved
		fields["cleared"] = res.Cleared
	}
	return res, err
}

func (s *settingsService) persist(ctx context.Context, entries []SaveEntry) (*SaveResult, error) {
	res := &SaveResult{SavedAt: s.now()}
	for _, e := range entries {
		if e.Settings == nil {
			res.Cleared++
		} else {
			res.Saved++
		}
	}
	if s.sink == nil {
		return res, nil
	}
	if err := s.sink.Save(ctx, entries, res.SavedAt); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	res.Persisted = true
	return res, nil
}

func entryFor(st resolver.State, sel resolver.Selection) SaveEntry {
	if sel.IsGlobal() {
		g := st.Global.Clone()
		return SaveEntry{Scope: domain.GlobalScope, Settings: &g}
	}
	entry := SaveEntry{Scope: sel.EmployeeID()}
	if e, ok := resolver.FindEmployee(st.Employees, sel.EmployeeID()); ok && e.IndividualSettings != nil {
		o := e.IndividualSettings.Clone()
		entry.Settings = &o
	}
	return entry
}

// LastSaved returns the value last saved for sel. It returns (nil, nil) when
// nothing was saved or no sink is configured.
func (s *settingsService) LastSaved(ctx context.Context, sel resolver.Selection) (*domain.SavedSettings, error) {
	if s.sink == nil {
		return nil, nil
	}
	scope := domain.GlobalScope
	if !sel.IsGlobal() {
		scope = sel.EmployeeID()
	}
	saved, err := s.sink.LastSaved(ctx, scope)
	if errors.Is(err, ErrNothingSaved) {
		return nil, nil
	}
	return saved, err
}

// ListSaved returns every saved scope, global first. It is empty when no
// sink is configured.
func (s *settingsService) ListSaved(ctx context.Context) ([]*domain.SavedSettings, error) {
	if s.sink == nil {
		return nil, nil
	}
	return s.sink.List(ctx)
}

func (s *settingsService) observe(ctx context.Context, name string, startedAt time.Time, errp *error, fields map[string]any) {
	var err error
	if errp != nil {
		err = *errp
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Selection: s.Selection().String(),
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
