package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/repository"
	"github.com/alexanderramin/logisales/internal/resolver"
	"github.com/alexanderramin/logisales/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func testState() resolver.State {
	return resolver.State{
		Global: testutil.NewTestSettings(),
		Employees: []domain.Employee{
			testutil.NewTestEmployee("Rahim Khan", testutil.WithEmployeeID("E1"), testutil.WithRole("Sales")),
			testutil.NewTestEmployee("Dana Lee", testutil.WithEmployeeID("E2"), testutil.WithRole("Ops")),
			testutil.NewTestEmployee("Nusrat Jahan", testutil.WithEmployeeID("E3"),
				testutil.WithOverride(testutil.NewTestSettings(testutil.WithCommission(domain.CommissionPercentage, "2.5")))),
		},
	}
}

func setupService(t *testing.T) (SettingsService, *recordingObserver) {
	t.Helper()
	database := testutil.NewTestDB(t)
	sink := NewSQLiteSink(testutil.NewTestUoW(database), repository.NewSQLiteSavedSettingsRepo(database))
	obs := &recordingObserver{}
	return NewSettingsService(testState(), sink, obs), obs
}

func TestSettingsService_StartsOnGlobal(t *testing.T) {
	svc, _ := setupService(t)

	assert.True(t, svc.Selection().IsGlobal())
	assert.True(t, testutil.NewTestSettings().Equal(svc.Active()))
	assert.False(t, svc.IsInheriting())
	_, ok := svc.SelectedEmployee()
	assert.False(t, ok)
}

func TestSettingsService_Select(t *testing.T) {
	svc, obs := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.Select(ctx, resolver.Employee("E3")))
	e, ok := svc.SelectedEmployee()
	require.True(t, ok)
	assert.Equal(t, "Nusrat Jahan", e.Name)
	assert.Equal(t, domain.CommissionPercentage, svc.Active().CommissionType)
	assert.False(t, svc.IsInheriting())
	assert.Equal(t, "select", obs.last().Name)

	err := svc.Select(ctx, resolver.Employee("ghost"))
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Equal(t, "E3", svc.Selection().EmployeeID(), "selection unchanged")
	assert.False(t, obs.last().Success)

	require.NoError(t, svc.Select(ctx, resolver.Global))
	assert.True(t, svc.Selection().IsGlobal())
}

func TestSettingsService_EditInheritingEmployeeCreatesOverride(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.Select(ctx, resolver.Employee("E1")))
	assert.True(t, svc.IsInheriting())
	assert.True(t, svc.State().Global.Equal(svc.Active()))

	require.NoError(t, svc.SetField(ctx, domain.FieldMerchantOnboard, "15"))
	assert.False(t, svc.IsInheriting())

	e, _ := svc.SelectedEmployee()
	require.NotNil(t, e.IndividualSettings)
	want := testutil.NewTestSettings(testutil.WithMerchantOnboard(15))
	assert.True(t, want.Equal(*e.IndividualSettings))
	assert.Equal(t, int64(10), svc.State().Global.MerchantOnboard, "global untouched")

	require.NoError(t, svc.ResetToDefault(ctx))
	assert.True(t, svc.IsInheriting())
	assert.Equal(t, int64(10), svc.Active().MerchantOnboard)
}

func TestSettingsService_InvalidInputRejected(t *testing.T) {
	svc, obs := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Select(ctx, resolver.Employee("E1")))

	err := svc.SetField(ctx, domain.FieldTotalRevenue, "a lot")
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)
	assert.True(t, svc.IsInheriting(), "a rejected edit does not create an override")
	assert.Equal(t, "set-field", obs.last().Name)
	assert.False(t, obs.last().Success)

	err = svc.SetCommissionType(ctx, domain.CommissionType("BONUS"))
	assert.ErrorIs(t, err, domain.ErrInvalidCommissionType)
}

func TestSettingsService_HugeExponentRejected(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	err := svc.SetField(ctx, domain.FieldTotalParcels, "1e300000000")
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)
	err = svc.SetField(ctx, domain.FieldTotalRevenue, "1e2000000")
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)

	assert.Equal(t, int64(5000), svc.Active().TotalParcels)
	assert.Equal(t, "500000", svc.Active().TotalRevenue.String())
}

func TestSettingsService_CommissionTypeKeepsTiers(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetCommissionType(ctx, domain.CommissionTiered))
	tier, err := svc.AddTier(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, tier.ID)
	require.NoError(t, svc.UpdateTier(ctx, tier.ID, domain.TierFieldRate, "3"))

	require.NoError(t, svc.SetCommissionType(ctx, domain.CommissionFlat))
	assert.Len(t, svc.Active().Tiers, 1)
	_, isFlat := svc.Active().Policy().(domain.FlatPolicy)
	assert.True(t, isFlat)

	require.NoError(t, svc.SetCommissionType(ctx, domain.CommissionTiered))
	tiers := svc.Active().Tiers
	require.Len(t, tiers, 1)
	assert.True(t, tiers[0].Rate.Equal(decimal.NewFromInt(3)))
}

func TestSettingsService_TierEditing(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, err := svc.AddTier(ctx)
	require.NoError(t, err)
	second, err := svc.AddTier(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.From.Equal(decimal.NewFromInt(1001)))

	require.NoError(t, svc.UpdateTier(ctx, "missing", domain.TierFieldRate, "1"), "unknown id is a no-op")
	assert.ErrorIs(t, svc.UpdateTier(ctx, first.ID, domain.TierFieldType, "TIERED"), domain.ErrInvalidTierType)

	require.NoError(t, svc.RemoveTier(ctx, first.ID))
	tiers := svc.Active().Tiers
	require.Len(t, tiers, 1)
	assert.Equal(t, second.ID, tiers[0].ID)
}

func TestSettingsService_ResetOnGlobalIsNoop(t *testing.T) {
	svc, _ := setupService(t)
	before := svc.State()
	require.NoError(t, svc.ResetToDefault(context.Background()))
	assert.True(t, before.Global.Equal(svc.State().Global))
}

func TestSettingsService_Search(t *testing.T) {
	svc, _ := setupService(t)

	assert.Len(t, svc.Search(""), 3)
	got := svc.Search("SALES")
	require.Len(t, got, 1)
	assert.Equal(t, "E1", got[0].ID)
}

func TestSettingsService_StateIsACopy(t *testing.T) {
	svc, _ := setupService(t)
	st := svc.State()
	st.Employees[2].IndividualSettings.MerchantOnboard = 999
	st.Global.MerchantOnboard = 999

	assert.Equal(t, int64(10), svc.State().Global.MerchantOnboard)
	assert.Equal(t, int64(10), svc.State().Employees[2].IndividualSettings.MerchantOnboard)
}

func TestSettingsService_SaveAndLastSaved(t *testing.T) {
	svc, obs := setupService(t)
	ctx := context.Background()

	saved, err := svc.LastSaved(ctx, resolver.Global)
	require.NoError(t, err)
	assert.Nil(t, saved)

	require.NoError(t, svc.SetField(ctx, domain.FieldTotalParcels, "6000"))
	res, err := svc.Save(ctx)
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, 1, res.Saved)
	assert.Equal(t, "save", obs.last().Name)

	saved, err = svc.LastSaved(ctx, resolver.Global)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, int64(6000), saved.Settings.TotalParcels)
	assert.Equal(t, 1, saved.SaveCount)
}

func TestSettingsService_SaveInheritingEmployeeClearsSavedOverride(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	e3 := resolver.Employee("E3")

	require.NoError(t, svc.Select(ctx, e3))
	_, err := svc.Save(ctx)
	require.NoError(t, err)
	saved, err := svc.LastSaved(ctx, e3)
	require.NoError(t, err)
	require.NotNil(t, saved)

	require.NoError(t, svc.ResetToDefault(ctx))
	res, err := svc.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cleared)

	saved, err = svc.LastSaved(ctx, e3)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestSettingsService_SaveAll(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	res, err := svc.SaveAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Saved, "global and E3")
	assert.Equal(t, 2, res.Cleared, "E1 and E2 inherit")

	saved, err := svc.LastSaved(ctx, resolver.Employee("E3"))
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, domain.CommissionPercentage, saved.Settings.CommissionType)
}

func TestSettingsService_ListSaved(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	list, err := svc.ListSaved(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.SaveAll(ctx)
	require.NoError(t, err)

	list, err = svc.ListSaved(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.GlobalScope, list[0].Scope)
	assert.Equal(t, "E3", list[1].Scope)
	assert.Equal(t, domain.CommissionPercentage, list[1].Settings.CommissionType)
}

func TestSettingsService_SaveAllRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSavedSettingsRepo(database)
	boom := errors.New("disk full")
	// The global upsert is exec 1-2 (settings row, clear tiers); fail on the third.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	svc := NewSettingsService(testState(), NewSQLiteSink(uow, repo))
	ctx := context.Background()

	_, err := svc.SaveAll(ctx)
	require.ErrorIs(t, err, boom)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "nothing from the failed batch is kept")
}

func TestSettingsService_NilSinkSaveSucceeds(t *testing.T) {
	svc := NewSettingsService(testState(), nil)
	ctx := context.Background()

	res, err := svc.Save(ctx)
	require.NoError(t, err)
	assert.False(t, res.Persisted)

	list, err := svc.ListSaved(ctx)
	require.NoError(t, err)
	assert.Nil(t, list)
	assert.Equal(t, 1, res.Saved)

	saved, err := svc.LastSaved(ctx, resolver.Global)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestSettingsService_ConcurrentEditsStayConsistent(t *testing.T) {
	svc := NewSettingsService(testState(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddTier(ctx)
			_ = svc.Active()
		}()
	}
	wg.Wait()

	tiers := svc.Active().Tiers
	require.Len(t, tiers, 20)
	assert.Empty(t, domain.CheckTiers(tiers), "tiers appended one after another")
}
