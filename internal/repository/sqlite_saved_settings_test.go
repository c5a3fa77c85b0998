package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/logisales/internal/db"
	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedSettingsRepo_UpsertAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSavedSettingsRepo(database)
	ctx := context.Background()

	settings := testutil.NewTestSettings(
		testutil.WithCommission(domain.CommissionTiered, "12.75"),
		testutil.WithTiers(
			testutil.NewTestTier(0, 1000, "5", domain.TierFlat),
			testutil.NewTestTier(1001, 2000, "2.5", domain.TierPercentage),
		),
	)
	saved := &domain.SavedSettings{Scope: domain.GlobalScope, Settings: settings}
	require.NoError(t, repo.Upsert(ctx, saved))
	assert.False(t, saved.SavedAt.IsZero(), "SavedAt stamped")
	assert.Equal(t, 1, saved.SaveCount)

	got, err := repo.Get(ctx, domain.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, domain.GlobalScope, got.Scope)
	assert.True(t, settings.Equal(got.Settings), "settings round-trip exactly")
	assert.Equal(t, 1, got.SaveCount)
	assert.WithinDuration(t, saved.SavedAt, got.SavedAt, time.Millisecond)
}

func TestSavedSettingsRepo_UpsertReplacesTiersAndCounts(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSavedSettingsRepo(database)
	ctx := context.Background()

	first := testutil.NewTestSettings(testutil.WithTiers(
		testutil.NewTestTier(0, 1000, "5", domain.TierFlat),
		testutil.NewTestTier(1001, 2000, "6", domain.TierFlat),
	))
	require.NoError(t, repo.Upsert(ctx, &domain.SavedSettings{Scope: "E1", Settings: first}))

	second := testutil.NewTestSettings(testutil.WithMerchantOnboard(15))
	saved := &domain.SavedSettings{Scope: "E1", Settings: second}
	require.NoError(t, repo.Upsert(ctx, saved))
	assert.Equal(t, 2, saved.SaveCount)

	got, err := repo.Get(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.Settings.MerchantOnboard)
	assert.Empty(t, got.Settings.Tiers, "previous tiers replaced")

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM saved_settings`).Scan(&n))
	assert.Equal(t, 1, n, "only the latest value per scope is kept")
}

func TestSavedSettingsRepo_GetNotFound(t *testing.T) {
	repo := NewSQLiteSavedSettingsRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSavedSettingsRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSavedSettingsRepo(database)
	ctx := context.Background()

	settings := testutil.NewTestSettings(testutil.WithTiers(testutil.NewTestTier(0, 10, "1", domain.TierFlat)))
	require.NoError(t, repo.Upsert(ctx, &domain.SavedSettings{Scope: "E1", Settings: settings}))
	require.NoError(t, repo.Delete(ctx, "E1"))

	_, err := repo.Get(ctx, "E1")
	assert.ErrorIs(t, err, ErrNotFound)

	var tiers int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM saved_tiers`).Scan(&tiers))
	assert.Equal(t, 0, tiers, "tiers cascade")

	assert.NoError(t, repo.Delete(ctx, "never-saved"))
}

func TestSavedSettingsRepo_ListGlobalFirst(t *testing.T) {
	repo := NewSQLiteSavedSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, scope := range []string{"E2", domain.GlobalScope, "E1"} {
		settings := testutil.NewTestSettings(testutil.WithTiers(testutil.NewTestTier(0, 10, "1", domain.TierFlat)))
		require.NoError(t, repo.Upsert(ctx, &domain.SavedSettings{Scope: scope, Settings: settings}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, domain.GlobalScope, list[0].Scope)
	assert.Equal(t, "E1", list[1].Scope)
	assert.Equal(t, "E2", list[2].Scope)
	for _, s := range list {
		assert.Len(t, s.Settings.Tiers, 1, s.Scope)
	}
}

func TestSavedSettingsRepo_InsideUnitOfWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteSavedSettingsRepo(tx)
		if err := repo.Upsert(ctx, &domain.SavedSettings{Scope: domain.GlobalScope, Settings: testutil.NewTestSettings()}); err != nil {
			return err
		}
		_, err := repo.Get(ctx, domain.GlobalScope)
		return err
	})
	require.NoError(t, err)

	_, err = NewSQLiteSavedSettingsRepo(database).Get(ctx, domain.GlobalScope)
	assert.NoError(t, err)
}
