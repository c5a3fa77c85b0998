package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/logisales/internal/db"
	"github.com/alexanderramin/logisales/internal/domain"
)

// SQLiteSavedSettingsRepo implements SavedSettingsRepo using a SQLite database.
// Upsert issues several statements; run it inside a db.UnitOfWork to make it
// atomic.
type SQLiteSavedSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSavedSettingsRepo(conn db.DBTX) *SQLiteSavedSettingsRepo {
	return &SQLiteSavedSettingsRepo{db: conn}
}

// Upsert replaces the saved value for s.Scope, including its whole tier list,
// and bumps the scope's save count. A zero SavedAt is stamped with the
// current time. s.SaveCount is updated to the stored count.
func (r *SQLiteSavedSettingsRepo) Upsert(ctx context.Context, s *domain.SavedSettings) error {
	if s.SavedAt.IsZero() {
		s.SavedAt = nowUTC()
	}
	set := s.Settings
	query := `INSERT INTO saved_settings (scope, merchant_onboard, total_parcels, total_revenue,
		commission_type, commission_value, saved_at, save_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(scope) DO UPDATE SET
			merchant_onboard = excluded.merchant_onboard,
			total_parcels    = excluded.total_parcels,
			total_revenue    = excluded.total_revenue,
			commission_type  = excluded.commission_type,
			commission_value = excluded.commission_value,
			saved_at         = excluded.saved_at,
			save_count       = saved_settings.save_count + 1`
	_, err := r.db.ExecContext(ctx, query,
		s.Scope,
		set.MerchantOnboard,
		set.TotalParcels,
		decimalText(set.TotalRevenue),
		string(set.CommissionType),
		decimalText(set.CommissionValue),
		formatTime(s.SavedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting saved settings %s: %w", s.Scope, err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_tiers WHERE scope = ?`, s.Scope); err != nil {
		return fmt.Errorf("clearing saved tiers %s: %w", s.Scope, err)
	}
	for i, t := range set.Tiers {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO saved_tiers (scope, position, id, from_value, to_value, rate, type)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.Scope, i, t.ID,
			decimalText(t.From), decimalText(t.To), decimalText(t.Rate),
			string(t.Type),
		)
		if err != nil {
			return fmt.Errorf("inserting saved tier %d of %s: %w", i+1, s.Scope, err)
		}
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT save_count FROM saved_settings WHERE scope = ?`, s.Scope).Scan(&s.SaveCount)
	if err != nil {
		return fmt.Errorf("reading save count %s: %w", s.Scope, err)
	}
	return nil
}

func (r *SQLiteSavedSettingsRepo) Get(ctx context.Context, scope string) (*domain.SavedSettings, error) {
	query := `SELECT scope, merchant_onboard, total_parcels, total_revenue, commission_type,
		commission_value, saved_at, save_count
		FROM saved_settings WHERE scope = ?`
	row := r.db.QueryRowContext(ctx, query, scope)

	var rec savedRow
	err := row.Scan(rec.dest()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("saved settings %s: %w", scope, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning saved settings: %w", err)
	}
	s, err := rec.toDomain()
	if err != nil {
		return nil, err
	}
	if err := r.loadTiers(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns every saved scope, global first, then by scope.
func (r *SQLiteSavedSettingsRepo) List(ctx context.Context) ([]*domain.SavedSettings, error) {
	query := `SELECT scope, merchant_onboard, total_parcels, total_revenue, commission_type,
		commission_value, saved_at, save_count
		FROM saved_settings
		ORDER BY scope = ? DESC, scope`
	rows, err := r.db.QueryContext(ctx, query, domain.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("listing saved settings: %w", err)
	}

	var out []*domain.SavedSettings
	for rows.Next() {
		var rec savedRow
		if err := rows.Scan(rec.dest()...); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning saved settings: %w", err)
		}
		s, err := rec.toDomain()
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating saved settings: %w", err)
	}
	// Tiers are loaded after the cursor is closed: an in-memory store has a
	// single connection.
	rows.Close()

	for _, s := range out {
		if err := r.loadTiers(ctx, s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Delete removes the saved value for scope. Deleting a scope that was never
// saved is not an error.
func (r *SQLiteSavedSettingsRepo) Delete(ctx context.Context, scope string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_settings WHERE scope = ?`, scope); err != nil {
		return fmt.Errorf("deleting saved settings %s: %w", scope, err)
	}
	return nil
}

func (r *SQLiteSavedSettingsRepo) loadTiers(ctx context.Context, s *domain.SavedSettings) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, from_value, to_value, rate, type FROM saved_tiers WHERE scope = ? ORDER BY position`,
		s.Scope)
	if err != nil {
		return fmt.Errorf("listing saved tiers %s: %w", s.Scope, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, from, to, rate, typ string
		if err := rows.Scan(&id, &from, &to, &rate, &typ); err != nil {
			return fmt.Errorf("scanning saved tier: %w", err)
		}
		t := domain.CommissionTier{ID: id, Type: domain.TierType(typ)}
		if t.From, err = parseDecimal("from_value", from); err != nil {
			return err
		}
		if t.To, err = parseDecimal("to_value", to); err != nil {
			return err
		}
		if t.Rate, err = parseDecimal("rate", rate); err != nil {
			return err
		}
		s.Settings.Tiers = append(s.Settings.Tiers, t)
	}
	return rows.Err()
}

// savedRow holds the raw column values of one saved_settings row.
type savedRow struct {
	scope           string
	merchantOnboard int64
	totalParcels    int64
	totalRevenue    string
	commissionType  string
	commissionValue string
	savedAt         string
	saveCount       int
}

func (r *savedRow) dest() []any {
	return []any{
		&r.scope, &r.merchantOnboard, &r.totalParcels, &r.totalRevenue,
		&r.commissionType, &r.commissionValue, &r.savedAt, &r.saveCount,
	}
}

func (r *savedRow) toDomain() (*domain.SavedSettings, error) {
	revenue, err := parseDecimal("total_revenue", r.totalRevenue)
	if err != nil {
		return nil, err
	}
	value, err := parseDecimal("commission_value", r.commissionValue)
	if err != nil {
		return nil, err
	}
	return &domain.SavedSettings{
		Scope: r.scope,
		Settings: domain.TargetSettings{
			MerchantOnboard: r.merchantOnboard,
			TotalParcels:    r.totalParcels,
			TotalRevenue:    revenue,
			CommissionType:  domain.CommissionType(r.commissionType),
			CommissionValue: value,
		},
		SavedAt:   parseTime(r.savedAt),
		SaveCount: r.saveCount,
	}, nil
}
