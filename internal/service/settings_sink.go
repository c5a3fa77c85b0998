package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/logisales/internal/db"
	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/repository"
)

type sqliteSink struct {
	uow   db.UnitOfWork
	saved repository.SavedSettingsRepo
}

// NewSQLiteSink returns a SettingsSink that writes each save batch in one
// transaction. saved is used for reads outside a transaction.
func NewSQLiteSink(uow db.UnitOfWork, saved repository.SavedSettingsRepo) SettingsSink {
	return &sqliteSink{uow: uow, saved: saved}
}

func (s *sqliteSink) Save(ctx context.Context, entries []SaveEntry, at time.Time) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSavedSettingsRepo(tx)
		for _, e := range entries {
			if e.Settings == nil {
				if err := repo.Delete(ctx, e.Scope); err != nil {
					return err
				}
				continue
			}
			rec := &domain.SavedSettings{Scope: e.Scope, Settings: *e.Settings, SavedAt: at}
			if err := repo.Upsert(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sqliteSink) LastSaved(ctx context.Context, scope string) (*domain.SavedSettings, error) {
	saved, err := s.saved.Get(ctx, scope)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", scope, ErrNothingSaved)
	}
	return saved, err
}

func (s *sqliteSink) List(ctx context.Context) ([]*domain.SavedSettings, error) {
	return s.saved.List(ctx)
}
