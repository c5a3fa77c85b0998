package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/logisales/internal/domain"
)

// ErrNotFound is returned (wrapped) when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SavedSettingsRepo stores the latest saved settings per scope.
type SavedSettingsRepo interface {
	Upsert(ctx context.Context, s *domain.SavedSettings) error
	Get(ctx context.Context, scope string) (*domain.SavedSettings, error)
	List(ctx context.Context) ([]*domain.SavedSettings, error)
	Delete(ctx context.Context, scope string) error
}
