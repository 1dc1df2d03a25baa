package storesettings

import (
	"context"

	"gearph-api/internal/domain"
)

type Repository interface {
	// Get returns the settings row, inserting the defaults first if no
	// row exists yet.
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) (*domain.Settings, error)
}
