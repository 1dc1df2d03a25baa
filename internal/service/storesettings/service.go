package storesettings

import (
	"context"
	"strings"

	"gearph-api/internal/domain"
	settingsrepo "gearph-api/internal/repository/storesettings"
)

// Service wraps the settings singleton. Concurrent updates are last
// write wins; there is no optimistic-concurrency check.
type Service struct {
	repo settingsrepo.Repository
}

func New(repo settingsrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the settings, creating the defaults on first read.
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	return s.repo.Get(ctx)
}

// Update validates and upserts the whole settings record.
func (s *Service) Update(ctx context.Context, in domain.Settings) (*domain.Settings, error) {
	if strings.TrimSpace(in.StoreName) == "" {
		return nil, domain.Validationf("storeName required")
	}
	if strings.TrimSpace(in.Currency) == "" {
		return nil, domain.Validationf("currency required")
	}
	if in.FlatShippingCents < 0 || in.FreeShippingThresholdCents < 0 {
		return nil, domain.Validationf("shipping amounts cannot be negative")
	}
	return s.repo.Update(ctx, in)
}
