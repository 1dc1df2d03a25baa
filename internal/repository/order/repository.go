package order

import (
	"context"

	"gearph-api/internal/domain"
)

// StatusUpdate carries the admin's partial status change. Nil fields
// are left unchanged.
type StatusUpdate struct {
	OrderStatus   *string
	PaymentStatus *string
}

type Repository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) (*domain.Order, error)
}
